package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"armsim"
	"armsim/pkg/storage/postgres"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbUser     = "armsim"
	dbPassword = "armsim"
	dbName     = "armsim_test"
	dbPort     = "5432/tcp"
)

// startDatabase runs a throwaway PostgreSQL and returns its address.
func startDatabase(ctx context.Context) (testcontainers.Container, string, int, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{dbPort},
			Env: map[string]string{
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPassword,
				"POSTGRES_DB":       dbName,
			},
			// postgres restarts once after initdb
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(dbPort),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, "", 0, fmt.Errorf("could not start postgres: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return container, "", 0, fmt.Errorf("could not get postgres host: %w", err)
	}
	port, err := container.MappedPort(ctx, dbPort)
	if err != nil {
		return container, "", 0, fmt.Errorf("could not get postgres port: %w", err)
	}

	return container, host, port.Int(), nil
}

// migrate applies the embedded simulations schema.
func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(armsim.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, "migrations") //nolint: wrapcheck
}

// setupTestDB returns a migrated storage on a fresh database and a func
// tearing both down.
func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres tests need docker")
	}
	ctx := context.Background()

	container, host, port, err := startDatabase(ctx)
	if container != nil {
		t.Cleanup(func() { _ = container.Terminate(ctx) })
	}
	require.NoError(t, err)

	pg, err := postgres.New(ctx, postgres.Options{
		Username:           dbUser,
		Password:           dbPassword,
		Host:               host,
		Port:               port,
		Database:           dbName,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 4,
		MaxIdleConnections: 2,
	})
	require.NoError(t, err)

	db, ok := pg.DB.(*sql.DB)
	require.True(t, ok)
	require.NoError(t, migrate(ctx, db))

	return pg, func() { _ = pg.Close() }
}
