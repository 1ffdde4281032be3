package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"armsim/pkg/domain"
	"armsim/pkg/storage"
	"armsim/pkg/storage/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func countUserSimulations(t *testing.T, pg *postgres.PgSQL, userID domain.UserID) int {
	t.Helper()
	page, err := pg.UserSimulations(context.Background(), userID, "", nil, 100)
	require.NoError(t, err)

	return len(page.Simulations)
}

func TestPgSQL_Ping(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, pg.Ping(ctx))

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	require.ErrorIs(t, tx.(*postgres.PgSQL).Ping(ctx), storage.ErrAlreadyInTx)
}

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, txStorage)

	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	require.NoError(t, inner.Rollback())
}

func TestPgSQL_Commit_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = txStorage.StoreSimulations(ctx, forwardSimulation(userID))
	require.NoError(t, err)

	// not visible before commit
	require.Equal(t, 0, countUserSimulations(t, pg, userID))
	require.NoError(t, txStorage.Commit())
	require.Equal(t, 1, countUserSimulations(t, pg, userID))
}

func TestPgSQL_Rollback_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = txStorage.StoreSimulations(ctx, forwardSimulation(userID))
	require.NoError(t, err)
	require.NoError(t, txStorage.Rollback())

	require.Equal(t, 0, countUserSimulations(t, pg, userID))
}

func TestPgSQL_WithTx_CommitAndRollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	committed := domain.UserID(uuid.New())
	rolledBack := domain.UserID(uuid.New())

	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, err := s.StoreSimulations(ctx, forwardSimulation(committed))

		return err //nolint: wrapcheck
	})
	require.NoError(t, err)
	require.Equal(t, 1, countUserSimulations(t, pg, committed))

	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, _ = s.StoreSimulations(ctx, forwardSimulation(rolledBack))

		return errors.New("boom")
	})
	require.Error(t, err)
	require.Equal(t, 0, countUserSimulations(t, pg, rolledBack))
}
