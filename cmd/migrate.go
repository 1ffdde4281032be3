package main

import (
	"context"
	"database/sql"
	"fmt"

	root "armsim"
	"armsim/internal/config"
	"armsim/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand constructs the 'migrate' subcommand that applies the
// simulations schema with goose and then River's own tables.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db, ok := strg.DB.(*sql.DB)
			if !ok {
				return fmt.Errorf("unexpected database handle %T", strg.DB)
			}

			goose.SetBaseFS(root.Migrations)
			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("could not set goose dialect to postgres: %w", err)
			}
			if err := goose.UpContext(ctx, db, "migrations"); err != nil {
				return fmt.Errorf("could not migrate pgsql: %w", err)
			}

			return migrateRiver(ctx, db)
		},
	}

	return cmd
}

// migrateRiver brings River's job tables to the latest version.
func migrateRiver(ctx context.Context, db *sql.DB) error {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return fmt.Errorf("could not create river queue migrator: %w", err)
	}

	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return fmt.Errorf("could not migrate river queue: %w", err)
	}
	for _, v := range res.Versions {
		logger.Info(ctx, "applied river migration", zap.Int("version", v.Version))
	}

	return nil
}
