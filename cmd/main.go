// Package main provides the CLI entrypoint for the arm simulator.
// It wires subcommands (serve, migrate, jwt, forward, inverse), loads
// configuration, and initializes logging.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"armsim/internal/config"
	"armsim/pkg/logger"
	"armsim/pkg/paramstore"
	"armsim/pkg/storage/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// resolvePublicKey replaces the configured JWT public key with the value of
// the configured SSM parameter, if any.
func resolvePublicKey(ctx context.Context, cfg *config.Config, newGetter func(ctx context.Context) (paramstore.Getter, error)) error {
	name := strings.TrimSpace(cfg.JWT.PublicKeySSMParameter)
	if name == "" {
		return nil
	}

	getter, err := newGetter(ctx)
	if err != nil {
		return err
	}
	key, err := getter.GetParameter(ctx, name)
	if err != nil {
		return err //nolint: wrapcheck
	}
	cfg.JWT.PublicKey = key

	return nil
}

func newParamStore(ctx context.Context) (paramstore.Getter, error) {
	return paramstore.NewFromEnv(ctx) //nolint: wrapcheck
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	ctx := context.Background()

	// subcommands hold on to cfg; it is filled in before any of them runs.
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "armsim",
		Short:         "Planar 2-DOF robot arm simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			log.Println("loading config ...")
			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			return logger.Setup(cfg.Environment, cfg.LogLevel) //nolint: wrapcheck
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		serveCommand(cfg),
		JWTCommand(cfg),
		forwardCommand(cfg),
		inverseCommand(cfg),
	)

	err := rootCmd.ExecuteContext(ctx)
	logger.Sync(ctx)
	if err != nil {
		log.Println(err)
		os.Exit(1) //nolint: gocritic
	}
}

// loadConfig reads path when it exists and falls back to the environment
// otherwise, so the CLI works without a config file.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return config.LoadEnv() //nolint: wrapcheck
	}

	return config.Load(path) //nolint: wrapcheck
}
