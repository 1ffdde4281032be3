package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"armsim/internal/api"
	"armsim/internal/api/handler/v1handler"
	"armsim/internal/config"
	"armsim/internal/simulator"
	"armsim/internal/worker"
	"armsim/pkg/logger"
	"armsim/pkg/metrics"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background render workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := resolvePublicKey(ctx, cfg, newParamStore); err != nil {
				return fmt.Errorf("could not resolve jwt public key: %w", err)
			}

			meterProvider, err := metrics.NewMeterProvider(nil)
			if err != nil {
				return fmt.Errorf("could not create meter provider: %w", err)
			}
			otel.SetMeterProvider(meterProvider)

			pg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			sim, err := simulator.New(pg, simulator.NewOptions(cfg))
			if err != nil {
				return fmt.Errorf("could not create simulator: %w", err)
			}

			riverClient, err := worker.Start(ctx, pg.Pool, sim, worker.NewOptions(cfg))
			if err != nil {
				return fmt.Errorf("could not start render workers: %w", err)
			}

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps:     v1handler.Deps{Simulator: sim},
				Database: pg,
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(shutdownCtx, "stopping render workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "could not stop render workers", zap.Error(err))
			}
			if err := meterProvider.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not shut down meter provider", zap.Error(err))
			}

			return nil
		},
	}

	return cmd
}
