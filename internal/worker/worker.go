// Package worker runs the background jobs of the simulator on River.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"armsim/internal/config"
	"armsim/internal/simulator"
	"armsim/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// DefaultWorkers is the number of concurrent render jobs when none is configured.
const DefaultWorkers = 10

// Options configure the River client.
type Options struct {
	// Workers is the number of jobs processed concurrently.
	Workers int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Workers: cfg.Simulator.RenderWorkers,
	}
}

// Config builds the River configuration registering every worker of the
// simulator. River logs through the context's zap logger.
func Config(ctx context.Context, sim simulator.Simulator, opts Options) *river.Config {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRenderWorker(sim))

	return &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: opts.Workers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	}
}

// Start creates and starts a River client processing render jobs.
func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	sim simulator.Simulator,
	opts Options) (*river.Client[pgx.Tx], error) {
	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), Config(ctx, sim, opts))
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
