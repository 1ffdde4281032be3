package worker

import (
	"context"
	"errors"
	"fmt"

	"armsim/internal/simulator"
	"armsim/pkg/domain"
	"armsim/pkg/logger"
	"armsim/pkg/serrors"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// RenderWorker is a River worker that draws stored simulations.
//
// A simulation deleted before its job runs is reported as not found; the job
// is cancelled since retrying cannot succeed. Any other error is returned so
// River retries the job up to its MaxAttempts.
type RenderWorker struct {
	river.WorkerDefaults[simulator.RenderJobArgs]

	simulator simulator.Simulator
}

// NewRenderWorker constructs a RenderWorker using the provided simulator.
func NewRenderWorker(simulator simulator.Simulator) *RenderWorker {
	return &RenderWorker{
		simulator: simulator,
	}
}

// Work renders the simulation named by the job.
func (w *RenderWorker) Work(ctx context.Context, job *river.Job[simulator.RenderJobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Int("attempt", job.Attempt),
		zap.String("simulationID", job.Args.SimulationID.String()))

	err := w.simulator.Render(ctx, domain.SimulationID(job.Args.SimulationID))
	if err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			logger.Warn(ctx, "simulation to render no longer exists")

			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "error in rendering simulation", zap.Error(err))

		return fmt.Errorf("could not render simulation: %w", err)
	}

	logger.Info(ctx, "simulation rendered successfully")

	return nil
}
