package simulator

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// RenderJobArgs contains the arguments of a render job submitted to River.
type RenderJobArgs struct {
	// SimulationID is the simulation to draw. It is unique so a simulation
	// never has two render jobs in flight.
	SimulationID uuid.UUID `json:"simulationId" river:"unique"`

	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the render worker.
func (args RenderJobArgs) Kind() string { return "RenderSimulationJob" }

// InsertOpts returns the River options used when the job is enqueued.
func (args RenderJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
