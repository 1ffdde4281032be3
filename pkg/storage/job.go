package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs next to the stored data, so a job
// inserted inside a transaction only becomes visible once it commits.
type JobStorage interface {
	// AddJob enqueues a job and reports whether it was inserted, as opposed
	// to skipped as a duplicate of a unique job.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
