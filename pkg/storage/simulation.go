package storage

import (
	"context"
	"time"

	"armsim/pkg/domain"
)

// SimulationUpdates describes the fields applied to a simulation after a
// rendering attempt.
type SimulationUpdates struct {
	// Status is the new render status.
	Status domain.RenderStatus
	// Rendering, when non-nil, replaces the stored drawing.
	Rendering []byte
	// LastError, when provided, sets the last error text. An empty string
	// clears it.
	LastError *string
	// MaxAttempts, when positive and Status is Failed, only lets the status
	// become Failed once attempts after increment reach this threshold.
	MaxAttempts int
}

// Cursor is the position of the last simulation of a page in the
// (created_at, id) DESC ordering.
type Cursor struct {
	CreatedAt time.Time
	ID        domain.SimulationID
}

// UserSimulations is a page of a user's simulations together with the
// cursor of the next page, which is nil on the last page.
type UserSimulations struct {
	Simulations []domain.Simulation
	NextCursor  *Cursor
}

// SimulationStorage defines the operations on stored simulations. Deleted
// simulations are soft-deleted and invisible to every read.
type SimulationStorage interface {
	// StoreSimulations inserts simulations and returns the stored rows
	// including generated fields.
	StoreSimulations(ctx context.Context, simulations ...domain.Simulation) ([]domain.Simulation, error)
	// UpdateSimulationByID applies updates to one simulation, increments its
	// attempts and returns the updated row, or nil when it does not exist.
	UpdateSimulationByID(ctx context.Context,
		ID domain.SimulationID,
		updates SimulationUpdates) (*domain.Simulation, error)
	// DeleteSimulation soft-deletes a user's simulation and returns it, or nil
	// when it was not found.
	DeleteSimulation(ctx context.Context, userID domain.UserID, ID domain.SimulationID) (*domain.Simulation, error)
	// UserSimulations returns a page of a user's simulations ordered after
	// cursor (when non-nil), newest first. A non-empty mode filters by mode.
	UserSimulations(ctx context.Context,
		userID domain.UserID,
		mode domain.Mode,
		cursor *Cursor,
		limit uint) (UserSimulations, error)
	// UserSimulationByID fetches a user's simulation, or nil when not found.
	UserSimulationByID(ctx context.Context, userID domain.UserID, ID domain.SimulationID) (*domain.Simulation, error)
	// SimulationByID fetches a simulation regardless of its owner, or nil
	// when not found.
	SimulationByID(ctx context.Context, ID domain.SimulationID) (*domain.Simulation, error)
}
