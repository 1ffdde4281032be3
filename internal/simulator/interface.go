package simulator

import (
	"context"

	"armsim/pkg/domain"
)

//go:generate mockgen -package mocksimulator -source=interface.go -destination=mock/mocksimulator.go *
type Simulator interface {
	Forward(ctx context.Context, userID domain.UserID, req ForwardRequest) (*domain.Simulation, error)
	Inverse(ctx context.Context, userID domain.UserID, req InverseRequest) (*domain.Simulation, error)
	PreviewForward(ctx context.Context, req ForwardRequest) ([]byte, error)
	Simulations(ctx context.Context,
		userID domain.UserID,
		mode domain.Mode,
		cursor string,
		limit uint) ([]domain.Simulation, string, error)
	Result(ctx context.Context, userID domain.UserID, simulationID domain.SimulationID) (*domain.Simulation, error)
	Rendering(ctx context.Context, userID domain.UserID, simulationID domain.SimulationID) ([]byte, error)
	Delete(ctx context.Context, userID domain.UserID, simulationID domain.SimulationID) error
	Render(ctx context.Context, simulationID domain.SimulationID) error
}
