package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"armsim/pkg/domain"
	"armsim/pkg/kinematics"

	"github.com/google/uuid"
)

// PgSimulation is the row layout of the simulations table.
type PgSimulation struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`
	Mode   string    `db:"mode"`

	A1     float64 `db:"a1"`
	A2     float64 `db:"a2"`
	Theta1 float64 `db:"theta1"`
	Theta2 float64 `db:"theta2"`

	ElbowX float64 `db:"elbow_x"`
	ElbowY float64 `db:"elbow_y"`
	X      float64 `db:"x"`
	Y      float64 `db:"y"`

	TargetX             sql.NullFloat64 `db:"target_x"`
	TargetY             sql.NullFloat64 `db:"target_y"`
	Branch              string          `db:"branch"`
	InnerBoundViolation bool            `db:"inner_bound_violation"`

	Status    string         `db:"status"`
	Rendering []byte         `db:"rendering"  goqu:"skipinsert"`
	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

// ToDomain converts the row into a domain.Simulation.
func (p *PgSimulation) ToDomain() (*domain.Simulation, error) {
	branch, err := kinematics.ParseBranch(p.Branch)
	if err != nil {
		return nil, fmt.Errorf("could not parse stored branch: %w", err)
	}

	var target *kinematics.Position2D
	if p.TargetX.Valid && p.TargetY.Valid {
		target = &kinematics.Position2D{X: p.TargetX.Float64, Y: p.TargetY.Float64}
	}

	return &domain.Simulation{
		ID:     domain.SimulationID(p.ID),
		UserID: domain.UserID(p.UserID),
		Mode:   domain.Mode(p.Mode),
		Links:  kinematics.LinkLengths{A1: p.A1, A2: p.A2},
		Angles: kinematics.JointAngles{Theta1: p.Theta1, Theta2: p.Theta2},
		Target: target,
		Branch: branch,
		Pose: kinematics.ArmPose{
			Elbow:       kinematics.Position2D{X: p.ElbowX, Y: p.ElbowY},
			EndEffector: kinematics.Position2D{X: p.X, Y: p.Y},
		},
		InnerBoundViolation: p.InnerBoundViolation,
		Status:              domain.RenderStatus(p.Status),
		Rendering:           p.Rendering,
		Attempts:            p.Attempts,
		LastError:           p.LastError.String,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt.Time,
		DeletedAt:           p.DeletedAt.Time,
	}, nil
}

// FromDomain fills the row from a domain.Simulation.
func (p *PgSimulation) FromDomain(sim domain.Simulation) {
	*p = PgSimulation{
		ID:     uuid.UUID(sim.ID),
		UserID: uuid.UUID(sim.UserID),
		Mode:   string(sim.Mode),
		A1:     sim.Links.A1,
		A2:     sim.Links.A2,
		Theta1: sim.Angles.Theta1,
		Theta2: sim.Angles.Theta2,
		ElbowX: sim.Pose.Elbow.X,
		ElbowY: sim.Pose.Elbow.Y,
		X:      sim.Pose.EndEffector.X,
		Y:      sim.Pose.EndEffector.Y,
		Branch: sim.Branch.String(),

		InnerBoundViolation: sim.InnerBoundViolation,

		Status:    string(sim.Status),
		Rendering: sim.Rendering,
		Attempts:  sim.Attempts,
		LastError: sql.NullString{
			String: sim.LastError,
			Valid:  sim.LastError != "",
		},
		CreatedAt: sim.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  sim.UpdatedAt,
			Valid: !sim.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  sim.DeletedAt,
			Valid: !sim.DeletedAt.IsZero(),
		},
	}

	if sim.Target != nil {
		p.TargetX = sql.NullFloat64{Float64: sim.Target.X, Valid: true}
		p.TargetY = sql.NullFloat64{Float64: sim.Target.Y, Valid: true}
	}
}

func domainSimulationsToPg(sims []domain.Simulation) []PgSimulation {
	out := make([]PgSimulation, len(sims))
	for i := range out {
		out[i].FromDomain(sims[i])
	}

	return out
}

func pgSimulationsToDomain(rows []PgSimulation) ([]domain.Simulation, error) {
	out := make([]domain.Simulation, 0, len(rows))
	for i := range rows {
		d, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
