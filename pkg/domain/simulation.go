package domain

import (
	"time"

	"armsim/pkg/kinematics"

	"github.com/google/uuid"
)

// SimulationID uniquely identifies a stored simulation.
type SimulationID uuid.UUID

// String returns the canonical UUID form of the id.
func (id SimulationID) String() string { return uuid.UUID(id).String() }

// Mode tells which solver produced a simulation.
type Mode string

const (
	// ModeForward simulations start from joint angles.
	ModeForward Mode = "FORWARD"
	// ModeInverse simulations start from a target position.
	ModeInverse Mode = "INVERSE"
)

// RenderStatus is the lifecycle state of a simulation's drawing.
type RenderStatus string

const (
	// RenderStatusPending means the drawing has been queued but not produced yet.
	RenderStatusPending RenderStatus = "PENDING"
	// RenderStatusRendered means Rendering holds the SVG drawing.
	RenderStatusRendered RenderStatus = "RENDERED"
	// RenderStatusFailed means rendering gave up; see LastError.
	RenderStatusFailed RenderStatus = "FAILED"
)

// Simulation is one solved request together with its inputs, results and
// drawing.
type Simulation struct {
	ID     SimulationID `json:"id"`
	UserID UserID       `json:"userId"`
	Mode   Mode         `json:"mode"`

	// Links are the link lengths used by the solver.
	Links kinematics.LinkLengths `json:"links"`
	// Angles are the input angles of a forward simulation or the solution of
	// an inverse one, in radians.
	Angles kinematics.JointAngles `json:"angles"`
	// Target is the requested position of an inverse simulation.
	Target *kinematics.Position2D `json:"target,omitempty"`
	// Branch is the elbow configuration chosen for an inverse simulation.
	Branch kinematics.Branch `json:"-"`
	// Pose is the arm pose reached with Angles.
	Pose kinematics.ArmPose `json:"pose"`
	// InnerBoundViolation flags targets inside the unreachable hole around the
	// base; the solver still returns the fully folded pose for them.
	InnerBoundViolation bool `json:"innerBoundViolation"`

	Status    RenderStatus `json:"status"`
	Rendering []byte       `json:"-"`
	Attempts  uint         `json:"attempts"`
	LastError string       `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `json:"-"`
}
