package simulator_test

import (
	"math"
	"testing"

	"armsim/internal/simulator"
	"armsim/pkg/domain"
	"armsim/pkg/kinematics"
	"armsim/pkg/render"
	"armsim/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestSolveForward(t *testing.T) {
	sim, err := simulator.SolveForward(simulator.ForwardRequest{A1: 3, A2: 2, Theta1Deg: 45, Theta2Deg: 45}, 5)
	require.NoError(t, err)

	require.Equal(t, domain.ModeForward, sim.Mode)
	require.Nil(t, sim.Target)
	require.InDelta(t, 3*math.Sqrt2/2, sim.Pose.EndEffector.X, 1e-9)
	require.InDelta(t, 3*math.Sqrt2/2+2, sim.Pose.EndEffector.Y, 1e-9)
	require.Equal(t, "End Effector Position: x = 2.12, y = 4.12", simulator.Report(&sim))
	require.Equal(t, render.Scene{Pose: sim.Pose}, simulator.Scene(&sim))

	_, err = simulator.SolveForward(simulator.ForwardRequest{A1: 0, A2: 2}, 5)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestSolveInverse(t *testing.T) {
	sim, err := simulator.SolveInverse(simulator.InverseRequest{A1: 3, A2: 2, X: 2, Y: 2}, 5)
	require.NoError(t, err)

	require.Equal(t, domain.ModeInverse, sim.Mode)
	require.False(t, sim.InnerBoundViolation)
	require.Equal(t, kinematics.ElbowUp, sim.Branch)
	require.NotNil(t, sim.Target)
	require.InDelta(t, 2, sim.Pose.EndEffector.X, 1e-9)
	require.InDelta(t, 2, sim.Pose.EndEffector.Y, 1e-9)
	require.Equal(t, "Joint 1 Angle (Theta1): 5.00 degrees\nJoint 2 Angle (Theta2): 114.62 degrees", simulator.Report(&sim))
	require.Equal(t, sim.Target, simulator.Scene(&sim).Target)

	sim, err = simulator.SolveInverse(simulator.InverseRequest{A1: 2, A2: 1, X: 0.5, Y: 0}, 5)
	require.NoError(t, err)
	require.True(t, sim.InnerBoundViolation)

	_, err = simulator.SolveInverse(simulator.InverseRequest{A1: 1, A2: 1, X: 3, Y: 0}, 5)
	require.ErrorIs(t, err, kinematics.ErrUnreachableTarget)

	_, err = simulator.SolveInverse(simulator.InverseRequest{A1: 9, A2: 1, X: 1, Y: 0}, 5)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}
