package kinematics_test

import (
	"math"
	"testing"

	"armsim/pkg/kinematics"

	"github.com/stretchr/testify/require"
)

func TestForward_Straight(t *testing.T) {
	pose := kinematics.Forward(kinematics.JointAngles{}, kinematics.LinkLengths{A1: 3, A2: 2})

	require.Equal(t, kinematics.Position2D{}, pose.Base)
	require.InDelta(t, 3.0, pose.Elbow.X, 1e-12)
	require.InDelta(t, 0.0, pose.Elbow.Y, 1e-12)
	require.InDelta(t, 5.0, pose.EndEffector.X, 1e-12)
	require.InDelta(t, 0.0, pose.EndEffector.Y, 1e-12)
}

func TestForward_FortyFiveFortyFive(t *testing.T) {
	angles := kinematics.JointAngles{
		Theta1: kinematics.Radians(45),
		Theta2: kinematics.Radians(45),
	}
	pose := kinematics.Forward(angles, kinematics.LinkLengths{A1: 3, A2: 2})

	x1 := 3 * math.Cos(math.Pi/4)
	y1 := 3 * math.Sin(math.Pi/4)
	require.InDelta(t, x1, pose.Elbow.X, 1e-12)
	require.InDelta(t, y1, pose.Elbow.Y, 1e-12)
	require.InDelta(t, x1, pose.EndEffector.X, 1e-12)
	require.InDelta(t, y1+2, pose.EndEffector.Y, 1e-12)
	require.InDelta(t, 2.1213203435596424, pose.EndEffector.X, 1e-9)
	require.InDelta(t, 4.1213203435596424, pose.EndEffector.Y, 1e-9)
}

func TestForward_AnglesAreNotNormalized(t *testing.T) {
	lengths := kinematics.LinkLengths{A1: 1.5, A2: 0.7}
	a := kinematics.Forward(kinematics.JointAngles{Theta1: 0.4, Theta2: 2.2}, lengths)
	b := kinematics.Forward(kinematics.JointAngles{Theta1: 0.4 + 4*math.Pi, Theta2: 2.2 - 2*math.Pi}, lengths)

	require.InDelta(t, a.EndEffector.X, b.EndEffector.X, 1e-9)
	require.InDelta(t, a.EndEffector.Y, b.EndEffector.Y, 1e-9)
}

func TestForward_LinkLengthsPreserved(t *testing.T) {
	lengths := kinematics.LinkLengths{A1: 4.2, A2: 0.3}
	pose := kinematics.Forward(kinematics.JointAngles{Theta1: -2.5, Theta2: 1.9}, lengths)

	require.InDelta(t, lengths.A1, pose.Elbow.Norm(), 1e-12)
	dx := pose.EndEffector.X - pose.Elbow.X
	dy := pose.EndEffector.Y - pose.Elbow.Y
	require.InDelta(t, lengths.A2, math.Hypot(dx, dy), 1e-12)
}
