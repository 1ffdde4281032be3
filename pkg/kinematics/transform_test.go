package kinematics_test

import (
	"math"
	"testing"

	"armsim/pkg/kinematics"

	"github.com/stretchr/testify/require"
)

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name  string
		base  kinematics.Position2D
		theta float64
		d     float64
		a     float64
		want  kinematics.Position2D
	}{
		{
			name: "zero angle extends along X",
			a:    2,
			want: kinematics.Position2D{X: 2},
		},
		{
			name:  "quarter turn extends along Y",
			theta: math.Pi / 2,
			a:     3,
			want:  kinematics.Position2D{Y: 3},
		},
		{
			name:  "offset by base",
			base:  kinematics.Position2D{X: 1, Y: -1},
			theta: math.Pi,
			a:     1,
			want:  kinematics.Position2D{X: 0, Y: -1},
		},
		{
			name:  "z offset has no planar effect",
			theta: math.Pi / 4,
			d:     10,
			a:     math.Sqrt2,
			want:  kinematics.Position2D{X: 1, Y: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinematics.TransformPoint(tt.base, tt.theta, tt.d, tt.a)
			require.InDelta(t, tt.want.X, got.X, 1e-12)
			require.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestTransform_Homogeneous(t *testing.T) {
	m := kinematics.Transform(math.Pi/3, 4, 2)

	require.InDelta(t, 2*math.Cos(math.Pi/3), m.At(0, 3), 1e-12)
	require.InDelta(t, 2*math.Sin(math.Pi/3), m.At(1, 3), 1e-12)
	require.InDelta(t, 4.0, m.At(2, 3), 1e-12)
	require.InDelta(t, 1.0, m.At(3, 3), 1e-12)
	require.InDelta(t, 0.0, m.At(3, 0), 1e-12)
}

func TestChain_MatchesForward(t *testing.T) {
	angles := kinematics.JointAngles{Theta1: 0.3, Theta2: -1.1}
	lengths := kinematics.LinkLengths{A1: 3, A2: 2}

	m := kinematics.Chain(angles, lengths)
	pose := kinematics.Forward(angles, lengths)

	require.InDelta(t, pose.EndEffector.X, m.At(0, 3), 1e-12)
	require.InDelta(t, pose.EndEffector.Y, m.At(1, 3), 1e-12)
	// orientation of the last frame is the sum of both joint angles
	require.InDelta(t, math.Cos(angles.Theta1+angles.Theta2), m.At(0, 0), 1e-12)
}

func TestAngleConversions(t *testing.T) {
	require.InDelta(t, math.Pi, kinematics.Radians(180), 1e-15)
	require.InDelta(t, -90.0, kinematics.Degrees(-math.Pi/2), 1e-12)
	require.InDelta(t, 45.0, kinematics.Degrees(kinematics.Radians(45)), 1e-12)
}
