package kinematics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Transform returns the 4x4 homogeneous transform of a link rotated by theta
// about Z, displaced by d along Z and extended by a along its own X axis.
// The link twist is always zero for a planar arm.
func Transform(theta, d, a float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)

	return mat.NewDense(4, 4, []float64{
		c, -s, 0, a * c,
		s, c, 0, a * s,
		0, 0, 1, d,
		0, 0, 0, 1,
	})
}

// origin is the homogeneous origin of a link frame.
var origin = mat.NewVecDense(4, []float64{0, 0, 0, 1}) //nolint: gochecknoglobals

// TransformPoint returns the tip of a link of length a whose base sits at
// base and which points at angle theta. The out-of-plane offset d does not
// affect the planar result.
func TransformPoint(base Position2D, theta, d, a float64) Position2D {
	var tip mat.VecDense
	tip.MulVec(Transform(theta, d, a), origin)

	return Position2D{
		X: base.X + tip.AtVec(0),
		Y: base.Y + tip.AtVec(1),
	}
}

// Chain composes the link transforms of both joints and returns the
// homogeneous transform from the base frame to the end-effector frame.
func Chain(angles JointAngles, lengths LinkLengths) *mat.Dense {
	var t mat.Dense
	t.Mul(Transform(angles.Theta1, 0, lengths.A1), Transform(angles.Theta2, 0, lengths.A2))

	return &t
}
