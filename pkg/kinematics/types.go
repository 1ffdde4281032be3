package kinematics

import "math"

// Position2D is a point in the arm's base frame.
type Position2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Norm returns the distance of the point from the base joint.
func (p Position2D) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LinkLengths holds the lengths of link 1 (A1) and link 2 (A2).
// Both are expected to be strictly positive.
type LinkLengths struct {
	A1 float64 `json:"a1"`
	A2 float64 `json:"a2"`
}

// Reach returns the radius of the fully extended arm.
func (l LinkLengths) Reach() float64 { return l.A1 + l.A2 }

// InnerReach returns the radius of the unreachable hole around the base.
func (l LinkLengths) InnerReach() float64 { return math.Abs(l.A1 - l.A2) }

// JointAngles are the joint angles in radians. Theta2 is relative to the
// direction of link 1, not to the X axis.
type JointAngles struct {
	Theta1 float64 `json:"theta1"`
	Theta2 float64 `json:"theta2"`
}

// ArmPose is the set of joint positions that describes the arm for rendering.
type ArmPose struct {
	Base        Position2D `json:"base"`
	Elbow       Position2D `json:"elbow"`
	EndEffector Position2D `json:"endEffector"`
}
