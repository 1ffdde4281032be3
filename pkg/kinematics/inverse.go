package kinematics

import (
	"fmt"
	"math"
	"strings"

	"armsim/pkg/serrors"
)

// ErrUnreachableTarget is the kind of error returned when a target lies
// farther from the base than the fully extended arm.
var ErrUnreachableTarget = serrors.NewKind("UNREACHABLE_TARGET") //nolint: gochecknoglobals

// UnreachableMessage is the user-facing text of an unreachable target error.
const UnreachableMessage = "Target is out of reach"

// Branch selects one of the two joint configurations reaching a point.
type Branch int

const (
	// ElbowUp returns Theta2 in [0, π]. It is the default.
	ElbowUp Branch = iota
	// ElbowDown mirrors ElbowUp and returns Theta2 in [-π, 0].
	ElbowDown
)

func (b Branch) String() string {
	if b == ElbowDown {
		return "ELBOW_DOWN"
	}

	return "ELBOW_UP"
}

// ParseBranch parses the textual form of a Branch. An empty string yields ElbowUp.
func ParseBranch(s string) (Branch, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ELBOW_UP":
		return ElbowUp, nil
	case "ELBOW_DOWN":
		return ElbowDown, nil
	default:
		return ElbowUp, fmt.Errorf("unknown branch %q", s)
	}
}

// Inverse returns the elbow-up joint angles that place the end effector at
// target. Targets beyond the fully extended arm yield ErrUnreachableTarget.
//
// Targets inside the inner hole (closer than |A1-A2|) are not rejected: the
// cosine of Theta2 is clamped to -1 and a fully folded pose is returned.
// Use Classify to detect that case.
func Inverse(target Position2D, lengths LinkLengths) (JointAngles, error) {
	return InverseBranch(target, lengths, ElbowUp)
}

// InverseBranch is Inverse with an explicit choice of branch.
func InverseBranch(target Position2D, lengths LinkLengths, branch Branch) (JointAngles, error) {
	a1, a2 := lengths.A1, lengths.A2

	r := target.Norm()
	if r > a1+a2 {
		return JointAngles{}, serrors.With(ErrUnreachableTarget, UnreachableMessage)
	}

	// clamp absorbs rounding at the workspace boundary
	cosTheta2 := (r*r - a1*a1 - a2*a2) / (2 * a1 * a2)
	theta2 := math.Acos(math.Max(-1, math.Min(1, cosTheta2)))
	// a straight arm is the same pose on both branches
	if branch == ElbowDown && theta2 != 0 {
		theta2 = -theta2
	}

	k1 := a1 + a2*math.Cos(theta2)
	k2 := a2 * math.Sin(theta2)
	theta1 := math.Atan2(target.Y, target.X) - math.Atan2(k2, k1)

	return JointAngles{Theta1: theta1, Theta2: theta2}, nil
}
