package simulator

import (
	"math"

	"armsim/pkg/kinematics"
	"armsim/pkg/serrors"
)

// DefaultMaxLinkLength is the largest link length accepted when no other
// bound is configured.
const DefaultMaxLinkLength = 5.0

// ForwardRequest asks for the pose reached with the given joint angles.
// Angles are in degrees.
type ForwardRequest struct {
	A1        float64
	A2        float64
	Theta1Deg float64
	Theta2Deg float64
}

// Links returns the requested link lengths.
func (r ForwardRequest) Links() kinematics.LinkLengths {
	return kinematics.LinkLengths{A1: r.A1, A2: r.A2}
}

// Angles returns the requested joint angles in radians.
func (r ForwardRequest) Angles() kinematics.JointAngles {
	return kinematics.JointAngles{
		Theta1: kinematics.Radians(r.Theta1Deg),
		Theta2: kinematics.Radians(r.Theta2Deg),
	}
}

// Validate checks the request. maxLinkLength <= 0 selects DefaultMaxLinkLength.
func (r ForwardRequest) Validate(maxLinkLength float64) error {
	if err := validateLinks(r.A1, r.A2, maxLinkLength); err != nil {
		return err
	}
	if !finite(r.Theta1Deg) || !finite(r.Theta2Deg) {
		return serrors.With(serrors.ErrBadRequest, "joint angles must be finite numbers")
	}

	return nil
}

// InverseRequest asks for the joint angles placing the end effector at (X, Y).
type InverseRequest struct {
	A1     float64
	A2     float64
	X      float64
	Y      float64
	Branch kinematics.Branch
}

// Links returns the requested link lengths.
func (r InverseRequest) Links() kinematics.LinkLengths {
	return kinematics.LinkLengths{A1: r.A1, A2: r.A2}
}

// Target returns the requested end effector position.
func (r InverseRequest) Target() kinematics.Position2D {
	return kinematics.Position2D{X: r.X, Y: r.Y}
}

// Validate checks the request. maxLinkLength <= 0 selects DefaultMaxLinkLength.
func (r InverseRequest) Validate(maxLinkLength float64) error {
	if err := validateLinks(r.A1, r.A2, maxLinkLength); err != nil {
		return err
	}
	if !finite(r.X) || !finite(r.Y) {
		return serrors.With(serrors.ErrBadRequest, "target coordinates must be finite numbers")
	}

	return nil
}

func validateLinks(a1, a2, maxLinkLength float64) error {
	if maxLinkLength <= 0 {
		maxLinkLength = DefaultMaxLinkLength
	}

	for _, l := range []float64{a1, a2} {
		if !finite(l) || l <= 0 {
			return serrors.With(serrors.ErrBadRequest, "link lengths must be positive finite numbers")
		}
		if l > maxLinkLength {
			return serrors.With(serrors.ErrBadRequest, "link lengths must not exceed %g", maxLinkLength)
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
