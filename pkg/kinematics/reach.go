package kinematics

// Reachability describes where a target lies relative to the workspace.
type Reachability int

const (
	// Reachable targets lie in the annulus |A1-A2| <= r <= A1+A2.
	Reachable Reachability = iota
	// OutsideReach targets lie beyond the fully extended arm.
	OutsideReach
	// InsideInnerBound targets lie in the hole around the base.
	InsideInnerBound
)

func (r Reachability) String() string {
	switch r {
	case OutsideReach:
		return "OUTSIDE_REACH"
	case InsideInnerBound:
		return "INSIDE_INNER_BOUND"
	default:
		return "REACHABLE"
	}
}

// Classify reports where target lies relative to the reachable workspace.
func Classify(target Position2D, lengths LinkLengths) Reachability {
	r := target.Norm()

	switch {
	case r > lengths.Reach():
		return OutsideReach
	case r < lengths.InnerReach():
		return InsideInnerBound
	default:
		return Reachable
	}
}
