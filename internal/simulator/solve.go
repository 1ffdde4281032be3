package simulator

import (
	"armsim/pkg/domain"
	"armsim/pkg/kinematics"
	"armsim/pkg/render"
)

// SolveForward validates req and computes the pose it reaches. The result is
// not stored and carries no id, owner or render status.
func SolveForward(req ForwardRequest, maxLinkLength float64) (domain.Simulation, error) {
	if err := req.Validate(maxLinkLength); err != nil {
		return domain.Simulation{}, err
	}

	angles, links := req.Angles(), req.Links()

	return domain.Simulation{
		Mode:   domain.ModeForward,
		Links:  links,
		Angles: angles,
		Pose:   kinematics.Forward(angles, links),
	}, nil
}

// SolveInverse validates req and computes the joint angles reaching its
// target on the requested branch. Targets inside the inner bound are solved
// and flagged; targets beyond reach yield kinematics.ErrUnreachableTarget.
func SolveInverse(req InverseRequest, maxLinkLength float64) (domain.Simulation, error) {
	if err := req.Validate(maxLinkLength); err != nil {
		return domain.Simulation{}, err
	}

	target, links := req.Target(), req.Links()
	angles, err := kinematics.InverseBranch(target, links, req.Branch)
	if err != nil {
		return domain.Simulation{}, err //nolint: wrapcheck
	}

	return domain.Simulation{
		Mode:                domain.ModeInverse,
		Links:               links,
		Angles:              angles,
		Target:              &target,
		Branch:              req.Branch,
		Pose:                kinematics.Forward(angles, links),
		InnerBoundViolation: kinematics.Classify(target, links) == kinematics.InsideInnerBound,
	}, nil
}

// Scene returns what gets drawn for sim.
func Scene(sim *domain.Simulation) render.Scene {
	return render.Scene{Pose: sim.Pose, Target: sim.Target}
}

// Report returns the text report of sim.
func Report(sim *domain.Simulation) string {
	if sim.Mode == domain.ModeInverse {
		return render.InverseReport(sim.Angles)
	}

	return render.ForwardReport(sim.Pose)
}
