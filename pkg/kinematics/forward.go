package kinematics

// Forward computes the pose of the arm for the given joint angles.
// It is defined for every real input; angles are not normalized.
func Forward(angles JointAngles, lengths LinkLengths) ArmPose {
	elbow := TransformPoint(Position2D{}, angles.Theta1, 0, lengths.A1)
	end := TransformPoint(elbow, angles.Theta1+angles.Theta2, 0, lengths.A2)

	return ArmPose{
		Elbow:       elbow,
		EndEffector: end,
	}
}
