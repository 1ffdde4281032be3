package render

import (
	"fmt"

	"armsim/pkg/kinematics"
)

// ForwardReport formats the end-effector position of pose.
func ForwardReport(pose kinematics.ArmPose) string {
	return fmt.Sprintf("End Effector Position: x = %.2f, y = %.2f", pose.EndEffector.X, pose.EndEffector.Y)
}

// InverseReport formats angles in degrees, one joint per line.
func InverseReport(angles kinematics.JointAngles) string {
	return fmt.Sprintf("Joint 1 Angle (Theta1): %.2f degrees\nJoint 2 Angle (Theta2): %.2f degrees",
		kinematics.Degrees(angles.Theta1), kinematics.Degrees(angles.Theta2))
}
