// Package kinematics computes forward and inverse kinematics of a planar
// arm with two revolute joints. The base joint sits at the origin, link 1
// rotates about it by Theta1 from the positive X axis, and link 2 rotates
// about the elbow by Theta2 relative to link 1.
//
// All functions are pure: angles are in radians, results are values, and
// nothing is shared between calls, so they are safe for concurrent use.
// Conversions from user-facing degrees belong to the caller (see Radians).
package kinematics
