// Package system defines the contract the engine consumes from the host
// robot model. The engine never mutates a System; it only reads kinematic
// and dynamic state through this interface once per tick (via sensors).
package system

import "github.com/shaply/automesh/matrix"

// BodyHandle identifies a resolved body/frame within the host model. Its
// contents are opaque to the engine; FindBody exists so controllers and
// sensors can validate a frame name once and reuse the handle.
type BodyHandle interface {
	Name() string
}

// System is the external robot model the engine queries but never owns or
// mutates.
type System interface {
	// GetDOF returns the number of actuated degrees of freedom.
	GetDOF() int

	// GetConfiguration returns the current joint positions as a (dof x 1)
	// column vector.
	GetConfiguration() matrix.Matrix

	// GetFramePose returns the named frame's pose as a 4x4 homogeneous
	// transform. Returns an error if frame is unknown.
	GetFramePose(frame string) (matrix.Matrix, error)

	// GetForceTorque returns the current wrench as a (6 x 1) column vector.
	GetForceTorque() matrix.Matrix

	// GetCurrentTime returns elapsed seconds since the host model's epoch
	// as a (1 x 1) matrix, matching the Sensor contract's uniform Matrix
	// return type.
	GetCurrentTime() matrix.Matrix

	// FindBody resolves name to a BodyHandle. Returns an error if no such
	// body exists.
	FindBody(name string) (BodyHandle, error)
}
