package sensor

import (
	"fmt"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// JointConfiguration reads the (dof x 1) joint position vector.
type JointConfiguration struct {
	sys system.System
}

// NewJointConfiguration builds a JointConfiguration sensor directly, for
// programmatic construction bypassing Deserialize.
func NewJointConfiguration(sys system.System) *JointConfiguration {
	return &JointConfiguration{sys: sys}
}

func deserializeJointConfiguration(sys system.System) *JointConfiguration {
	return NewJointConfiguration(sys)
}

func (s *JointConfiguration) Type() string { return TypeJointConfiguration }

func (s *JointConfiguration) CurrentValue() (matrix.Matrix, error) {
	return s.sys.GetConfiguration(), nil
}

func (s *JointConfiguration) Serialize(node *tree.Node) {
	node.SetString("type", s.Type())
}

// FramePose reads a named frame's 4x4 homogeneous transform.
type FramePose struct {
	sys   system.System
	frame string
}

func deserializeFramePose(node *tree.Node, sys system.System) (*FramePose, error) {
	frame, ok := node.GetString("frame")
	if !ok {
		return nil, fmt.Errorf("%w: FramePose sensor missing frame attribute", shared.ErrMissingAttribute)
	}
	return &FramePose{sys: sys, frame: frame}, nil
}

func (s *FramePose) Type() string { return TypeFramePose }

func (s *FramePose) CurrentValue() (matrix.Matrix, error) {
	pose, err := s.sys.GetFramePose(s.frame)
	if err != nil {
		return matrix.Matrix{}, fmt.Errorf("%w: %v", shared.ErrSystemError, err)
	}
	return pose, nil
}

func (s *FramePose) Serialize(node *tree.Node) {
	node.SetString("type", s.Type())
	node.SetString("frame", s.frame)
}

// ForceTorque reads the (6 x 1) wrench.
type ForceTorque struct {
	sys system.System
}

func deserializeForceTorque(sys system.System) *ForceTorque {
	return &ForceTorque{sys: sys}
}

func (s *ForceTorque) Type() string { return TypeForceTorque }

func (s *ForceTorque) CurrentValue() (matrix.Matrix, error) {
	return s.sys.GetForceTorque(), nil
}

func (s *ForceTorque) Serialize(node *tree.Node) {
	node.SetString("type", s.Type())
}

// Clock returns the System's GetCurrentTime reading unchanged, a (1 x 1)
// matrix; it does not subtract the time at which the automaton started.
type Clock struct {
	sys system.System
}

func deserializeClock(sys system.System) *Clock {
	return &Clock{sys: sys}
}

func (s *Clock) Type() string { return TypeClock }

func (s *Clock) CurrentValue() (matrix.Matrix, error) {
	return s.sys.GetCurrentTime(), nil
}

func (s *Clock) Serialize(node *tree.Node) {
	node.SetString("type", s.Type())
}

// Constant always returns the fixed matrix it was constructed with; it
// takes no System input and is typically used as the reference side of a
// jump condition.
type Constant struct {
	value matrix.Matrix
}

// NewConstant builds a Constant sensor directly (for programmatic
// construction, bypassing deserialization).
func NewConstant(value matrix.Matrix) *Constant {
	return &Constant{value: value}
}

func deserializeConstant(node *tree.Node) (*Constant, error) {
	value, ok := node.GetMatrix("value")
	if !ok {
		return nil, fmt.Errorf("%w: Constant sensor missing value attribute", shared.ErrMissingAttribute)
	}
	return &Constant{value: value}, nil
}

func (s *Constant) Type() string { return TypeConstant }

func (s *Constant) CurrentValue() (matrix.Matrix, error) {
	return s.value, nil
}

func (s *Constant) Serialize(node *tree.Node) {
	node.SetString("type", s.Type())
	node.SetMatrix("value", s.value)
}
