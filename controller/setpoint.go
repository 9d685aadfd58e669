package controller

import (
	"fmt"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// TypeSetPoint is the type tag for SetPoint, the registry key builders use
// to request one.
const TypeSetPoint = "SetPoint"

// SetPoint is the simplest built-in controller: it always commands
// kp*(goal - current), a proportional regulator toward a fixed goal with no
// interpolation. kv is stored and serialized but does not enter the command.
type SetPoint struct {
	base
	command matrix.Matrix
}

// NewSetPoint builds a SetPoint programmatically, bypassing deserialization.
func NewSetPoint(name string, goal, kp, kv matrix.Matrix, sys system.System) *SetPoint {
	return &SetPoint{base: base{name: name, goal: goal, kp: kp, kv: kv, sys: sys}}
}

func (s *SetPoint) Type() string { return TypeSetPoint }

func (s *SetPoint) Activate(t float64) error {
	if matrixZero(s.goal) || matrixZero(s.kp) {
		return fmt.Errorf("%w: SetPoint %q activated with empty goal/gain", shared.ErrInvalidInput, s.name)
	}
	s.activateBase()
	s.command = matrix.New(s.goal.Rows, s.goal.Cols)
	return nil
}

func (s *SetPoint) Deactivate() {
	s.active = false
}

func (s *SetPoint) Step(t float64) error {
	current := s.sys.GetConfiguration()
	if !current.SameShape(s.goal) {
		return fmt.Errorf("%w: SetPoint %q goal/pose shape mismatch", shared.ErrShapeMismatch, s.name)
	}
	diff := s.goal.Sub(current)
	out := matrix.New(diff.Rows, diff.Cols)
	for i := 0; i < diff.Rows; i++ {
		for j := 0; j < diff.Cols; j++ {
			out.Set(i, j, elementOrScalar(s.kp, i, j)*diff.At(i, j))
		}
	}
	s.command = out
	return nil
}

func (s *SetPoint) GetCommand() matrix.Matrix { return s.command }

func (s *SetPoint) Serialize(node *tree.Node) {
	s.serializeBase(node, s.Type())
}

func (s *SetPoint) Deserialize(node *tree.Node, sys system.System) error {
	b, err := deserializeBase(node, sys)
	if err != nil {
		return err
	}
	s.base = b
	return nil
}

// elementOrScalar treats a 1x1 gain matrix as a scalar applied uniformly,
// otherwise indexes it directly -- covers both the common "kp is a single
// number" case and a per-DOF gain vector/matrix.
func elementOrScalar(m matrix.Matrix, i, j int) float64 {
	if m.Rows == 1 && m.Cols == 1 {
		return m.At(0, 0)
	}
	return m.At(i, j)
}
