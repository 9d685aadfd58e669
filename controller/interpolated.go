package controller

import (
	"fmt"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// TypeInterpolated is the type tag for Interpolated.
const TypeInterpolated = "Interpolated"

// Interpolated linearly interpolates from the pose recorded at activation
// toward goal, reaching it at the last entry of completionTimes (measured
// as seconds elapsed since activation); proportional feedback on the
// interpolated setpoint is then applied exactly as SetPoint does.
type Interpolated struct {
	base
	command      matrix.Matrix
	activateTime float64
}

// NewInterpolated builds an Interpolated programmatically.
func NewInterpolated(name string, goal, kp, kv matrix.Matrix, completionTimes []float64, sys system.System) *Interpolated {
	return &Interpolated{base: base{
		name: name, goal: goal, kp: kp, kv: kv,
		completionTimes: completionTimes, sys: sys,
	}}
}

func (c *Interpolated) Type() string { return TypeInterpolated }

func (c *Interpolated) Activate(t float64) error {
	if matrixZero(c.goal) || matrixZero(c.kp) {
		return fmt.Errorf("%w: Interpolated %q activated with empty goal/gain", shared.ErrInvalidInput, c.name)
	}
	if len(c.completionTimes) == 0 {
		return fmt.Errorf("%w: Interpolated %q requires a non-empty completion_times", shared.ErrInvalidInput, c.name)
	}
	c.activateBase()
	c.activateTime = t
	c.command = matrix.New(c.goal.Rows, c.goal.Cols)
	return nil
}

func (c *Interpolated) Deactivate() {
	c.active = false
}

func (c *Interpolated) Step(t float64) error {
	current := c.sys.GetConfiguration()
	if !current.SameShape(c.goal) || !current.SameShape(c.activationPose) {
		return fmt.Errorf("%w: Interpolated %q goal/pose shape mismatch", shared.ErrShapeMismatch, c.name)
	}

	alpha := c.progress(t)
	setpoint := matrix.New(c.goal.Rows, c.goal.Cols)
	for i := 0; i < c.goal.Rows; i++ {
		for j := 0; j < c.goal.Cols; j++ {
			start := c.activationPose.At(i, j)
			end := c.goal.At(i, j)
			setpoint.Set(i, j, start+alpha*(end-start))
		}
	}

	diff := setpoint.Sub(current)
	out := matrix.New(diff.Rows, diff.Cols)
	for i := 0; i < diff.Rows; i++ {
		for j := 0; j < diff.Cols; j++ {
			out.Set(i, j, elementOrScalar(c.kp, i, j)*diff.At(i, j))
		}
	}
	c.command = out
	return nil
}

// progress returns the fraction, clamped to [0,1], of the way from
// activation to the final completion time at elapsed time t.
func (c *Interpolated) progress(t float64) float64 {
	elapsed := t - c.activateTime
	final := c.completionTimes[len(c.completionTimes)-1]
	if final <= 0 {
		return 1
	}
	alpha := elapsed / final
	if alpha < 0 {
		return 0
	}
	if alpha > 1 {
		return 1
	}
	return alpha
}

func (c *Interpolated) GetCommand() matrix.Matrix { return c.command }

func (c *Interpolated) Serialize(node *tree.Node) {
	c.serializeBase(node, c.Type())
}

func (c *Interpolated) Deserialize(node *tree.Node, sys system.System) error {
	b, err := deserializeBase(node, sys)
	if err != nil {
		return err
	}
	c.base = b
	return nil
}
