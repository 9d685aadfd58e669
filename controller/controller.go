// Package controller implements the Controller contract: an opaque
// behavior that, once activated, produces a command matrix each tick from
// a goal, proportional/derivative gains, and an optional completion-time
// schedule used by interpolators.
package controller

import (
	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// Controller is the contract every concrete controller type -- built-in or
// Custom -- satisfies. The engine treats step(t) as pure with respect to
// its own inputs (besides internal interpolator state) and get_command()
// as idempotent between steps. Activate/Step take only t: the System
// reference a controller needs to resolve a goal-relative goal or read
// live state is bound once, at Deserialize (or at construction, for
// programmatically-built controllers), not re-supplied per call.
type Controller interface {
	Type() string
	Name() string

	Activate(t float64) error
	Deactivate()
	Step(t float64) error
	GetCommand() matrix.Matrix

	GetGoal() matrix.Matrix
	SetGoal(goal matrix.Matrix)
	GetKp() matrix.Matrix
	SetKp(kp matrix.Matrix)
	GetKv() matrix.Matrix
	SetKv(kv matrix.Matrix)
	GetCompletionTimes() []float64

	Serialize(node *tree.Node)
	Deserialize(node *tree.Node, sys system.System) error
}

// base holds the fields common to every built-in controller, so each
// concrete type embeds it instead of redeclaring goal/gain/name plumbing.
// It does not itself satisfy Controller (no Type/Step/Activate).
type base struct {
	name            string
	goal            matrix.Matrix
	goalIsRelative  bool
	kp              matrix.Matrix
	kv              matrix.Matrix
	completionTimes []float64

	sys system.System

	activationPose matrix.Matrix // recorded at Activate when goalIsRelative
	active         bool
}

func (b *base) Name() string                  { return b.name }
func (b *base) GetGoal() matrix.Matrix        { return b.goal }
func (b *base) GetKp() matrix.Matrix          { return b.kp }
func (b *base) SetKp(kp matrix.Matrix)        { b.kp = kp }
func (b *base) GetKv() matrix.Matrix          { return b.kv }
func (b *base) SetKv(kv matrix.Matrix)        { b.kv = kv }
func (b *base) GetCompletionTimes() []float64 { return b.completionTimes }

// SetGoal resolves the relative/absolute distinction described by the
// engine's goal-relative design note: if goalIsRelative is set, the
// controller has been activated (so activationPose is populated), and goal
// has the activation pose's shape, goal is treated as an offset from the pose recorded at activation and the stored
// goal becomes that absolute sum; goalIsRelative is then cleared for the
// remainder of the activation. Otherwise goal is stored as given.
func (b *base) SetGoal(goal matrix.Matrix) {
	if b.goalIsRelative && b.active && goal.SameShape(b.activationPose) {
		resolved := matrix.New(goal.Rows, goal.Cols)
		for i := 0; i < goal.Rows; i++ {
			for j := 0; j < goal.Cols; j++ {
				resolved.Set(i, j, goal.At(i, j)+b.activationPose.At(i, j))
			}
		}
		b.goal = resolved
		b.goalIsRelative = false
		return
	}
	b.goal = goal
}

// activateBase records the pose at activation time (needed both for
// goal-relative resolution and as Interpolated's starting pose) and, if the
// goal is relative, resolves it immediately.
func (b *base) activateBase() {
	b.activationPose = b.sys.GetConfiguration()
	b.active = true
	if b.goalIsRelative {
		b.SetGoal(b.goal)
	}
}

// matrixZero returns true if m has no elements, used to detect the
// "gains/goal non-empty once fully constructed" invariant violation.
func matrixZero(m matrix.Matrix) bool {
	return m.IsEmpty()
}
