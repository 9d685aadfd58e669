// Package jumpcondition implements the predicate engine that drives
// control-switch transitions: a comparison between a current sensor
// reading and a reference (another sensor, or a constant) under a chosen
// norm, debounced by a dwell timer.
package jumpcondition

import (
	"fmt"
	"math"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/sensor"
	"github.com/shaply/automesh/shared"
)

// JumpCondition evaluates a single predicate each tick. Dwell bookkeeping
// is internal state: Step must be called once per tick (with the same
// monotonic t the automaton ticks with) for dwell timing to behave, and
// Activate must be called when the owning switch's source mode becomes
// current.
type JumpCondition struct {
	current   sensor.Sensor
	reference sensor.Sensor
	norm      Norm
	epsilon   matrix.Matrix // usually 1x1; Transform uses a 2-vector
	negated   bool
	dwell     float64

	holdingSince float64
	lastTick     float64
	holding      bool
	armed        bool
}

// Config bundles the construction parameters for New, mirroring the
// DescriptionTree attribute set one-for-one.
type Config struct {
	Current   sensor.Sensor
	Reference sensor.Sensor
	Norm      Norm
	Epsilon   matrix.Matrix
	Negated   bool
	Dwell     float64
}

// New constructs a JumpCondition from Config. Epsilon of zero rows/cols is
// rejected with ShapeMismatch since every norm needs at least a scalar.
func New(cfg Config) (*JumpCondition, error) {
	if cfg.Epsilon.IsEmpty() {
		return nil, fmt.Errorf("%w: jump condition epsilon must be non-empty", shared.ErrShapeMismatch)
	}
	return &JumpCondition{
		current:   cfg.Current,
		reference: cfg.Reference,
		norm:      cfg.Norm,
		epsilon:   cfg.Epsilon,
		negated:   cfg.Negated,
		dwell:     cfg.Dwell,
	}, nil
}

// Activate arms the condition's dwell bookkeeping at time t, matching the
// spec's "activate(t) arms the condition and records t".
func (j *JumpCondition) Activate(t float64) {
	j.armed = true
	j.holding = false
	j.holdingSince = t
	j.lastTick = t
}

// Deactivate disarms the condition; dwell state resets so a later
// reactivation starts fresh.
func (j *JumpCondition) Deactivate() {
	j.armed = false
	j.holding = false
}

// Step re-evaluates the instantaneous predicate and updates dwell
// bookkeeping against monotonic time t. Returns a propagated SystemError if
// either sensor fails to produce a reading.
func (j *JumpCondition) Step(t float64) error {
	if !j.armed {
		return nil
	}

	holds, err := j.evaluateInstant()
	if err != nil {
		return err
	}

	j.lastTick = t
	if holds && !j.holding {
		j.holding = true
		j.holdingSince = t
	} else if !holds && j.holding {
		j.holding = false
	}
	return nil
}

// IsActive reports whether the condition is currently satisfied: the
// instantaneous predicate must hold and, if a positive dwell is
// configured, must have held continuously for at least that long as of
// the most recent Step.
func (j *JumpCondition) IsActive() bool {
	if !j.armed || !j.holding {
		return false
	}
	if j.dwell <= 0 {
		return true
	}
	return j.lastTick-j.holdingSince >= j.dwell
}

// evaluateInstant computes the raw (pre-negation) predicate for the
// current tick, without touching dwell state.
func (j *JumpCondition) evaluateInstant() (bool, error) {
	cur, err := j.current.CurrentValue()
	if err != nil {
		return false, err
	}
	ref, err := j.reference.CurrentValue()
	if err != nil {
		return false, err
	}

	holds, err := j.compare(cur, ref)
	if err != nil {
		return false, err
	}
	if j.negated {
		return !holds, nil
	}
	return holds, nil
}

func (j *JumpCondition) compare(cur, ref matrix.Matrix) (bool, error) {
	switch j.norm {
	case Rotation:
		return j.compareRotation(cur, ref)
	case Transform:
		return j.compareTransform(cur, ref)
	default:
		return j.compareElementwise(cur, ref)
	}
}

func (j *JumpCondition) compareElementwise(cur, ref matrix.Matrix) (bool, error) {
	if !cur.SameShape(ref) {
		return false, fmt.Errorf("%w: jump condition current/reference shape", shared.ErrShapeMismatch)
	}
	diff := cur.Sub(ref)
	eps := j.scalarEpsilon()

	switch j.norm {
	case L1:
		return diff.L1Norm() <= eps, nil
	case L2:
		return diff.L2Norm() <= eps, nil
	case LInf:
		return diff.LInfNorm() <= eps, nil
	case ThreshUpper:
		return diff.Every(func(v float64) bool { return v <= eps }), nil
	case ThreshLower:
		return diff.Every(func(v float64) bool { return v >= eps }), nil
	default:
		return false, fmt.Errorf("%w: unknown norm %q", shared.ErrInvalidInput, j.norm)
	}
}

func (j *JumpCondition) compareRotation(cur, ref matrix.Matrix) (bool, error) {
	if cur.Rows != 3 || cur.Cols != 3 || ref.Rows != 3 || ref.Cols != 3 {
		return false, fmt.Errorf("%w: Rotation norm requires 3x3 matrices", shared.ErrShapeMismatch)
	}
	angle := rotationAngle(cur, ref)
	return math.Abs(angle) <= j.scalarEpsilon(), nil
}

// compareTransform requires cur/ref to each be 4x4 homogeneous transforms:
// the 3x1 translation in column 3 is compared under L2, and the 3x3
// rotation block under Rotation. epsilon may carry one value (used for
// both) or two (position, then rotation).
func (j *JumpCondition) compareTransform(cur, ref matrix.Matrix) (bool, error) {
	if cur.Rows != 4 || cur.Cols != 4 || ref.Rows != 4 || ref.Cols != 4 {
		return false, fmt.Errorf("%w: Transform norm requires 4x4 matrices", shared.ErrShapeMismatch)
	}

	posEps, rotEps := j.transformEpsilons()

	curPos := matrix.NewVector(cur.At(0, 3), cur.At(1, 3), cur.At(2, 3))
	refPos := matrix.NewVector(ref.At(0, 3), ref.At(1, 3), ref.At(2, 3))
	if curPos.Sub(refPos).L2Norm() > posEps {
		return false, nil
	}

	curRot := submatrix3x3(cur)
	refRot := submatrix3x3(ref)
	angle := rotationAngle(curRot, refRot)
	return math.Abs(angle) <= rotEps, nil
}

func submatrix3x3(m matrix.Matrix) matrix.Matrix {
	out := matrix.New(3, 3)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			out.Set(i, k, m.At(i, k))
		}
	}
	return out
}

func (j *JumpCondition) scalarEpsilon() float64 {
	return j.epsilon.At(0, 0)
}

func (j *JumpCondition) transformEpsilons() (position, rotation float64) {
	if j.epsilon.Rows*j.epsilon.Cols >= 2 {
		return j.epsilon.Elements()[0], j.epsilon.Elements()[1]
	}
	v := j.scalarEpsilon()
	return v, v
}
