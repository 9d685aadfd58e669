package automaton

import (
	"fmt"

	"github.com/shaply/automesh/jumpcondition"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// ControlSwitch is a conjunction of jump conditions, activated when the
// automaton enters its source mode and deactivated on leaving. Mirrors
// the original ControlSwitch's activate/deactivate/step fan-out
// (JumpCondition-by-JumpCondition) and its isActive() short-circuit
// conjunction.
type ControlSwitch struct {
	name   string
	source string
	target string

	conditions   []*jumpcondition.JumpCondition
	vacuousTruth bool
}

// NewControlSwitch builds a ControlSwitch programmatically. vacuousTruth
// opts into treating zero conditions as always-active; the engine's
// default (when building via Deserialize) is jumpcondition.VacuousTruth
// (always-inactive), per the governing design note on vacuous empty
// condition lists.
func NewControlSwitch(name, source, target string, vacuousTruth bool) *ControlSwitch {
	return &ControlSwitch{name: name, source: source, target: target, vacuousTruth: vacuousTruth}
}

func (s *ControlSwitch) Name() string   { return s.name }
func (s *ControlSwitch) Source() string { return s.source }
func (s *ControlSwitch) Target() string { return s.target }

// Add appends a jump condition to the switch's conjunction.
func (s *ControlSwitch) Add(jc *jumpcondition.JumpCondition) {
	s.conditions = append(s.conditions, jc)
}

// IsActive is true when every jump condition is active. An empty
// condition list resolves to vacuousTruth rather than true, avoiding the
// original's accidental instant-transition behavior.
func (s *ControlSwitch) IsActive() bool {
	if len(s.conditions) == 0 {
		return s.vacuousTruth
	}
	for _, jc := range s.conditions {
		if !jc.IsActive() {
			return false
		}
	}
	return true
}

// Activate fans out to every condition.
func (s *ControlSwitch) Activate(t float64) {
	for _, jc := range s.conditions {
		jc.Activate(t)
	}
}

// Deactivate fans out to every condition.
func (s *ControlSwitch) Deactivate() {
	for _, jc := range s.conditions {
		jc.Deactivate()
	}
}

// Step fans out to every condition, propagating the first error (e.g. a
// propagated SystemError from a failing sensor read).
func (s *ControlSwitch) Step(t float64) error {
	for _, jc := range s.conditions {
		if err := jc.Step(t); err != nil {
			return err
		}
	}
	return nil
}

// Serialize emits name/source/target and the switch's JumpCondition
// children, in insertion (conjunction-evaluation) order.
func (s *ControlSwitch) Serialize(node *tree.Node) {
	node.SetString("name", s.name)
	node.SetString("source", s.source)
	node.SetString("target", s.target)
	for _, jc := range s.conditions {
		child := tree.New("JumpCondition")
		jc.Serialize(child)
		node.AddChild(child)
	}
}

// DeserializeControlSwitch reconstructs a ControlSwitch from its
// DescriptionTree encoding. A switch with no source, target, or name
// fails with MissingAttribute; resolving source/target against the
// automaton's mode table happens in the caller (HybridAutomaton's own
// Deserialize), since a ControlSwitch alone doesn't know the mode table.
func DeserializeControlSwitch(node *tree.Node, sys system.System) (*ControlSwitch, error) {
	name, ok := node.GetString("name")
	if !ok {
		return nil, fmt.Errorf("%w: ControlSwitch missing name attribute", shared.ErrMissingAttribute)
	}
	source, ok := node.GetString("source")
	if !ok {
		return nil, fmt.Errorf("%w: ControlSwitch %q missing source attribute", shared.ErrMissingAttribute, name)
	}
	target, ok := node.GetString("target")
	if !ok {
		return nil, fmt.Errorf("%w: ControlSwitch %q missing target attribute", shared.ErrMissingAttribute, name)
	}
	vacuousTruth, _ := node.GetBool("vacuous_truth") // defaults to jumpcondition.VacuousTruth

	sw := NewControlSwitch(name, source, target, vacuousTruth || jumpcondition.VacuousTruth)

	for _, child := range node.ChildrenOfType("JumpCondition") {
		jc, err := jumpcondition.Deserialize(child, sys)
		if err != nil {
			return nil, err
		}
		sw.Add(jc)
	}
	return sw, nil
}
