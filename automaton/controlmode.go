package automaton

import (
	"fmt"

	"github.com/shaply/automesh/controlset"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// ControlMode is a mode-graph vertex: a unique name paired with exactly
// one owned ControlSet.
type ControlMode struct {
	name       string
	controlSet controlset.ControlSet
}

// NewControlMode builds a ControlMode programmatically.
func NewControlMode(name string, cs controlset.ControlSet) *ControlMode {
	return &ControlMode{name: name, controlSet: cs}
}

func (m *ControlMode) Name() string                      { return m.name }
func (m *ControlMode) ControlSet() controlset.ControlSet { return m.controlSet }

// Serialize emits name and the mode's single ControlSet child.
func (m *ControlMode) Serialize(node *tree.Node) {
	node.SetString("name", m.name)
	child := tree.New("ControlSet")
	m.controlSet.Serialize(child)
	node.AddChild(child)
}

// DeserializeControlMode reconstructs a ControlMode: a name attribute and
// exactly one ControlSet child, whose type is resolved through reg.
func DeserializeControlMode(node *tree.Node, sys system.System, reg Registry) (*ControlMode, error) {
	name, ok := node.GetString("name")
	if !ok {
		return nil, fmt.Errorf("%w: ControlMode missing name attribute", shared.ErrMissingAttribute)
	}

	children := node.ChildrenOfType("ControlSet")
	if len(children) != 1 {
		return nil, fmt.Errorf("%w: ControlMode %q must have exactly one ControlSet child, found %d", shared.ErrMissingAttribute, name, len(children))
	}
	csNode := children[0]

	typ, ok := csNode.GetString("type")
	if !ok {
		return nil, fmt.Errorf("%w: ControlSet missing type attribute", shared.ErrMissingAttribute)
	}

	cs, err := reg.NewControlSet(typ)
	if err != nil {
		return nil, err
	}
	if err := cs.Deserialize(csNode, sys, reg); err != nil {
		return nil, err
	}

	return NewControlMode(name, cs), nil
}
