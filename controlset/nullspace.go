package controlset

import (
	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// TypeNullSpace is the type tag for NullSpace, the default multi-objective
// composition policy.
const TypeNullSpace = "NullSpace"

// NullSpace implements serial null-space composition: controllers ordered
// by descending priority, each higher-priority command projecting the
// remaining degrees of freedom onto which lower-priority controllers may
// act.
type NullSpace struct {
	base
	dof int
}

// NewNullSpace builds a NullSpace set programmatically for a plant with
// the given actuated-DOF size.
func NewNullSpace(name string, dof int) *NullSpace {
	return &NullSpace{base: base{name: name}, dof: dof}
}

func (n *NullSpace) Type() string { return TypeNullSpace }

func (n *NullSpace) AddController(c controller.Controller, isGoalController bool) error {
	return n.addController(c, isGoalController, 0)
}

// SetPriority assigns priority to the named controller; used both by
// programmatic callers and by Deserialize after reading each Controller
// child's "priority" attribute.
func (n *NullSpace) SetPriority(name string, priority int) error {
	return n.setPriority(name, priority)
}

func (n *NullSpace) Activate(t float64) error {
	for _, e := range n.entries {
		if err := e.controller.Activate(t); err != nil {
			return err
		}
	}
	return nil
}

func (n *NullSpace) Deactivate() {
	for _, e := range n.entries {
		e.controller.Deactivate()
	}
}

func (n *NullSpace) Step(t float64) error {
	for _, e := range n.entries {
		if err := e.controller.Step(t); err != nil {
			return err
		}
	}
	n.command = composeStacked(n.orderedByPriority(), n.dof)
	return nil
}

func (n *NullSpace) Serialize(node *tree.Node) {
	node.SetString("type", n.Type())
	node.SetString("name", n.name)
	for _, e := range n.entries {
		child := tree.New("Controller")
		e.controller.Serialize(child)
		child.SetInt("priority", e.priority)
		node.AddChild(child)
	}
}

func (n *NullSpace) Deserialize(node *tree.Node, sys system.System, reg Registry) error {
	n.dof = sys.GetDOF()
	return deserializeControllers(node, sys, reg, n)
}

