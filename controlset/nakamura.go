package controlset

import (
	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// TypeNakamura is the type tag for Nakamura.
const TypeNakamura = "Nakamura"

// Nakamura implements an explicit singularity-robust inverse with damping
// near singular configurations, per the original robot abstraction; as
// with TaskPriority, the singularity-robust algebra itself is delegated
// and this policy guarantees only the DOF-size and stable-tie-order
// properties.
type Nakamura struct {
	base
	dof     int
	damping float64
}

// NewNakamura builds a Nakamura set programmatically. damping is stored and
// serialized as the damping factor; Step does not read it and composes
// with composeStacked like the other policies.
func NewNakamura(name string, dof int, damping float64) *Nakamura {
	return &Nakamura{base: base{name: name}, dof: dof, damping: damping}
}

func (n *Nakamura) Type() string { return TypeNakamura }

func (n *Nakamura) AddController(c controller.Controller, isGoalController bool) error {
	return n.addController(c, isGoalController, 0)
}

func (n *Nakamura) SetPriority(name string, priority int) error {
	return n.setPriority(name, priority)
}

func (n *Nakamura) Activate(t float64) error {
	for _, e := range n.entries {
		if err := e.controller.Activate(t); err != nil {
			return err
		}
	}
	return nil
}

func (n *Nakamura) Deactivate() {
	for _, e := range n.entries {
		e.controller.Deactivate()
	}
}

func (n *Nakamura) Step(t float64) error {
	for _, e := range n.entries {
		if err := e.controller.Step(t); err != nil {
			return err
		}
	}
	n.command = composeStacked(n.orderedByPriority(), n.dof)
	return nil
}

func (n *Nakamura) Serialize(node *tree.Node) {
	node.SetString("type", n.Type())
	node.SetString("name", n.name)
	node.SetFloat("damping", n.damping)
	for _, e := range n.entries {
		child := tree.New("Controller")
		e.controller.Serialize(child)
		child.SetInt("priority", e.priority)
		node.AddChild(child)
	}
}

func (n *Nakamura) Deserialize(node *tree.Node, sys system.System, reg Registry) error {
	n.dof = sys.GetDOF()
	n.damping, _ = node.GetFloat("damping") // defaults to 0
	return deserializeControllers(node, sys, reg, n)
}
