package controlset

import (
	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// TypeTaskPriority is the type tag for TaskPriority.
const TypeTaskPriority = "TaskPriority"

// TaskPriority implements task-priority operational-space composition:
// Cartesian tasks are stacked and a weighted pseudo-inverse yields joint
// velocities/torques in the original robot abstraction; this engine
// delegates that algebra and guarantees only the DOF-size and
// stable-tie-order properties the spec requires (see composeStacked).
type TaskPriority struct {
	base
	dof int
}

// NewTaskPriority builds a TaskPriority set programmatically.
func NewTaskPriority(name string, dof int) *TaskPriority {
	return &TaskPriority{base: base{name: name}, dof: dof}
}

func (p *TaskPriority) Type() string { return TypeTaskPriority }

func (p *TaskPriority) AddController(c controller.Controller, isGoalController bool) error {
	return p.addController(c, isGoalController, 0)
}

func (p *TaskPriority) SetPriority(name string, priority int) error {
	return p.setPriority(name, priority)
}

func (p *TaskPriority) Activate(t float64) error {
	for _, e := range p.entries {
		if err := e.controller.Activate(t); err != nil {
			return err
		}
	}
	return nil
}

func (p *TaskPriority) Deactivate() {
	for _, e := range p.entries {
		e.controller.Deactivate()
	}
}

func (p *TaskPriority) Step(t float64) error {
	for _, e := range p.entries {
		if err := e.controller.Step(t); err != nil {
			return err
		}
	}
	p.command = composeStacked(p.orderedByPriority(), p.dof)
	return nil
}

func (p *TaskPriority) Serialize(node *tree.Node) {
	node.SetString("type", p.Type())
	node.SetString("name", p.name)
	for _, e := range p.entries {
		child := tree.New("Controller")
		e.controller.Serialize(child)
		child.SetInt("priority", e.priority)
		node.AddChild(child)
	}
}

func (p *TaskPriority) Deserialize(node *tree.Node, sys system.System, reg Registry) error {
	p.dof = sys.GetDOF()
	return deserializeControllers(node, sys, reg, p)
}
