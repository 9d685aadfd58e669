package controlset

import (
	"fmt"

	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// priorityAssigner is satisfied by every built-in policy (NullSpace,
// TaskPriority, Nakamura), letting deserializeControllers set each
// Controller child's declared priority after AddController without each
// policy re-implementing the same deserialization loop.
type priorityAssigner interface {
	ControlSet
	SetPriority(name string, priority int) error
}

// deserializeControllers is the common body of every policy's Deserialize:
// read name, then for each Controller child consult reg for its type,
// construct it, deserialize its own attributes, add it to set, and apply
// its priority attribute (default 0). Deserializing an unknown type or a
// name collision fails the whole operation, per the spec.
func deserializeControllers(node *tree.Node, sys system.System, reg Registry, set priorityAssigner) error {
	name, ok := node.GetString("name")
	if !ok {
		return fmt.Errorf("%w: control set missing name attribute", shared.ErrMissingAttribute)
	}
	setBaseName(set, name)

	for _, child := range node.ChildrenOfType("Controller") {
		typ, ok := child.GetString("type")
		if !ok {
			return fmt.Errorf("%w: controller missing type attribute", shared.ErrMissingAttribute)
		}

		c, err := reg.NewController(typ)
		if err != nil {
			return err
		}
		if err := c.Deserialize(child, sys); err != nil {
			return err
		}

		isGoalController, _ := child.GetBool("is_goal_controller")
		if err := set.AddController(c, isGoalController); err != nil {
			return err
		}

		priority, _ := child.GetInt("priority") // defaults to 0
		if err := set.SetPriority(c.Name(), priority); err != nil {
			return err
		}
	}
	return nil
}

// setBaseName sets the set's name through base's unexported setName, which
// every policy (NullSpace, TaskPriority, Nakamura) gains by embedding base.
func setBaseName(set ControlSet, name string) {
	if n, ok := set.(interface{ setName(string) }); ok {
		n.setName(name)
	}
}
