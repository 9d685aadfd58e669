// Package controlset implements ControlSet: an ordered collection of
// Controllers composed into a single plant command by one of three
// policies (serial null-space, task-priority operational-space,
// Nakamura damped-inverse). The composition math itself is delegated to
// the robot abstraction the spec hands off to; this package guarantees
// only the two properties the spec requires of every policy: the output
// is a single command vector of the actuated-DOF size, and equal-priority
// controllers compose in stable insertion order.
package controlset

import (
	"fmt"
	"sort"

	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// ControlSet is the contract every composition policy satisfies, mirroring
// Controller's activate/deactivate/step/get_command plus the
// controller-membership operations a set alone needs.
type ControlSet interface {
	Type() string
	Name() string

	Activate(t float64) error
	Deactivate()
	Step(t float64) error
	GetCommand() matrix.Matrix

	AddController(c controller.Controller, isGoalController bool) error
	GetControllers() []controller.Controller

	Serialize(node *tree.Node)
	Deserialize(node *tree.Node, sys system.System, reg Registry) error
}

// Registry is the subset of the registry package's Registry this package
// depends on, kept as an interface to avoid an import cycle (registry
// imports controlset to build the ControlSetFactory map).
type Registry interface {
	NewController(typeName string) (controller.Controller, error)
}

// entry pairs a controller with its declared priority and insertion
// index, used by every policy to compute the stable priority order the
// spec requires.
type entry struct {
	controller       controller.Controller
	priority         int
	insertionIndex   int
	isGoalController bool
}

// base holds the fields shared by all three composition policies: name,
// ordered entries, and the designated null-motion controller slot.
type base struct {
	name            string
	entries         []entry
	nullMotion      controller.Controller
	command         matrix.Matrix
}

func (b *base) Name() string { return b.name }

func (b *base) setName(name string) { b.name = name }

func (b *base) GetControllers() []controller.Controller {
	out := make([]controller.Controller, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.controller
	}
	return out
}

func (b *base) GetCommand() matrix.Matrix { return b.command }

// addController appends c to the set, recording insertion order. A second
// controller sharing a name with one already present fails the whole
// operation, matching the spec's "controllers within a set have unique
// names" invariant. The entry gets the priority passed in (every policy's
// AddController passes 0); callers assign another priority afterwards via
// SetPriority.
func (b *base) addController(c controller.Controller, isGoalController bool, priority int) error {
	for _, e := range b.entries {
		if e.controller.Name() == c.Name() {
			return fmt.Errorf("%w: controller %q already in control set %q", shared.ErrDuplicateName, c.Name(), b.name)
		}
	}
	b.entries = append(b.entries, entry{
		controller:       c,
		priority:         priority,
		insertionIndex:   len(b.entries),
		isGoalController: isGoalController,
	})
	if isGoalController {
		b.nullMotion = c
	}
	return nil
}

// setPriority updates the priority of the named entry in place. Returns
// ErrUnresolvedReference if no controller by that name is in the set.
func (b *base) setPriority(name string, priority int) error {
	for i := range b.entries {
		if b.entries[i].controller.Name() == name {
			b.entries[i].priority = priority
			return nil
		}
	}
	return fmt.Errorf("%w: no controller %q in control set %q", shared.ErrUnresolvedReference, name, b.name)
}

// orderedByPriority returns entries sorted by descending priority, ties
// broken by ascending insertion index (stable insertion order).
func (b *base) orderedByPriority() []entry {
	out := make([]entry, len(b.entries))
	copy(out, b.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority > out[j].priority
		}
		return out[i].insertionIndex < out[j].insertionIndex
	})
	return out
}

// composeStacked builds the command DOF by DOF: each DOF takes the value of
// the first controller, in priority order, whose command is non-zero on
// it, so a higher-priority controller's claimed degrees of freedom mask
// lower-priority contributions on the same axis (a simplified, DOF-size-correct stand-in
// for the full null-space projection the spec delegates to the robot
// abstraction). Priority ties compose in stable insertion order via
// orderedByPriority.
func composeStacked(entries []entry, dof int) matrix.Matrix {
	out := matrix.New(dof, 1)
	claimed := make([]bool, dof)

	for _, e := range entries {
		cmd := e.controller.GetCommand()
		for i := 0; i < dof && i < cmd.Rows; i++ {
			if claimed[i] {
				continue
			}
			v := cmd.At(i, 0)
			if v != 0 {
				out.Set(i, 0, v)
				claimed[i] = true
			}
		}
	}
	return out
}
