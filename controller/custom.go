package controller

import (
	"fmt"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// Custom lets a third-party type integrate through the Registry without
// the engine knowing its internals: its behavior is supplied as a trio of
// closures rather than as a Go type implementing Controller directly. This
// is the engine's answer to the "polymorphism over controllers" design
// note -- a tagged variant for the known built-ins, plus this open escape
// hatch for everything else, so extension never requires rebuilding the
// engine.
type Custom struct {
	base
	typeName string

	onActivate func(t float64, b *base) error
	onStep     func(t float64, b *base) (matrix.Matrix, error)
	onDeserialize func(node *tree.Node, b *base) error

	command matrix.Matrix
}

// CustomBehavior bundles the three closures a Custom controller runs.
// OnDeserialize may read controller-specific attributes off node beyond
// the shared set deserializeBase already populated into b; it runs after
// the shared attributes are parsed.
type CustomBehavior struct {
	OnActivate    func(t float64, b *base) error
	OnStep        func(t float64, b *base) (matrix.Matrix, error)
	OnDeserialize func(node *tree.Node, b *base) error
}

// NewCustomFactory returns a registry.ControllerFactory-compatible
// constructor for a Custom controller type identified by typeName and
// driven by behavior. Intended to be passed to Registry.RegisterController.
func NewCustomFactory(typeName string, behavior CustomBehavior) func() Controller {
	return func() Controller {
		return &Custom{
			typeName:      typeName,
			onActivate:    behavior.OnActivate,
			onStep:        behavior.OnStep,
			onDeserialize: behavior.OnDeserialize,
		}
	}
}

func (c *Custom) Type() string { return c.typeName }

func (c *Custom) Activate(t float64) error {
	c.activateBase()
	if c.onActivate != nil {
		return c.onActivate(t, &c.base)
	}
	return nil
}

func (c *Custom) Deactivate() {
	c.active = false
}

func (c *Custom) Step(t float64) error {
	if c.onStep == nil {
		return fmt.Errorf("%w: custom controller %q has no step behavior", shared.ErrInvalidInput, c.typeName)
	}
	cmd, err := c.onStep(t, &c.base)
	if err != nil {
		return err
	}
	c.command = cmd
	return nil
}

func (c *Custom) GetCommand() matrix.Matrix { return c.command }

func (c *Custom) Serialize(node *tree.Node) {
	c.serializeBase(node, c.typeName)
}

func (c *Custom) Deserialize(node *tree.Node, sys system.System) error {
	b, err := deserializeBase(node, sys)
	if err != nil {
		return err
	}
	c.base = b
	if c.onDeserialize != nil {
		return c.onDeserialize(node, &c.base)
	}
	return nil
}
