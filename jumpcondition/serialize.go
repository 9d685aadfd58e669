package jumpcondition

import (
	"fmt"

	"github.com/shaply/automesh/sensor"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// Serialize emits this condition's attributes and its one or two Sensor
// children onto node.
func (j *JumpCondition) Serialize(node *tree.Node) {
	node.SetString("norm", string(j.norm))
	node.SetMatrix("epsilon", j.epsilon)
	node.SetBool("negated", j.negated)
	node.SetFloat("dwell", j.dwell)

	currentNode := tree.New("Sensor")
	j.current.Serialize(currentNode)
	node.AddChild(currentNode)

	referenceNode := tree.New("Sensor")
	j.reference.Serialize(referenceNode)
	node.AddChild(referenceNode)
}

// Deserialize reconstructs a JumpCondition from its DescriptionTree
// encoding: attributes norm/epsilon/negated/dwell, plus one or two Sensor
// children (current, then reference). Missing attributes take the
// documented defaults: negated=false, dwell=0.
func Deserialize(node *tree.Node, sys system.System) (*JumpCondition, error) {
	normRaw, ok := node.GetString("norm")
	if !ok {
		return nil, fmt.Errorf("%w: jump condition missing norm attribute", shared.ErrMissingAttribute)
	}

	epsilon, ok := node.GetMatrix("epsilon")
	if !ok {
		return nil, fmt.Errorf("%w: jump condition missing epsilon attribute", shared.ErrMissingAttribute)
	}

	negated, _ := node.GetBool("negated") // defaults to false
	dwell, _ := node.GetFloat("dwell")    // defaults to 0

	sensors := node.ChildrenOfType("Sensor")
	if len(sensors) == 0 || len(sensors) > 2 {
		return nil, fmt.Errorf("%w: jump condition requires one or two Sensor children, got %d", shared.ErrMissingAttribute, len(sensors))
	}

	current, err := sensor.Deserialize(sensors[0], sys)
	if err != nil {
		return nil, err
	}

	var reference sensor.Sensor
	if len(sensors) == 2 {
		reference, err = sensor.Deserialize(sensors[1], sys)
		if err != nil {
			return nil, err
		}
	} else {
		// A single Sensor child means the reference is an inline constant
		// carried directly on the JumpCondition node rather than as its own
		// Sensor child -- the wire encoding's "children Sensor (one or
		// two)" shorthand for the common "compare against a fixed target"
		// case.
		refValue, ok := node.GetMatrix("reference")
		if !ok {
			return nil, fmt.Errorf("%w: single-sensor jump condition requires a reference attribute", shared.ErrMissingAttribute)
		}
		reference = sensor.NewConstant(refValue)
	}

	return New(Config{
		Current:   current,
		Reference: reference,
		Norm:      Norm(normRaw),
		Epsilon:   epsilon,
		Negated:   negated,
		Dwell:     dwell,
	})
}
