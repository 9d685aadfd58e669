// Package sensor implements the typed adapters that produce a Matrix
// reading from the external system.System, plus a constant reference that
// takes no System input at all. Sensors are stateless beyond their own
// configuration: CurrentValue always re-reads the System (or returns the
// fixed value, for Constant).
package sensor

import (
	"fmt"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// Type tags, used as DescriptionTree attribute values. The Registry holds no
// sensor table; Deserialize recognises only these tags.
const (
	TypeJointConfiguration = "JointConfiguration"
	TypeFramePose          = "FramePose"
	TypeForceTorque        = "ForceTorque"
	TypeClock              = "Clock"
	TypeConstant           = "Constant"
)

// Sensor produces a fresh Matrix reading on every query.
type Sensor interface {
	Type() string
	CurrentValue() (matrix.Matrix, error)
	Serialize(node *tree.Node)
}

// Deserialize dispatches on node's "type" attribute to build the matching
// built-in Sensor. Returns UnknownType for any tag not in the list above.
func Deserialize(node *tree.Node, sys system.System) (Sensor, error) {
	typ, ok := node.GetString("type")
	if !ok {
		return nil, fmt.Errorf("%w: sensor missing type attribute", shared.ErrMissingAttribute)
	}

	switch typ {
	case TypeJointConfiguration:
		return deserializeJointConfiguration(sys), nil
	case TypeFramePose:
		return deserializeFramePose(node, sys)
	case TypeForceTorque:
		return deserializeForceTorque(sys), nil
	case TypeClock:
		return deserializeClock(sys), nil
	case TypeConstant:
		return deserializeConstant(node)
	default:
		return nil, fmt.Errorf("%w: sensor type %q", shared.ErrUnknownType, typ)
	}
}
