package automaton

import (
	"github.com/shaply/automesh/controlset"
)

// Registry is the factory surface DeserializeControlMode and
// HybridAutomaton's top-level Deserialize need: controller construction
// (consumed by controlset.Deserialize through the embedded
// controlset.Registry) plus control-set construction. A *registry.Registry
// satisfies this directly; it is declared as an interface here, rather than
// importing the registry package's concrete type, purely so package
// automaton stays decoupled from registry's storage choices the same way
// controlset does.
type Registry interface {
	controlset.Registry
	NewControlSet(typeName string) (controlset.ControlSet, error)
}
