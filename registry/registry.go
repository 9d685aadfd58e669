// Package registry holds the process-wide factory tables the engine
// consults while deserializing a HybridAutomaton: type name -> constructor
// closure, for both controllers and control sets. A Registry is read
// during deserialization from any goroutine and written only during
// program startup, so after initialization it behaves as read-only; the
// SafeMap backing it costs nothing once writes stop.
package registry

import (
	"fmt"

	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/controlset"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/shared/data_structures"
)

// ControllerFactory builds a zero-value Controller of a registered type,
// ready to have Deserialize called on it.
type ControllerFactory func() controller.Controller

// ControlSetFactory builds a zero-value ControlSet of a registered type.
type ControlSetFactory func() controlset.ControlSet

// Registry is an instance, not a package-level global: callers construct
// one (typically via RegisterBuiltins) and pass it explicitly to
// deserialization entry points. This mirrors the spec's "explicit
// register_builtin_types call during initialization" design note -- there
// is no reliance on init()-time static registration order.
type Registry struct {
	controllers *data_structures.SafeMap[string, ControllerFactory]
	controlSets *data_structures.SafeMap[string, ControlSetFactory]
}

// New returns an empty Registry with no built-in types registered.
func New() *Registry {
	return &Registry{
		controllers: data_structures.NewSafeMap[string, ControllerFactory](),
		controlSets: data_structures.NewSafeMap[string, ControlSetFactory](),
	}
}

// RegisterController binds typeName to factory. Registering the same
// typeName a second time with a different factory is a
// DuplicateRegistration error; re-registering the identical factory value
// is tolerated (idempotent) so a package's init-free registration helper
// can be called more than once safely.
func (r *Registry) RegisterController(typeName string, factory ControllerFactory) error {
	if existing, ok := r.controllers.Get(typeName); ok {
		if !sameFuncPointer(existing, factory) {
			return fmt.Errorf("%w: controller type %q", shared.ErrDuplicateRegistration, typeName)
		}
		return nil
	}
	r.controllers.Set(typeName, factory)
	return nil
}

// RegisterControlSet binds typeName to factory, with the same duplicate
// semantics as RegisterController.
func (r *Registry) RegisterControlSet(typeName string, factory ControlSetFactory) error {
	if existing, ok := r.controlSets.Get(typeName); ok {
		if !sameFuncPointer(existing, factory) {
			return fmt.Errorf("%w: control set type %q", shared.ErrDuplicateRegistration, typeName)
		}
		return nil
	}
	r.controlSets.Set(typeName, factory)
	return nil
}

// NewController constructs a fresh Controller instance for typeName.
// Returns UnknownType if nothing is registered under that name.
func (r *Registry) NewController(typeName string) (controller.Controller, error) {
	factory, ok := r.controllers.Get(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: controller type %q", shared.ErrUnknownType, typeName)
	}
	return factory(), nil
}

// NewControlSet constructs a fresh ControlSet instance for typeName.
// Returns UnknownType if nothing is registered under that name.
func (r *Registry) NewControlSet(typeName string) (controlset.ControlSet, error) {
	factory, ok := r.controlSets.Get(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: control set type %q", shared.ErrUnknownType, typeName)
	}
	return factory(), nil
}

// UnregisterController removes typeName's factory, if any. Used by tests
// exercising the Unregister/UnknownType round trip; production callers
// typically never unregister.
func (r *Registry) UnregisterController(typeName string) {
	r.controllers.Delete(typeName)
}

// UnregisterControlSet removes typeName's factory, if any.
func (r *Registry) UnregisterControlSet(typeName string) {
	r.controlSets.Delete(typeName)
}
