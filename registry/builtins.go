package registry

import (
	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/controlset"
)

// RegisterBuiltins populates r with every controller and control-set type
// the engine ships. Callers extend the Registry with their own types by
// calling RegisterController/RegisterControlSet afterward; there is no
// package-level default Registry and no init()-time registration, per the
// engine's "explicit register_builtin_types during initialization" design
// note.
func RegisterBuiltins(r *Registry) error {
	if err := r.RegisterController(controller.TypeSetPoint, func() controller.Controller {
		return &controller.SetPoint{}
	}); err != nil {
		return err
	}
	if err := r.RegisterController(controller.TypeInterpolated, func() controller.Controller {
		return &controller.Interpolated{}
	}); err != nil {
		return err
	}

	if err := r.RegisterControlSet(controlset.TypeNullSpace, func() controlset.ControlSet {
		return &controlset.NullSpace{}
	}); err != nil {
		return err
	}
	if err := r.RegisterControlSet(controlset.TypeTaskPriority, func() controlset.ControlSet {
		return &controlset.TaskPriority{}
	}); err != nil {
		return err
	}
	if err := r.RegisterControlSet(controlset.TypeNakamura, func() controlset.ControlSet {
		return &controlset.Nakamura{}
	}); err != nil {
		return err
	}

	return nil
}
