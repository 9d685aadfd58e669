package registry

import (
	"errors"
	"testing"

	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/shared"
)

func TestRegisterBuiltinsPopulatesKnownTypes(t *testing.T) {
	r := New()
	if err := RegisterBuiltins(r); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}

	if _, err := r.NewController(controller.TypeSetPoint); err != nil {
		t.Errorf("expected SetPoint registered, got %v", err)
	}
	if _, err := r.NewController(controller.TypeInterpolated); err != nil {
		t.Errorf("expected Interpolated registered, got %v", err)
	}
}

func TestRegisterBuiltinsIsIdempotent(t *testing.T) {
	r := New()
	if err := RegisterBuiltins(r); err != nil {
		t.Fatalf("first RegisterBuiltins failed: %v", err)
	}
	if err := RegisterBuiltins(r); err != nil {
		t.Errorf("second RegisterBuiltins should be a no-op, got %v", err)
	}
}

func TestUnknownTypeError(t *testing.T) {
	r := New()
	if _, err := r.NewController("Nonexistent"); !errors.Is(err, shared.ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestRegisterRoundTripThenUnregister(t *testing.T) {
	// Scenario 6: register, construct, unregister, expect UnknownType.
	r := New()
	factory := func() controller.Controller { return &controller.SetPoint{} }

	if err := r.RegisterController("X", factory); err != nil {
		t.Fatalf("RegisterController: %v", err)
	}
	if _, err := r.NewController("X"); err != nil {
		t.Fatalf("expected X constructible, got %v", err)
	}

	r.UnregisterController("X")
	if _, err := r.NewController("X"); !errors.Is(err, shared.ErrUnknownType) {
		t.Errorf("expected UnknownType after unregister, got %v", err)
	}
}

func TestDuplicateRegistrationWithDifferentFactoryFails(t *testing.T) {
	r := New()
	f1 := func() controller.Controller { return &controller.SetPoint{} }
	f2 := func() controller.Controller { return &controller.Interpolated{} }

	if err := r.RegisterController("Y", f1); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.RegisterController("Y", f2); !errors.Is(err, shared.ErrDuplicateRegistration) {
		t.Errorf("expected DuplicateRegistration, got %v", err)
	}
}
