package controlset

import (
	"testing"

	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/system"
)

func TestPriorityComposition(t *testing.T) {
	// Scenario 4: priority 10 emits [1,0,0,0]; priority 1 emits [0,2,0,0].
	sys := system.NewFakeSystem(4)
	sys.Configuration = matrix.NewVector(0, 0, 0, 0)

	high := controller.NewSetPoint("high", matrix.NewVector(1, 0, 0, 0), matrix.NewVector(1), matrix.NewVector(0), sys)
	low := controller.NewSetPoint("low", matrix.NewVector(0, 2, 0, 0), matrix.NewVector(1), matrix.NewVector(0), sys)

	set := NewNullSpace("composed", 4)
	if err := set.AddController(high, false); err != nil {
		t.Fatalf("AddController high: %v", err)
	}
	if err := set.AddController(low, false); err != nil {
		t.Fatalf("AddController low: %v", err)
	}
	if err := set.SetPriority("high", 10); err != nil {
		t.Fatalf("SetPriority high: %v", err)
	}
	if err := set.SetPriority("low", 1); err != nil {
		t.Fatalf("SetPriority low: %v", err)
	}

	if err := set.Activate(0); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := set.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}

	cmd := set.GetCommand()
	if !cmd.Equal(matrix.NewVector(1, 2, 0, 0)) {
		t.Errorf("expected [1,2,0,0], got %v", cmd.Elements())
	}
}

func TestDuplicateControllerNameRejected(t *testing.T) {
	sys := system.NewFakeSystem(1)
	a := controller.NewSetPoint("dup", matrix.NewVector(1), matrix.NewVector(1), matrix.NewVector(0), sys)
	b := controller.NewSetPoint("dup", matrix.NewVector(2), matrix.NewVector(1), matrix.NewVector(0), sys)

	set := NewNullSpace("set", 1)
	if err := set.AddController(a, false); err != nil {
		t.Fatalf("first AddController: %v", err)
	}
	if err := set.AddController(b, false); err == nil {
		t.Error("expected DuplicateName error for repeated controller name")
	}
}

func TestGetControllersPreservesInsertionOrder(t *testing.T) {
	sys := system.NewFakeSystem(1)
	set := NewNullSpace("set", 1)
	for _, name := range []string{"c1", "c2", "c3"} {
		c := controller.NewSetPoint(name, matrix.NewVector(1), matrix.NewVector(1), matrix.NewVector(0), sys)
		if err := set.AddController(c, false); err != nil {
			t.Fatalf("AddController %s: %v", name, err)
		}
	}
	controllers := set.GetControllers()
	if len(controllers) != 3 {
		t.Fatalf("expected 3 controllers, got %d", len(controllers))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if controllers[i].Name() != want {
			t.Errorf("index %d: expected %s, got %s", i, want, controllers[i].Name())
		}
	}
}
