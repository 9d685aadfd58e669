package controller

import (
	"testing"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/system"
)

func TestSetPointStepsTowardGoal(t *testing.T) {
	sys := system.NewFakeSystem(2)
	sys.Configuration = matrix.NewVector(0, 0)

	sp := NewSetPoint("reach", matrix.NewVector(1, 1), matrix.NewVector(2), matrix.NewVector(0), sys)
	if err := sp.Activate(0); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if err := sp.Step(0); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	cmd := sp.GetCommand()
	if !cmd.Equal(matrix.NewVector(2, 2)) {
		t.Errorf("expected [2,2], got %v", cmd.Elements())
	}
}

func TestSetPointRejectsEmptyGoal(t *testing.T) {
	sys := system.NewFakeSystem(2)
	sp := NewSetPoint("bad", matrix.Matrix{}, matrix.NewVector(1), matrix.NewVector(0), sys)
	if err := sp.Activate(0); err == nil {
		t.Error("expected error activating with empty goal")
	}
}

func TestInterpolatedReachesGoalAtFinalTime(t *testing.T) {
	sys := system.NewFakeSystem(1)
	sys.Configuration = matrix.NewVector(0)

	ic := NewInterpolated("move", matrix.NewVector(10), matrix.NewVector(1), matrix.NewVector(0), []float64{1.0}, sys)
	if err := ic.Activate(0); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	// Halfway through, the interpolated setpoint should be ~5, giving a
	// command of kp*(5-0) = 5.
	if err := ic.Step(0.5); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := ic.GetCommand().At(0, 0); got != 5 {
		t.Errorf("expected command 5 at t=0.5, got %v", got)
	}

	// At/after the final completion time, the setpoint equals the goal.
	if err := ic.Step(1.0); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := ic.GetCommand().At(0, 0); got != 10 {
		t.Errorf("expected command 10 at t=1.0, got %v", got)
	}
}

func TestCustomControllerDelegatesToClosures(t *testing.T) {
	sys := system.NewFakeSystem(1)
	var activated, stepped bool

	factory := NewCustomFactory("Echo", CustomBehavior{
		OnActivate: func(t float64, b *base) error {
			activated = true
			return nil
		},
		OnStep: func(t float64, b *base) (matrix.Matrix, error) {
			stepped = true
			return matrix.NewVector(t), nil
		},
	})

	c := factory()
	c.(*Custom).base.sys = sys // programmatic construction, bypassing Deserialize
	if err := c.Activate(0); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if err := c.Step(3); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !activated || !stepped {
		t.Error("expected both closures to run")
	}
	if got := c.GetCommand().At(0, 0); got != 3 {
		t.Errorf("expected command 3, got %v", got)
	}
}
