package tree

import (
	"testing"

	"github.com/shaply/automesh/matrix"
)

func TestTypedAttributeRoundTrip(t *testing.T) {
	n := New("Controller")
	n.SetInt("priority", 10)
	n.SetFloat("epsilon", 0.005)
	n.SetBool("goal_is_relative", true)
	n.SetString("type", "SetPoint")
	n.SetMatrix("kp", matrix.NewVector(1, 2, 3))

	if v, ok := n.GetInt("priority"); !ok || v != 10 {
		t.Errorf("GetInt: got %v, %v", v, ok)
	}
	if v, ok := n.GetFloat("epsilon"); !ok || v != 0.005 {
		t.Errorf("GetFloat: got %v, %v", v, ok)
	}
	if v, ok := n.GetBool("goal_is_relative"); !ok || !v {
		t.Errorf("GetBool: got %v, %v", v, ok)
	}
	if v, ok := n.GetString("type"); !ok || v != "SetPoint" {
		t.Errorf("GetString: got %v, %v", v, ok)
	}
	m, ok := n.GetMatrix("kp")
	if !ok || !m.Equal(matrix.NewVector(1, 2, 3)) {
		t.Errorf("GetMatrix: got %v, %v", m, ok)
	}
}

func TestGetMissingAttributeMisses(t *testing.T) {
	n := New("ControlMode")
	if _, ok := n.GetInt("nonexistent"); ok {
		t.Error("expected miss for absent attribute")
	}
	if _, ok := n.GetBool("nonexistent"); ok {
		t.Error("expected miss for absent attribute")
	}
}

func TestChildrenOfTypePreservesOrder(t *testing.T) {
	root := New("HybridAutomaton")
	a := New("ControlMode")
	a.SetString("name", "CM1")
	b := New("ControlSwitch")
	c := New("ControlMode")
	c.SetString("name", "CM2")

	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)

	modes := root.ChildrenOfType("ControlMode")
	if len(modes) != 2 {
		t.Fatalf("expected 2 ControlMode children, got %d", len(modes))
	}
	name0, _ := modes[0].GetString("name")
	name1, _ := modes[1].GetString("name")
	if name0 != "CM1" || name1 != "CM2" {
		t.Errorf("unexpected order: %s, %s", name0, name1)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	root := New("HybridAutomaton")
	root.SetString("name", "demo")
	root.SetString("current_control_mode", "CM1")

	mode := New("ControlMode")
	mode.SetString("name", "CM1")
	mode.SetMatrix("reference", matrix.NewVector(1, 1, 1))
	root.AddChild(mode)

	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got.Type() != "HybridAutomaton" {
		t.Errorf("expected type HybridAutomaton, got %s", got.Type())
	}
	name, ok := got.GetString("name")
	if !ok || name != "demo" {
		t.Errorf("expected name=demo, got %v, %v", name, ok)
	}

	children := got.ChildrenOfType("ControlMode")
	if len(children) != 1 {
		t.Fatalf("expected 1 ControlMode child, got %d", len(children))
	}
	m, ok := children[0].GetMatrix("reference")
	if !ok || !m.Equal(matrix.NewVector(1, 1, 1)) {
		t.Errorf("matrix round trip failed: %v, %v", m, ok)
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte("not a valid snappy frame")); err == nil {
		t.Error("expected error for malformed input")
	}
}
