package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaply/automesh/automaton"
	"github.com/shaply/automesh/blackboard"
	"github.com/shaply/automesh/controller"
	"github.com/shaply/automesh/controlset"
	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/system"
)

func buildArmedAutomaton(t *testing.T) *automaton.HybridAutomaton {
	t.Helper()

	sys := system.NewFakeSystem(3)
	cs := controlset.NewNullSpace("cs1", sys.DOF)
	c := controller.NewSetPoint("c1", matrix.NewVector(1, 1, 1), matrix.NewVector(1), matrix.NewVector(0), sys)
	if err := cs.AddController(c, false); err != nil {
		t.Fatalf("AddController: %v", err)
	}
	cm := automaton.NewControlMode("CM1", cs)

	cs2 := controlset.NewNullSpace("cs2", sys.DOF)
	cm2 := automaton.NewControlMode("CM2", cs2)

	a := automaton.New("test-engine", sys, automaton.Strict)
	if err := a.AddMode(cm); err != nil {
		t.Fatalf("AddMode: %v", err)
	}
	if err := a.AddMode(cm2); err != nil {
		t.Fatalf("AddMode: %v", err)
	}
	if err := a.Arm("CM1"); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	return a
}

func newTestServer(t *testing.T) (*Server, *automaton.HybridAutomaton) {
	t.Helper()
	a := buildArmedAutomaton(t)
	s := &Server{engine: a, blackboard: blackboard.New(false)}
	return s, a
}

func TestGetAutomatonBeforeFirstTick(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/automaton", nil)
	rec := httptest.NewRecorder()
	s.getAutomaton(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var status automatonStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.Name != "test-engine" {
		t.Errorf("name = %q, want test-engine", status.Name)
	}
	if status.State != "Armed" {
		t.Errorf("state = %q, want Armed", status.State)
	}
}

func TestGetAutomatonAfterTick(t *testing.T) {
	s, a := newTestServer(t)
	if _, err := a.Tick(0.0); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/automaton", nil)
	rec := httptest.NewRecorder()
	s.getAutomaton(rec, req)

	var status automatonStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.CurrentMode != "CM1" {
		t.Errorf("current_mode = %q, want CM1", status.CurrentMode)
	}
	if status.State != "Running" {
		t.Errorf("state = %q, want Running", status.State)
	}
}

func TestGetModesMarksCurrent(t *testing.T) {
	s, a := newTestServer(t)
	if _, err := a.Tick(0.0); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/automaton/modes", nil)
	rec := httptest.NewRecorder()
	s.getModes(rec, req)

	var modes []modeSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &modes); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(modes) != 2 {
		t.Fatalf("len(modes) = %d, want 2", len(modes))
	}
	if !modes[0].Current || modes[0].Name != "CM1" {
		t.Errorf("modes[0] = %+v, want CM1 current", modes[0])
	}
	if modes[1].Current {
		t.Errorf("modes[1] = %+v, want not current", modes[1])
	}
}

func TestPostHaltTransitionsState(t *testing.T) {
	s, a := newTestServer(t)
	if _, err := a.Tick(0.0); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/automaton/halt", nil)
	rec := httptest.NewRecorder()
	s.postHalt(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if a.State() != automaton.Halted {
		t.Errorf("state = %v, want Halted", a.State())
	}
}

func TestGetBlackboardSnapshotReflectsWrites(t *testing.T) {
	s, _ := newTestServer(t)
	s.blackboard.Write("joint_position", 1.5)

	req := httptest.NewRequest(http.MethodGet, "/blackboard", nil)
	rec := httptest.NewRecorder()
	s.getBlackboardSnapshot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snapshot map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if snapshot["joint_position"] != 1.5 {
		t.Errorf("snapshot[joint_position] = %v, want 1.5", snapshot["joint_position"])
	}
}
