// Package automaton implements the mode graph and tick-driven scheduler:
// ControlMode (a vertex), ControlSwitch (a guarded edge), and
// HybridAutomaton itself, which owns both tables and drives the five-step
// per-tick algorithm over whichever mode is current.
package automaton

import (
	"fmt"

	"github.com/shaply/automesh/matrix"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"
)

// State is one of the automaton's four lifecycle stages.
type State int

const (
	Unbound State = iota
	Armed
	Running
	Halted
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "Unbound"
	case Armed:
		return "Armed"
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	default:
		return "Unknown"
	}
}

// FailurePolicy governs how a runtime step error is handled.
type FailurePolicy int

const (
	// Strict propagates a step error to the caller and halts the engine.
	Strict FailurePolicy = iota
	// Tolerant logs a step error and returns the last valid command.
	Tolerant
)

// HybridAutomaton is the mode graph plus the tick scheduler: an ordered
// table of ControlModes, an ordered table of ControlSwitches, the current
// mode pointer, and the four-state lifecycle. Cross-references (switch
// source/target, start mode) are resolved by name to table index rather
// than via back-pointers.
type HybridAutomaton struct {
	name   string
	policy FailurePolicy
	sys    system.System

	modes       []*ControlMode
	modesByName map[string]int

	switches         []*ControlSwitch
	outgoingBySource map[int][]int // mode index -> switch indices, insertion order

	state        State
	currentMode  int
	hasTicked    bool
	lastTickTime float64
	lastCommand  matrix.Matrix

	resolved bool
}

// New returns an Unbound HybridAutomaton bound to sys, with no modes or
// switches yet.
func New(name string, sys system.System, policy FailurePolicy) *HybridAutomaton {
	return &HybridAutomaton{
		name:        name,
		policy:      policy,
		sys:         sys,
		modesByName: make(map[string]int),
		currentMode: -1,
	}
}

func (a *HybridAutomaton) Name() string          { return a.name }
func (a *HybridAutomaton) State() State          { return a.state }
func (a *HybridAutomaton) Policy() FailurePolicy { return a.policy }

// CurrentMode returns the mode the engine is presently in, or nil before
// Arm.
func (a *HybridAutomaton) CurrentMode() *ControlMode {
	if a.currentMode < 0 {
		return nil
	}
	return a.modes[a.currentMode]
}

// Modes returns every control mode in the graph, in insertion order.
func (a *HybridAutomaton) Modes() []*ControlMode {
	return a.modes
}

// AddMode appends a mode to the graph. Only legal while Unbound, mirroring
// "only static graph edits permitted" before the graph is armed. A second
// mode sharing a name with one already present is rejected.
func (a *HybridAutomaton) AddMode(m *ControlMode) error {
	if a.state != Unbound {
		return fmt.Errorf("%w: cannot add mode %q once automaton is %s", shared.ErrInvalidInput, m.Name(), a.state)
	}
	if _, exists := a.modesByName[m.Name()]; exists {
		return fmt.Errorf("%w: control mode %q", shared.ErrDuplicateName, m.Name())
	}
	a.modesByName[m.Name()] = len(a.modes)
	a.modes = append(a.modes, m)
	a.resolved = false
	return nil
}

// AddSwitch appends a switch to the graph. Only legal while Unbound. A
// second switch sharing a name with one already present is rejected;
// source/target are validated against the mode table lazily, at Arm or
// Deserialize time, since switches may reference modes added later.
func (a *HybridAutomaton) AddSwitch(sw *ControlSwitch) error {
	if a.state != Unbound {
		return fmt.Errorf("%w: cannot add switch %q once automaton is %s", shared.ErrInvalidInput, sw.Name(), a.state)
	}
	for _, existing := range a.switches {
		if existing.Name() == sw.Name() {
			return fmt.Errorf("%w: control switch %q", shared.ErrDuplicateName, sw.Name())
		}
	}
	a.switches = append(a.switches, sw)
	a.resolved = false
	return nil
}

// resolveReferences validates every switch's source and target against the
// mode table and builds the outgoing-switch index, in switch insertion
// order (the tie-breaking order §4.8 requires). Idempotent once the graph
// hasn't changed since the last call.
func (a *HybridAutomaton) resolveReferences() error {
	if a.resolved {
		return nil
	}
	outgoing := make(map[int][]int, len(a.modes))
	for i, sw := range a.switches {
		srcIdx, ok := a.modesByName[sw.Source()]
		if !ok {
			return fmt.Errorf("%w: control switch %q source %q", shared.ErrUnresolvedReference, sw.Name(), sw.Source())
		}
		if _, ok := a.modesByName[sw.Target()]; !ok {
			return fmt.Errorf("%w: control switch %q target %q", shared.ErrUnresolvedReference, sw.Name(), sw.Target())
		}
		outgoing[srcIdx] = append(outgoing[srcIdx], i)
	}
	a.outgoingBySource = outgoing
	a.resolved = true
	return nil
}

// outgoingSwitches returns the switches whose source is modeIndex, in
// insertion (deserialization) order.
func (a *HybridAutomaton) outgoingSwitches(modeIndex int) []*ControlSwitch {
	idxs := a.outgoingBySource[modeIndex]
	out := make([]*ControlSwitch, len(idxs))
	for i, idx := range idxs {
		out[i] = a.switches[idx]
	}
	return out
}

// Arm validates the graph (resolving all switch references) and sets
// startMode as current, transitioning Unbound -> Armed. Preconditions:
// startMode names an existing mode and sys is non-nil.
func (a *HybridAutomaton) Arm(startMode string) error {
	if a.state != Unbound {
		return fmt.Errorf("%w: Arm called on %s automaton", shared.ErrAlreadyRunning, a.state)
	}
	if a.sys == nil {
		return fmt.Errorf("%w: automaton %q has no System bound", shared.ErrInvalidInput, a.name)
	}
	if err := a.resolveReferences(); err != nil {
		return err
	}
	idx, ok := a.modesByName[startMode]
	if !ok {
		return fmt.Errorf("%w: start mode %q", shared.ErrUnresolvedReference, startMode)
	}
	a.currentMode = idx
	a.state = Armed
	return nil
}

// Activate transitions Armed -> Running, activating the current mode's
// control set and its outgoing switches at t. Calling Tick while still
// Armed performs this implicitly, so most callers never call Activate
// directly.
func (a *HybridAutomaton) Activate(t float64) error {
	if a.state != Armed {
		return fmt.Errorf("%w: Activate called on %s automaton", shared.ErrAlreadyRunning, a.state)
	}
	if err := a.activateMode(a.currentMode, t); err != nil {
		return err
	}
	a.state = Running
	return nil
}

func (a *HybridAutomaton) activateMode(idx int, t float64) error {
	m := a.modes[idx]
	if err := m.ControlSet().Activate(t); err != nil {
		return fmt.Errorf("%w: activating control mode %q: %v", shared.ErrSystemError, m.Name(), err)
	}
	for _, sw := range a.outgoingSwitches(idx) {
		sw.Activate(t)
	}
	return nil
}

func (a *HybridAutomaton) deactivateMode(idx int) {
	m := a.modes[idx]
	m.ControlSet().Deactivate()
	for _, sw := range a.outgoingSwitches(idx) {
		sw.Deactivate()
	}
}

// Tick advances the automaton by one step at time t, implementing §4.8's
// five-step algorithm, and returns the command the current mode's control
// set reports after the tick. Under the Tolerant policy a step error is
// logged and the previous tick's command is returned with a nil error;
// under Strict the error halts the engine and is returned to the caller.
func (a *HybridAutomaton) Tick(t float64) (matrix.Matrix, error) {
	if a.state == Halted {
		return a.lastCommand, shared.ErrHalted
	}
	if a.state == Unbound {
		return matrix.Matrix{}, shared.ErrNotArmed
	}
	if a.hasTicked && t <= a.lastTickTime {
		a.state = Halted
		return a.lastCommand, fmt.Errorf("%w: tick time %v <= previous %v", shared.ErrNonMonotonicTime, t, a.lastTickTime)
	}

	// Step 1: Armed -> Running on first tick.
	if a.state == Armed {
		if err := a.activateMode(a.currentMode, t); err != nil {
			a.state = Halted
			return a.lastCommand, err
		}
		a.state = Running
	}

	a.hasTicked = true
	a.lastTickTime = t

	if err := a.step(t); err != nil {
		return a.handleStepError(err)
	}

	a.lastCommand = a.modes[a.currentMode].ControlSet().GetCommand()
	return a.lastCommand, nil
}

// handleStepError applies the engine's failure policy to an error raised
// during steps 2-4 of a tick.
func (a *HybridAutomaton) handleStepError(err error) (matrix.Matrix, error) {
	if a.policy == Strict {
		a.state = Halted
		return a.lastCommand, err
	}
	shared.DebugError(err)
	return a.lastCommand, nil
}

// step runs steps 2-4 of §4.8's algorithm: step the current mode's control
// set, step every outgoing switch in insertion order, then fire the first
// active outgoing switch's transition, if any.
func (a *HybridAutomaton) step(t float64) error {
	m := a.modes[a.currentMode]

	if err := m.ControlSet().Step(t); err != nil {
		return fmt.Errorf("%w: stepping control mode %q: %v", shared.ErrSystemError, m.Name(), err)
	}

	outgoing := a.outgoingSwitches(a.currentMode)
	for _, sw := range outgoing {
		if err := sw.Step(t); err != nil {
			return fmt.Errorf("%w: stepping control switch %q: %v", shared.ErrSystemError, sw.Name(), err)
		}
	}

	for _, sw := range outgoing {
		if !sw.IsActive() {
			continue
		}
		targetIdx := a.modesByName[sw.Target()]
		a.deactivateMode(a.currentMode)
		a.currentMode = targetIdx
		if err := a.activateMode(targetIdx, t); err != nil {
			return err
		}
		break // at most one transition per tick
	}

	return nil
}

// GetCommand returns the current mode's control set's last command,
// without advancing the tick. Valid once Armed or Running.
func (a *HybridAutomaton) GetCommand() (matrix.Matrix, error) {
	if a.state == Unbound {
		return matrix.Matrix{}, shared.ErrNotArmed
	}
	return a.modes[a.currentMode].ControlSet().GetCommand(), nil
}

// Halt terminates the automaton: the current mode's control set and its
// outgoing switches are deactivated and no further Tick is accepted.
// Idempotent on an already-halted automaton.
func (a *HybridAutomaton) Halt() error {
	if a.state == Halted {
		return nil
	}
	if a.state == Running {
		a.deactivateMode(a.currentMode)
	}
	a.state = Halted
	return nil
}

// Serialize writes name, current_control_mode, and every ControlMode then
// ControlSwitch child, in table order, to node.
func (a *HybridAutomaton) Serialize(node *tree.Node) {
	node.SetString("name", a.name)
	if a.currentMode >= 0 {
		node.SetString("current_control_mode", a.modes[a.currentMode].Name())
	}
	for _, m := range a.modes {
		child := tree.New("ControlMode")
		m.Serialize(child)
		node.AddChild(child)
	}
	for _, sw := range a.switches {
		child := tree.New("ControlSwitch")
		sw.Serialize(child)
		node.AddChild(child)
	}
}

// Deserialize reconstructs a HybridAutomaton from its top-level
// DescriptionTree node. Deserialization errors abort the whole
// construction: a partially built automaton is never returned. If node
// carries current_control_mode, the returned automaton is already Armed at
// that mode; otherwise it is Unbound and the caller Arms it before ticking.
func Deserialize(node *tree.Node, sys system.System, reg Registry, policy FailurePolicy) (*HybridAutomaton, error) {
	name, ok := node.GetString("name")
	if !ok {
		return nil, fmt.Errorf("%w: HybridAutomaton missing name attribute", shared.ErrMissingAttribute)
	}

	a := New(name, sys, policy)

	for _, child := range node.ChildrenOfType("ControlMode") {
		m, err := DeserializeControlMode(child, sys, reg)
		if err != nil {
			return nil, err
		}
		if err := a.AddMode(m); err != nil {
			return nil, err
		}
	}

	for _, child := range node.ChildrenOfType("ControlSwitch") {
		sw, err := DeserializeControlSwitch(child, sys)
		if err != nil {
			return nil, err
		}
		if err := a.AddSwitch(sw); err != nil {
			return nil, err
		}
	}

	if err := a.resolveReferences(); err != nil {
		return nil, err
	}

	if start, ok := node.GetString("current_control_mode"); ok {
		if err := a.Arm(start); err != nil {
			return nil, err
		}
	}

	return a, nil
}
