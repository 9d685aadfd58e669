// Package shared provides ambient, cross-cutting infrastructure for the
// automesh engine: sentinel errors, debug logging, and environment-variable
// configuration. It carries no automaton domain logic of its own.
package shared

import "errors"

// Description-tree and Registry errors.
//
// These relate to deserializing a HybridAutomaton from its DescriptionTree
// and to the process-wide controller/control-set Registry.

// ErrParseError indicates an ill-formed description tree or matrix text.
var ErrParseError = errors.New("ill-formed description tree")

// ErrUnknownType indicates a controller, control-set, or sensor type name
// that has no registered factory.
var ErrUnknownType = errors.New("unknown type")

// ErrDuplicateRegistration indicates a Registry name already bound to a
// different factory target.
var ErrDuplicateRegistration = errors.New("duplicate registration for type name")

// ErrDuplicateName indicates two controllers in one control set, two modes,
// or two switches sharing a name.
var ErrDuplicateName = errors.New("duplicate name")

// ErrMissingAttribute indicates a required DescriptionTree attribute is
// absent.
var ErrMissingAttribute = errors.New("missing required attribute")

// ErrUnresolvedReference indicates a switch source/target or start-mode name
// that does not resolve to an existing ControlMode.
var ErrUnresolvedReference = errors.New("unresolved mode reference")

// ErrShapeMismatch indicates a jump condition or controller received
// matrices of inconsistent shape.
var ErrShapeMismatch = errors.New("matrix shape mismatch")

// Scheduler state-machine errors.

// ErrNotArmed indicates Tick was called before Arm/Activate.
var ErrNotArmed = errors.New("automaton is not armed")

// ErrAlreadyRunning indicates Activate was called on a running automaton.
var ErrAlreadyRunning = errors.New("automaton is already running")

// ErrHalted indicates an operation was attempted on a halted automaton.
var ErrHalted = errors.New("automaton is halted")

// ErrNonMonotonicTime indicates Tick was called with a time not greater
// than the previous tick's time.
var ErrNonMonotonicTime = errors.New("tick time is not monotonically increasing")

// System-collaborator and general errors.

// ErrSystemError wraps an error propagated from the external System.
var ErrSystemError = errors.New("system error")

// ErrInvalidInput indicates invalid parameters were provided to a function.
var ErrInvalidInput = errors.New("invalid input provided")
