package fsm

import (
	"errors"
	"fmt"
)

var (
	// ErrStarted is returned by operations that require a stopped machine.
	ErrStarted = errors.New("fsm: machine already started")

	// ErrNotStarted is returned by operations that require a running machine.
	ErrNotStarted = errors.New("fsm: machine not started")

	// ErrNilState is returned when a nil state behavior is registered.
	ErrNilState = errors.New("fsm: nil state")

	// ErrNilGuard is returned when a nil guard predicate is attached.
	ErrNilGuard = errors.New("fsm: nil guard predicate")
)

// DuplicateStateError indicates a state identifier collision on registration.
type DuplicateStateError struct {
	ID any
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("fsm: state '%v' is already registered", e.ID)
}

// UnknownStateError indicates an operation referenced a state identifier
// that is not present in the registry.
type UnknownStateError struct {
	ID any
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("fsm: state '%v' is not registered", e.ID)
}

// InvalidInitialStateError indicates the configured or requested initial
// state is not registered, or that no initial state was configured at all.
type InvalidInitialStateError struct {
	ID any
}

func (e *InvalidInitialStateError) Error() string {
	if e.ID == nil {
		return "fsm: no initial state configured"
	}
	return fmt.Sprintf("fsm: initial state '%v' is not registered", e.ID)
}

// UnknownTransitionError indicates a guard operation referenced a
// transition that is not present in the transition table.
type UnknownTransitionError struct {
	From    any
	Trigger any
	To      any
}

func (e *UnknownTransitionError) Error() string {
	return fmt.Sprintf("fsm: transition '%v' --%v--> '%v' is not registered", e.From, e.Trigger, e.To)
}

// AmbiguousTransitionError indicates that two or more transitions from the
// same state on the same trigger were simultaneously guard-eligible. This
// is a configuration defect: guards on competing transitions should be
// mutually exclusive.
type AmbiguousTransitionError struct {
	State        any
	Trigger      any
	Destinations []any
}

func (e *AmbiguousTransitionError) Error() string {
	return fmt.Sprintf(
		"fsm: multiple eligible transitions from state '%v' for trigger '%v' (destinations %v); guards should be mutually exclusive",
		e.State, e.Trigger, e.Destinations)
}
