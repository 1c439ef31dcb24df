package fsm

import (
	"context"
	"fmt"
)

// StateConfig provides a fluent surface for configuring one state. It is
// a thin layer over the machine's registry operations: everything it does
// can be done with AddState, AddTransition and AddGuard directly.
//
// Errors are sticky: the first failure is retained and returned by Err,
// and subsequent calls on the same config become no-ops.
type StateConfig[S, T comparable] struct {
	machine *Machine[S, T]
	id      S
	err     error
}

// Configure begins fluent configuration of id. When id is not yet
// registered, an inert FuncState is registered for it; hook attachment
// methods (OnEntry, OnUpdate, OnExit, OnEvent) require the registered
// behavior to be a *FuncState.
func (m *Machine[S, T]) Configure(id S) *StateConfig[S, T] {
	c := &StateConfig[S, T]{machine: m, id: id}
	if !m.ContainsState(id) {
		c.err = m.AddState(id, NewFuncState())
	}
	return c
}

// State returns the state being configured.
func (c *StateConfig[S, T]) State() S {
	return c.id
}

// Err returns the first error encountered during configuration.
func (c *StateConfig[S, T]) Err() error {
	return c.err
}

// Permit registers a transition to destination when trigger fires.
func (c *StateConfig[S, T]) Permit(trigger T, destination S) *StateConfig[S, T] {
	if c.err != nil {
		return c
	}
	c.err = c.machine.AddTransition(c.id, trigger, destination)
	return c
}

// PermitIf registers a transition to destination when trigger fires,
// gated by the given guards (all must hold).
func (c *StateConfig[S, T]) PermitIf(trigger T, destination S, guards ...Guard[S, T]) *StateConfig[S, T] {
	if c.Permit(trigger, destination); c.err != nil {
		return c
	}
	for _, g := range guards {
		if c.err = c.machine.AddGuard(c.id, trigger, destination, g); c.err != nil {
			return c
		}
	}
	return c
}

// OnEntry attaches an entry hook to the state's delegate behavior.
func (c *StateConfig[S, T]) OnEntry(fn func(ctx context.Context) error) *StateConfig[S, T] {
	if fs := c.funcState(); fs != nil {
		fs.OnEnter = fn
	}
	return c
}

// OnUpdate attaches an update hook to the state's delegate behavior.
func (c *StateConfig[S, T]) OnUpdate(fn func(ctx context.Context) error) *StateConfig[S, T] {
	if fs := c.funcState(); fs != nil {
		fs.OnUpdate = fn
	}
	return c
}

// OnExit attaches an exit hook to the state's delegate behavior.
func (c *StateConfig[S, T]) OnExit(fn func(ctx context.Context) error) *StateConfig[S, T] {
	if fs := c.funcState(); fs != nil {
		fs.OnExit = fn
	}
	return c
}

// OnEvent attaches an out-of-band event handler to the state's delegate
// behavior.
func (c *StateConfig[S, T]) OnEvent(fn func(ctx context.Context, event any) (bool, error)) *StateConfig[S, T] {
	if fs := c.funcState(); fs != nil {
		fs.OnEvent = fn
	}
	return c
}

func (c *StateConfig[S, T]) funcState() *FuncState {
	if c.err != nil {
		return nil
	}
	behavior, err := c.machine.StateOf(c.id)
	if err != nil {
		c.err = err
		return nil
	}
	fs, ok := behavior.(*FuncState)
	if !ok {
		c.err = &notDelegateStateError{id: c.id}
		return nil
	}
	return fs
}

type notDelegateStateError struct {
	id any
}

func (e *notDelegateStateError) Error() string {
	return fmt.Sprintf("fsm: state '%v' is not a delegate state; attach hooks to its own behavior", e.id)
}
