package fsm

import "context"

// State models the behaviour of a single machine state. Implementations
// are supplied by the host; the machine never constructs states. Any hook
// may call back into the machine, including Trigger.
type State interface {
	// Enter is invoked when the state becomes current.
	Enter(ctx context.Context) error

	// Update is invoked when the machine's Update is called while this
	// state is current.
	Update(ctx context.Context) error

	// Exit is invoked when the state stops being current.
	Exit(ctx context.Context) error
}

// EventHandler is an optional capability of a State. When the current
// state implements it, Machine.HandleEvent routes out-of-band events to
// it; the returned bool reports whether the event was consumed.
type EventHandler interface {
	HandleEvent(ctx context.Context, event any) (bool, error)
}

// stateEntry pairs an identifier with its registered behaviour.
type stateEntry[S comparable] struct {
	id       S
	behavior State
}

// stateRegistry owns the identifier-to-behaviour mapping. It is backed by
// a slice rather than a map so the injected comparer defines key equality
// and enumeration follows insertion order.
type stateRegistry[S comparable] struct {
	same    Comparer[S]
	entries []stateEntry[S]
}

func newStateRegistry[S comparable](same Comparer[S]) *stateRegistry[S] {
	return &stateRegistry[S]{same: same}
}

func (r *stateRegistry[S]) add(id S, behavior State) error {
	if behavior == nil {
		return ErrNilState
	}
	if r.contains(id) {
		return &DuplicateStateError{ID: id}
	}
	r.entries = append(r.entries, stateEntry[S]{id: id, behavior: behavior})
	return nil
}

// remove deregisters id and reports whether it was present.
func (r *stateRegistry[S]) remove(id S) bool {
	for i, e := range r.entries {
		if r.same(e.id, id) {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *stateRegistry[S]) get(id S) (State, error) {
	for _, e := range r.entries {
		if r.same(e.id, id) {
			return e.behavior, nil
		}
	}
	return nil, &UnknownStateError{ID: id}
}

func (r *stateRegistry[S]) contains(id S) bool {
	for _, e := range r.entries {
		if r.same(e.id, id) {
			return true
		}
	}
	return false
}

// ids returns the registered identifiers in insertion order.
func (r *stateRegistry[S]) ids() []S {
	out := make([]S, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.id
	}
	return out
}
