package fsm

import "fmt"

// Transition describes a state transition as an immutable value triple.
// Two transitions are equal iff all three fields are equal under the
// machine's comparers.
type Transition[S, T comparable] struct {
	// From is the state transitioned from.
	From S

	// Trigger is the stimulus that causes the transition.
	Trigger T

	// To is the state transitioned to.
	To S
}

// NewTransition creates a new transition value.
func NewTransition[S, T comparable](from S, trigger T, to S) Transition[S, T] {
	return Transition[S, T]{From: from, Trigger: trigger, To: to}
}

// IsReentry reports whether the transition re-enters its source state.
func (t Transition[S, T]) IsReentry() bool {
	return any(t.From) == any(t.To)
}

func (t Transition[S, T]) String() string {
	return fmt.Sprintf("'%v' --%v--> '%v'", t.From, t.Trigger, t.To)
}

// transitionTable owns the set of registered transitions. Transitions are
// stored by value in insertion order; all matching goes through the
// injected comparers.
type transitionTable[S, T comparable] struct {
	sameState   Comparer[S]
	sameTrigger Comparer[T]
	entries     []Transition[S, T]
}

func newTransitionTable[S, T comparable](sameState Comparer[S], sameTrigger Comparer[T]) *transitionTable[S, T] {
	return &transitionTable[S, T]{sameState: sameState, sameTrigger: sameTrigger}
}

func (tt *transitionTable[S, T]) equal(a, b Transition[S, T]) bool {
	return tt.sameState(a.From, b.From) &&
		tt.sameTrigger(a.Trigger, b.Trigger) &&
		tt.sameState(a.To, b.To)
}

// add registers tr and reports whether it was newly added. Duplicates are
// idempotently ignored: a transition is a pure value fact.
func (tt *transitionTable[S, T]) add(tr Transition[S, T]) bool {
	if tt.contains(tr) {
		return false
	}
	tt.entries = append(tt.entries, tr)
	return true
}

// remove deregisters tr and reports whether it was present.
func (tt *transitionTable[S, T]) remove(tr Transition[S, T]) bool {
	for i, e := range tt.entries {
		if tt.equal(e, tr) {
			tt.entries = append(tt.entries[:i], tt.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (tt *transitionTable[S, T]) contains(tr Transition[S, T]) bool {
	for _, e := range tt.entries {
		if tt.equal(e, tr) {
			return true
		}
	}
	return false
}

// find returns every transition whose source and trigger match. The result
// may legitimately hold more than one entry when guards disambiguate at
// runtime.
func (tt *transitionTable[S, T]) find(from S, trigger T) []Transition[S, T] {
	var out []Transition[S, T]
	for _, e := range tt.entries {
		if tt.sameState(e.From, from) && tt.sameTrigger(e.Trigger, trigger) {
			out = append(out, e)
		}
	}
	return out
}

// referencing returns every transition with id as source or destination.
func (tt *transitionTable[S, T]) referencing(id S) []Transition[S, T] {
	var out []Transition[S, T]
	for _, e := range tt.entries {
		if tt.sameState(e.From, id) || tt.sameState(e.To, id) {
			out = append(out, e)
		}
	}
	return out
}

// all returns the registered transitions in insertion order.
func (tt *transitionTable[S, T]) all() []Transition[S, T] {
	out := make([]Transition[S, T], len(tt.entries))
	copy(out, tt.entries)
	return out
}
