package fsm

import "reflect"

// Guard is a predicate gating whether a specific transition is currently
// eligible. It is evaluated against the transition triple at resolution
// time; a closure may capture external context, but the predicate should
// not mutate engine state.
type Guard[S, T comparable] func(from S, trigger T, to S) bool

// guardedTransition holds the ordered guard list attached to one
// transition. All guards must hold for the transition to be eligible.
type guardedTransition[S, T comparable] struct {
	transition Transition[S, T]
	guards     []Guard[S, T]
}

// guardRegistry owns, per transition, the ordered list of guard
// predicates. Transition existence is the machine's responsibility; the
// registry only manages attachment and evaluation.
type guardRegistry[S, T comparable] struct {
	table   *transitionTable[S, T]
	entries []*guardedTransition[S, T]
}

func newGuardRegistry[S, T comparable](table *transitionTable[S, T]) *guardRegistry[S, T] {
	return &guardRegistry[S, T]{table: table}
}

func (gr *guardRegistry[S, T]) lookup(tr Transition[S, T]) *guardedTransition[S, T] {
	for _, e := range gr.entries {
		if gr.table.equal(e.transition, tr) {
			return e
		}
	}
	return nil
}

// add appends guard to tr's list. The same predicate may attach more than
// once; each attachment is a separate occurrence.
func (gr *guardRegistry[S, T]) add(tr Transition[S, T], guard Guard[S, T]) {
	if e := gr.lookup(tr); e != nil {
		e.guards = append(e.guards, guard)
		return
	}
	gr.entries = append(gr.entries, &guardedTransition[S, T]{
		transition: tr,
		guards:     []Guard[S, T]{guard},
	})
}

// removeOne removes the first occurrence of guard from tr's list, matching
// the predicate by function identity. The mapping is dropped entirely once
// its list is empty. Reports whether an occurrence was removed.
func (gr *guardRegistry[S, T]) removeOne(tr Transition[S, T], guard Guard[S, T]) bool {
	e := gr.lookup(tr)
	if e == nil {
		return false
	}
	target := reflect.ValueOf(guard).Pointer()
	for i, g := range e.guards {
		if reflect.ValueOf(g).Pointer() == target {
			e.guards = append(e.guards[:i], e.guards[i+1:]...)
			if len(e.guards) == 0 {
				gr.drop(tr)
			}
			return true
		}
	}
	return false
}

// drop removes tr's guard list entirely. Used when the transition itself
// is removed, so no guards survive their transition.
func (gr *guardRegistry[S, T]) drop(tr Transition[S, T]) {
	for i, e := range gr.entries {
		if gr.table.equal(e.transition, tr) {
			gr.entries = append(gr.entries[:i], gr.entries[i+1:]...)
			return
		}
	}
}

// eligible reports whether tr may currently be taken: a transition with no
// guard list is unconditionally eligible, otherwise every guard in the
// list must hold.
func (gr *guardRegistry[S, T]) eligible(tr Transition[S, T]) bool {
	e := gr.lookup(tr)
	if e == nil {
		return true
	}
	for _, g := range e.guards {
		if !g(tr.From, tr.Trigger, tr.To) {
			return false
		}
	}
	return true
}

// count returns the number of guards attached to tr.
func (gr *guardRegistry[S, T]) count(tr Transition[S, T]) int {
	if e := gr.lookup(tr); e != nil {
		return len(e.guards)
	}
	return 0
}
