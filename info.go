package fsm

// TransitionInfo describes one registered transition for introspection.
type TransitionInfo[S, T comparable] struct {
	Transition Transition[S, T]
	GuardCount int
}

// MachineInfo is a point-in-time snapshot of a machine's configuration,
// for tooling such as the graph subpackage. Mutating it has no effect on
// the machine.
type MachineInfo[S, T comparable] struct {
	// States holds the registered state identifiers in registration order.
	States []S

	// Transitions holds the registered transitions in registration order.
	Transitions []TransitionInfo[S, T]

	// Initial is the configured initial state; only meaningful when
	// HasInitial is true.
	Initial    S
	HasInitial bool

	// Current is the active state; only meaningful when Started is true.
	Current S
	Started bool
}

// Info returns a snapshot of the machine's configuration and status.
func (m *Machine[S, T]) Info() MachineInfo[S, T] {
	transitions := make([]TransitionInfo[S, T], 0, len(m.table.entries))
	for _, tr := range m.table.all() {
		transitions = append(transitions, TransitionInfo[S, T]{
			Transition: tr,
			GuardCount: m.guards.count(tr),
		})
	}
	return MachineInfo[S, T]{
		States:      m.states.ids(),
		Transitions: transitions,
		Initial:     m.initial,
		HasInitial:  m.initialSet,
		Current:     m.current,
		Started:     m.started,
	}
}
