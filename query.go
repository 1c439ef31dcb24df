package fsm

// StatesImplementing enumerates the registered state identifiers whose
// behavior satisfies the capability interface C, in registration order.
// The capability type argument must be given explicitly:
//
//	handlers := fsm.StatesImplementing[fsm.EventHandler](m)
func StatesImplementing[C any, S, T comparable](m *Machine[S, T]) []S {
	var out []S
	for _, e := range m.states.entries {
		if _, ok := any(e.behavior).(C); ok {
			out = append(out, e.id)
		}
	}
	return out
}

// EventHandlerStates enumerates the registered states able to consume
// out-of-band events.
func EventHandlerStates[S, T comparable](m *Machine[S, T]) []S {
	return StatesImplementing[EventHandler](m)
}
