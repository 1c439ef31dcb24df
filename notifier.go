package fsm

// Listener receives state-change notifications.
type Listener[S, T comparable] func(Transition[S, T])

// changeNotifier delivers before/after change notifications to registered
// listeners, synchronously and in registration order. The machine is
// single-writer by contract, so no locking is needed here.
type changeNotifier[S, T comparable] struct {
	before []Listener[S, T]
	after  []Listener[S, T]
}

func (n *changeNotifier[S, T]) registerBefore(l Listener[S, T]) {
	n.before = append(n.before, l)
}

func (n *changeNotifier[S, T]) registerAfter(l Listener[S, T]) {
	n.after = append(n.after, l)
}

func (n *changeNotifier[S, T]) unregisterAll() {
	n.before = nil
	n.after = nil
}

func (n *changeNotifier[S, T]) notifyBefore(tr Transition[S, T]) {
	for _, l := range n.before {
		l(tr)
	}
}

func (n *changeNotifier[S, T]) notifyAfter(tr Transition[S, T]) {
	for _, l := range n.after {
		l(tr)
	}
}
