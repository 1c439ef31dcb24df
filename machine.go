package fsm

import "context"

// Machine is a finite-state machine over caller-defined state and trigger
// identifier types. It owns the state registry, the transition table and
// the per-transition guard lists, tracks the current state while running,
// and resolves triggers into at most one transition per request.
//
// The machine is single-threaded and reentrant: hooks may call back into
// Trigger, and such nested requests are queued and processed strictly
// FIFO after the current transition completes, never recursively.
// Concurrent use from multiple goroutines must be serialized by the host.
type Machine[S, T comparable] struct {
	sameState   Comparer[S]
	sameTrigger Comparer[T]

	states   *stateRegistry[S]
	table    *transitionTable[S, T]
	guards   *guardRegistry[S, T]
	notifier *changeNotifier[S, T]

	initialSet bool
	initial    S

	started bool
	current S

	// queue holds pending trigger requests; draining is set while the
	// queue is being processed so nested Trigger calls enqueue and
	// return instead of recursing.
	queue    []T
	draining bool
}

// Option configures a Machine at construction.
type Option[S, T comparable] func(*Machine[S, T])

// WithStateComparer replaces value equality for state identifiers.
func WithStateComparer[S, T comparable](c Comparer[S]) Option[S, T] {
	return func(m *Machine[S, T]) { m.sameState = c }
}

// WithTriggerComparer replaces value equality for triggers.
func WithTriggerComparer[S, T comparable](c Comparer[T]) Option[S, T] {
	return func(m *Machine[S, T]) { m.sameTrigger = c }
}

// New creates an empty, stopped machine.
func New[S, T comparable](opts ...Option[S, T]) *Machine[S, T] {
	m := &Machine[S, T]{
		sameState:   DefaultComparer[S](),
		sameTrigger: DefaultComparer[T](),
		notifier:    &changeNotifier[S, T]{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.states = newStateRegistry(m.sameState)
	m.table = newTransitionTable(m.sameState, m.sameTrigger)
	m.guards = newGuardRegistry(m.table)
	return m
}

// AddState registers behavior under id. Fails with ErrNilState for a nil
// behavior and *DuplicateStateError if id is already registered.
func (m *Machine[S, T]) AddState(id S, behavior State) error {
	return m.states.add(id, behavior)
}

// RemoveState deregisters id, removing every transition that references it
// as source or destination and every guard attached to those transitions.
// No-op if id is not registered.
func (m *Machine[S, T]) RemoveState(id S) {
	if !m.states.remove(id) {
		return
	}
	for _, tr := range m.table.referencing(id) {
		m.table.remove(tr)
		m.guards.drop(tr)
	}
}

// StateOf returns the behavior registered under id.
func (m *Machine[S, T]) StateOf(id S) (State, error) {
	return m.states.get(id)
}

// ContainsState reports whether id is registered.
func (m *Machine[S, T]) ContainsState(id S) bool {
	return m.states.contains(id)
}

// StateIDs returns the registered state identifiers in registration order.
func (m *Machine[S, T]) StateIDs() []S {
	return m.states.ids()
}

// AddTransition registers the transition (from, trigger, to). Both
// endpoints must already be registered states. Registering an identical
// transition twice is a silent no-op.
func (m *Machine[S, T]) AddTransition(from S, trigger T, to S) error {
	if !m.states.contains(from) {
		return &UnknownStateError{ID: from}
	}
	if !m.states.contains(to) {
		return &UnknownStateError{ID: to}
	}
	m.table.add(NewTransition(from, trigger, to))
	return nil
}

// RemoveTransition deregisters the matching transition and its guards.
// No-op if the transition is not registered.
func (m *Machine[S, T]) RemoveTransition(from S, trigger T, to S) {
	tr := NewTransition(from, trigger, to)
	if m.table.remove(tr) {
		m.guards.drop(tr)
	}
}

// ContainsTransition reports whether the transition is registered.
func (m *Machine[S, T]) ContainsTransition(from S, trigger T, to S) bool {
	return m.table.contains(NewTransition(from, trigger, to))
}

// Transitions returns the registered transitions in registration order.
func (m *Machine[S, T]) Transitions() []Transition[S, T] {
	return m.table.all()
}

// AddGuard appends guard to the transition's guard list. All guards on a
// transition must hold for it to be eligible. Fails with
// *UnknownTransitionError if the transition is not registered and
// ErrNilGuard for a nil predicate.
func (m *Machine[S, T]) AddGuard(from S, trigger T, to S, guard Guard[S, T]) error {
	tr := NewTransition(from, trigger, to)
	if !m.table.contains(tr) {
		return &UnknownTransitionError{From: from, Trigger: trigger, To: to}
	}
	if guard == nil {
		return ErrNilGuard
	}
	m.guards.add(tr, guard)
	return nil
}

// RemoveGuard removes the first occurrence of guard (matched by function
// identity) from the transition's guard list. Fails with
// *UnknownTransitionError if the transition is not registered; removing a
// guard that is not attached is a no-op.
func (m *Machine[S, T]) RemoveGuard(from S, trigger T, to S, guard Guard[S, T]) error {
	tr := NewTransition(from, trigger, to)
	if !m.table.contains(tr) {
		return &UnknownTransitionError{From: from, Trigger: trigger, To: to}
	}
	m.guards.removeOne(tr, guard)
	return nil
}

// SetInitialState configures the state the machine enters on Start. Only
// valid while stopped; may be overwritten. The id is validated again at
// Start time, since the state set can change in between.
func (m *Machine[S, T]) SetInitialState(id S) error {
	if m.started {
		return ErrStarted
	}
	if !m.states.contains(id) {
		return &InvalidInitialStateError{ID: id}
	}
	m.initial = id
	m.initialSet = true
	return nil
}

// Start enters the initial state and begins processing. A Trigger fired
// from within the initial state's Enter hook is queued and processed
// before Start returns. If the Enter hook fails, the machine remains
// stopped.
func (m *Machine[S, T]) Start(ctx context.Context) error {
	if m.started {
		return ErrStarted
	}
	if !m.initialSet {
		return &InvalidInitialStateError{}
	}
	behavior, err := m.states.get(m.initial)
	if err != nil {
		return &InvalidInitialStateError{ID: m.initial}
	}

	m.current = m.initial
	m.started = true
	m.draining = true
	if err := behavior.Enter(ctx); err != nil {
		m.abandon()
		m.started = false
		return err
	}
	return m.drain(ctx)
}

// Stop exits the current state and stops the machine. Idempotent: a
// stopped machine stays stopped and no hook is invoked. The machine
// leaves started mode before the Exit hook runs, so a Trigger fired from
// within Exit fails with ErrNotStarted.
func (m *Machine[S, T]) Stop(ctx context.Context) error {
	if !m.started {
		return nil
	}
	behavior, err := m.states.get(m.current)
	m.started = false
	m.abandon()
	var zero S
	m.current = zero
	if err != nil {
		return err
	}
	return behavior.Exit(ctx)
}

// Update forwards to the current state's Update hook.
func (m *Machine[S, T]) Update(ctx context.Context) error {
	if !m.started {
		return ErrNotStarted
	}
	behavior, err := m.states.get(m.current)
	if err != nil {
		return err
	}
	return behavior.Update(ctx)
}

// Trigger requests a transition. The request is queued; unless this call
// arrived reentrantly from inside a hook, the queue is then drained to
// exhaustion (strictly FIFO) before Trigger returns. A trigger with no
// eligible transition from the current state is silently ignored. When
// two or more transitions are simultaneously eligible, the drain aborts
// with *AmbiguousTransitionError, the remaining queue is discarded and
// the current state is left unchanged.
func (m *Machine[S, T]) Trigger(ctx context.Context, trigger T) error {
	if !m.started {
		return ErrNotStarted
	}
	m.queue = append(m.queue, trigger)
	if m.draining {
		// Reentrant call from inside a hook: the outer drain loop picks
		// the request up after the current transition completes.
		return nil
	}
	m.draining = true
	return m.drain(ctx)
}

// HandleEvent routes an out-of-band event to the current state when it
// implements EventHandler. Returns false without error when it does not.
func (m *Machine[S, T]) HandleEvent(ctx context.Context, event any) (bool, error) {
	if !m.started {
		return false, ErrNotStarted
	}
	behavior, err := m.states.get(m.current)
	if err != nil {
		return false, err
	}
	if h, ok := behavior.(EventHandler); ok {
		return h.HandleEvent(ctx, event)
	}
	return false, nil
}

// IsInState reports whether the machine is started and id is the current
// state.
func (m *Machine[S, T]) IsInState(id S) bool {
	return m.started && m.sameState(m.current, id)
}

// Current returns the current state identifier; ok is false while the
// machine is stopped.
func (m *Machine[S, T]) Current() (id S, ok bool) {
	return m.current, m.started
}

// Started reports whether the machine is running.
func (m *Machine[S, T]) Started() bool {
	return m.started
}

// OnTransitioning registers a listener invoked before a transition applies
// its exit/enter effects. Listeners run synchronously in registration
// order.
func (m *Machine[S, T]) OnTransitioning(l Listener[S, T]) {
	m.notifier.registerBefore(l)
}

// OnTransitioned registers a listener invoked after a transition has
// completed.
func (m *Machine[S, T]) OnTransitioned(l Listener[S, T]) {
	m.notifier.registerAfter(l)
}

// UnregisterAllListeners removes all change listeners.
func (m *Machine[S, T]) UnregisterAllListeners() {
	m.notifier.unregisterAll()
}

// drain processes queued trigger requests to exhaustion. Any error
// abandons the remaining queue: the engine never keeps processing a batch
// after surfacing an error from it.
func (m *Machine[S, T]) drain(ctx context.Context) error {
	for len(m.queue) > 0 {
		select {
		case <-ctx.Done():
			m.abandon()
			return ctx.Err()
		default:
		}

		trigger := m.queue[0]
		m.queue = m.queue[1:]
		if err := m.resolve(ctx, trigger); err != nil {
			m.abandon()
			return err
		}
	}
	m.draining = false
	return nil
}

// abandon discards pending requests and resets the draining flag.
func (m *Machine[S, T]) abandon() {
	m.queue = nil
	m.draining = false
}

// resolve processes a single dequeued request: find matching transitions,
// filter by guard eligibility, then perform the single survivor. Zero
// survivors is a valid no-op; two or more is a configuration error.
func (m *Machine[S, T]) resolve(ctx context.Context, trigger T) error {
	var eligible []Transition[S, T]
	for _, tr := range m.table.find(m.current, trigger) {
		if m.guards.eligible(tr) {
			eligible = append(eligible, tr)
		}
	}

	switch len(eligible) {
	case 0:
		return nil
	case 1:
		return m.perform(ctx, eligible[0])
	default:
		destinations := make([]any, len(eligible))
		for i, tr := range eligible {
			destinations[i] = tr.To
		}
		return &AmbiguousTransitionError{
			State:        m.current,
			Trigger:      trigger,
			Destinations: destinations,
		}
	}
}

// perform applies a resolved transition: before-notification, exit the
// source, reassign the current state, enter the destination,
// after-notification. Hook errors propagate without rollback.
func (m *Machine[S, T]) perform(ctx context.Context, tr Transition[S, T]) error {
	source, err := m.states.get(tr.From)
	if err != nil {
		return err
	}
	destination, err := m.states.get(tr.To)
	if err != nil {
		return err
	}

	m.notifier.notifyBefore(tr)

	if err := source.Exit(ctx); err != nil {
		return err
	}
	m.current = tr.To
	if err := destination.Enter(ctx); err != nil {
		return err
	}

	m.notifier.notifyAfter(tr)
	return nil
}
