// Package fsm provides a generic, embeddable finite-state-machine engine
// for Go.
//
// The machine is configured with caller-supplied states, triggers and
// transitions; it tracks the active state, dispatches Enter/Update/Exit
// hooks, and resolves each trigger into at most one transition, using
// guard conditions to disambiguate and reporting ambiguity as an error.
// It is designed to be embedded in a larger host (a simulation loop, a
// protocol handler, a UI controller) that ticks it and feeds it triggers:
//
//	m := fsm.New[string, string]()
//	m.AddState("idle", idleState)
//	m.AddState("busy", busyState)
//	m.AddTransition("idle", "work", "busy")
//	m.SetInitialState("idle")
//
//	err := m.Start(ctx)
//	err = m.Trigger(ctx, "work")
//
// # Guards
//
// Guard predicates gate individual transitions; all guards on a
// transition must hold for it to be eligible:
//
//	m.AddGuard("idle", "work", "busy", func(from, trigger, to string) bool {
//	    return queue.Len() > 0
//	})
//
// # Reentrancy
//
// Hooks may call back into the machine, including Trigger. Nested
// requests are queued and processed strictly FIFO after the current
// transition completes, so hook-driven trigger chains never recurse
// through the call stack.
//
// # Identity
//
// State identifiers and triggers are opaque values compared through
// injected comparers (value equality by default):
//
//	m := fsm.New[string, string](
//	    fsm.WithStateComparer[string, string](strings.EqualFold),
//	)
//
// # Fluent configuration
//
// The Configure builder layers a fluent surface over the registry
// operations:
//
//	m.Configure("idle").
//	    OnEntry(func(ctx context.Context) error { ... }).
//	    Permit("work", "busy")
//
// Declarative YAML/JSON definitions live in the def subpackage, and DOT
// and Mermaid renderings of a machine in the graph subpackage.
package fsm
