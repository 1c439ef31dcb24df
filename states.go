package fsm

import (
	"context"
	"time"
)

// FuncState is a delegate-based State assembled from optional closures.
// Nil hooks are no-ops, so the zero value is a valid inert state.
type FuncState struct {
	OnEnter  func(ctx context.Context) error
	OnUpdate func(ctx context.Context) error
	OnExit   func(ctx context.Context) error
	OnEvent  func(ctx context.Context, event any) (bool, error)
}

// NewFuncState creates an inert delegate state; assign hooks to its
// fields or through the Configure builder.
func NewFuncState() *FuncState {
	return &FuncState{}
}

func (s *FuncState) Enter(ctx context.Context) error {
	if s.OnEnter == nil {
		return nil
	}
	return s.OnEnter(ctx)
}

func (s *FuncState) Update(ctx context.Context) error {
	if s.OnUpdate == nil {
		return nil
	}
	return s.OnUpdate(ctx)
}

func (s *FuncState) Exit(ctx context.Context) error {
	if s.OnExit == nil {
		return nil
	}
	return s.OnExit(ctx)
}

// HandleEvent consumes an event through OnEvent when set.
func (s *FuncState) HandleEvent(ctx context.Context, event any) (bool, error) {
	if s.OnEvent == nil {
		return false, nil
	}
	return s.OnEvent(ctx, event)
}

// TimerState fires a trigger on its machine once a duration has elapsed
// across Update calls. The host remains responsible for ticking the
// machine; the timer only measures elapsed wall-clock time between its
// Enter and the Update that crosses the deadline.
type TimerState[S, T comparable] struct {
	machine  *Machine[S, T]
	duration time.Duration
	trigger  T

	now      func() time.Time
	deadline time.Time
	fired    bool
}

// NewTimerState creates a state that fires trigger on m after d has
// elapsed since the state was entered.
func NewTimerState[S, T comparable](m *Machine[S, T], d time.Duration, trigger T) *TimerState[S, T] {
	return &TimerState[S, T]{
		machine:  m,
		duration: d,
		trigger:  trigger,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *TimerState[S, T]) SetClock(now func() time.Time) {
	s.now = now
}

func (s *TimerState[S, T]) Enter(ctx context.Context) error {
	s.deadline = s.now().Add(s.duration)
	s.fired = false
	return nil
}

func (s *TimerState[S, T]) Update(ctx context.Context) error {
	if s.fired || s.now().Before(s.deadline) {
		return nil
	}
	s.fired = true
	return s.machine.Trigger(ctx, s.trigger)
}

func (s *TimerState[S, T]) Exit(ctx context.Context) error {
	return nil
}
