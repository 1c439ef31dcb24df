package fsm_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machinic/fsm"
)

func TestAddState(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		m := fsm.New[string, string]()
		require.NoError(t, m.AddState("A", fsm.NewFuncState()))

		err := m.AddState("A", fsm.NewFuncState())
		var dupErr *fsm.DuplicateStateError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "A", dupErr.ID)
	})

	t.Run("nil behavior", func(t *testing.T) {
		m := fsm.New[string, string]()
		assert.ErrorIs(t, m.AddState("A", nil), fsm.ErrNilState)
		assert.False(t, m.ContainsState("A"))
	})
}

func TestStateOf(t *testing.T) {
	m := fsm.New[string, string]()
	behavior := fsm.NewFuncState()
	require.NoError(t, m.AddState("A", behavior))

	got, err := m.StateOf("A")
	require.NoError(t, err)
	assert.Same(t, behavior, got)

	_, err = m.StateOf("missing")
	var unknownErr *fsm.UnknownStateError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "missing", unknownErr.ID)
}

func TestStateIDsOrder(t *testing.T) {
	m := fsm.New[string, string]()
	for _, id := range []string{"C", "A", "B"} {
		require.NoError(t, m.AddState(id, fsm.NewFuncState()))
	}
	assert.Equal(t, []string{"C", "A", "B"}, m.StateIDs())

	m.RemoveState("A")
	assert.Equal(t, []string{"C", "B"}, m.StateIDs())
}

func TestRemoveStateCascades(t *testing.T) {
	m := fsm.New[string, string]()
	for _, id := range []string{"X", "A", "B"} {
		require.NoError(t, m.AddState(id, fsm.NewFuncState()))
	}
	require.NoError(t, m.AddTransition("X", "t1", "A"))
	require.NoError(t, m.AddTransition("A", "t2", "X"))
	require.NoError(t, m.AddTransition("A", "t3", "B"))
	require.NoError(t, m.AddGuard("X", "t1", "A", func(from, trigger, to string) bool { return false }))

	m.RemoveState("X")

	assert.False(t, m.ContainsState("X"))
	assert.False(t, m.ContainsTransition("X", "t1", "A"))
	assert.False(t, m.ContainsTransition("A", "t2", "X"))
	assert.True(t, m.ContainsTransition("A", "t3", "B"))

	// Re-registering the removed transition must not resurrect its old
	// guard: the always-false guard would make it ineligible.
	require.NoError(t, m.AddState("X", fsm.NewFuncState()))
	require.NoError(t, m.AddTransition("X", "t1", "A"))
	require.NoError(t, m.SetInitialState("X"))
	ctx := context.Background()
	require.NoError(t, m.Start(ctx))
	require.NoError(t, m.Trigger(ctx, "t1"))
	assert.True(t, m.IsInState("A"))
}

func TestRemoveStateNoOpWhenAbsent(t *testing.T) {
	m := fsm.New[string, string]()
	require.NoError(t, m.AddState("A", fsm.NewFuncState()))
	m.RemoveState("missing")
	assert.True(t, m.ContainsState("A"))
}

func TestAddTransition(t *testing.T) {
	t.Run("unknown source", func(t *testing.T) {
		m := fsm.New[string, string]()
		require.NoError(t, m.AddState("B", fsm.NewFuncState()))

		err := m.AddTransition("A", "x", "B")
		var unknownErr *fsm.UnknownStateError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "A", unknownErr.ID)
	})

	t.Run("unknown destination", func(t *testing.T) {
		m := fsm.New[string, string]()
		require.NoError(t, m.AddState("A", fsm.NewFuncState()))

		err := m.AddTransition("A", "x", "B")
		var unknownErr *fsm.UnknownStateError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "B", unknownErr.ID)
	})

	t.Run("duplicate is idempotent", func(t *testing.T) {
		m := fsm.New[string, string]()
		require.NoError(t, m.AddState("A", fsm.NewFuncState()))
		require.NoError(t, m.AddState("B", fsm.NewFuncState()))

		require.NoError(t, m.AddTransition("A", "x", "B"))
		require.NoError(t, m.AddTransition("A", "x", "B"))
		assert.Len(t, m.Transitions(), 1)
	})

	t.Run("self transition", func(t *testing.T) {
		m := fsm.New[string, string]()
		require.NoError(t, m.AddState("A", fsm.NewFuncState()))
		require.NoError(t, m.AddTransition("A", "x", "A"))
		assert.True(t, m.ContainsTransition("A", "x", "A"))
	})
}

func TestRemoveTransitionCascadesGuards(t *testing.T) {
	m := fsm.New[string, string]()
	require.NoError(t, m.AddState("A", fsm.NewFuncState()))
	require.NoError(t, m.AddState("B", fsm.NewFuncState()))
	require.NoError(t, m.AddTransition("A", "x", "B"))
	require.NoError(t, m.AddGuard("A", "x", "B", func(from, trigger, to string) bool { return false }))

	m.RemoveTransition("A", "x", "B")
	assert.False(t, m.ContainsTransition("A", "x", "B"))

	// Without the cascade the stale always-false guard would block the
	// re-registered transition.
	require.NoError(t, m.AddTransition("A", "x", "B"))
	require.NoError(t, m.SetInitialState("A"))
	ctx := context.Background()
	require.NoError(t, m.Start(ctx))
	require.NoError(t, m.Trigger(ctx, "x"))
	assert.True(t, m.IsInState("B"))
}

func TestRemoveTransitionNoOpWhenAbsent(t *testing.T) {
	m := fsm.New[string, string]()
	require.NoError(t, m.AddState("A", fsm.NewFuncState()))
	m.RemoveTransition("A", "x", "A")
	assert.Empty(t, m.Transitions())
}

func TestTransitionValue(t *testing.T) {
	tr := fsm.NewTransition("A", "x", "B")
	assert.Equal(t, "A", tr.From)
	assert.Equal(t, "x", tr.Trigger)
	assert.Equal(t, "B", tr.To)
	assert.False(t, tr.IsReentry())
	assert.Equal(t, "'A' --x--> 'B'", tr.String())

	self := fsm.NewTransition("A", "x", "A")
	assert.True(t, self.IsReentry())
}

func TestCustomStateComparer(t *testing.T) {
	ctx := context.Background()
	m := fsm.New[string, string](
		fsm.WithStateComparer[string, string](strings.EqualFold),
	)
	require.NoError(t, m.AddState("Idle", fsm.NewFuncState()))
	require.NoError(t, m.AddState("Busy", fsm.NewFuncState()))

	// Case differences are the same identity under EqualFold.
	err := m.AddState("IDLE", fsm.NewFuncState())
	var dupErr *fsm.DuplicateStateError
	require.ErrorAs(t, err, &dupErr)

	require.NoError(t, m.AddTransition("idle", "go", "BUSY"))
	assert.True(t, m.ContainsTransition("IDLE", "go", "busy"))

	require.NoError(t, m.SetInitialState("IDLE"))
	require.NoError(t, m.Start(ctx))
	require.NoError(t, m.Trigger(ctx, "go"))
	assert.True(t, m.IsInState("busy"))
}

func TestCustomTriggerComparer(t *testing.T) {
	ctx := context.Background()
	m := fsm.New[string, string](
		fsm.WithTriggerComparer[string, string](strings.EqualFold),
	)
	require.NoError(t, m.AddState("A", fsm.NewFuncState()))
	require.NoError(t, m.AddState("B", fsm.NewFuncState()))
	require.NoError(t, m.AddTransition("A", "Go", "B"))
	require.NoError(t, m.SetInitialState("A"))
	require.NoError(t, m.Start(ctx))

	require.NoError(t, m.Trigger(ctx, "GO"))
	assert.True(t, m.IsInState("B"))
}
