package fsm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machinic/fsm"
)

func guardMachine(t *testing.T) *fsm.Machine[string, string] {
	t.Helper()
	m := fsm.New[string, string]()
	require.NoError(t, m.AddState("A", fsm.NewFuncState()))
	require.NoError(t, m.AddState("B", fsm.NewFuncState()))
	require.NoError(t, m.AddTransition("A", "x", "B"))
	return m
}

func TestAddGuard(t *testing.T) {
	t.Run("unknown transition", func(t *testing.T) {
		m := guardMachine(t)
		err := m.AddGuard("A", "y", "B", func(from, trigger, to string) bool { return true })
		var unknownErr *fsm.UnknownTransitionError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "y", unknownErr.Trigger)
	})

	t.Run("nil predicate", func(t *testing.T) {
		m := guardMachine(t)
		assert.ErrorIs(t, m.AddGuard("A", "x", "B", nil), fsm.ErrNilGuard)
	})

	t.Run("receives the transition triple", func(t *testing.T) {
		m := guardMachine(t)
		var gotFrom, gotTrigger, gotTo string
		require.NoError(t, m.AddGuard("A", "x", "B", func(from, trigger, to string) bool {
			gotFrom, gotTrigger, gotTo = from, trigger, to
			return true
		}))
		require.NoError(t, m.SetInitialState("A"))
		ctx := context.Background()
		require.NoError(t, m.Start(ctx))
		require.NoError(t, m.Trigger(ctx, "x"))

		assert.Equal(t, "A", gotFrom)
		assert.Equal(t, "x", gotTrigger)
		assert.Equal(t, "B", gotTo)
	})
}

func TestRemoveGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown transition", func(t *testing.T) {
		m := guardMachine(t)
		err := m.RemoveGuard("A", "y", "B", func(from, trigger, to string) bool { return true })
		var unknownErr *fsm.UnknownTransitionError
		require.ErrorAs(t, err, &unknownErr)
	})

	t.Run("removes one occurrence at a time", func(t *testing.T) {
		m := guardMachine(t)
		block := func(from, trigger, to string) bool { return false }

		// The same predicate attached twice is two occurrences.
		require.NoError(t, m.AddGuard("A", "x", "B", block))
		require.NoError(t, m.AddGuard("A", "x", "B", block))
		require.NoError(t, m.SetInitialState("A"))
		require.NoError(t, m.Start(ctx))

		require.NoError(t, m.RemoveGuard("A", "x", "B", block))
		require.NoError(t, m.Trigger(ctx, "x"))
		assert.True(t, m.IsInState("A"))

		require.NoError(t, m.RemoveGuard("A", "x", "B", block))
		require.NoError(t, m.Trigger(ctx, "x"))
		assert.True(t, m.IsInState("B"))
	})

	t.Run("unattached predicate is a no-op", func(t *testing.T) {
		m := guardMachine(t)
		attached := func(from, trigger, to string) bool { return false }
		other := func(from, trigger, to string) bool { return true }
		require.NoError(t, m.AddGuard("A", "x", "B", attached))

		require.NoError(t, m.RemoveGuard("A", "x", "B", other))

		require.NoError(t, m.SetInitialState("A"))
		require.NoError(t, m.Start(ctx))
		require.NoError(t, m.Trigger(ctx, "x"))
		assert.True(t, m.IsInState("A"))
	})
}

func TestGuardEvaluationOrder(t *testing.T) {
	ctx := context.Background()
	m := guardMachine(t)

	var order []int
	require.NoError(t, m.AddGuard("A", "x", "B", func(from, trigger, to string) bool {
		order = append(order, 1)
		return true
	}))
	require.NoError(t, m.AddGuard("A", "x", "B", func(from, trigger, to string) bool {
		order = append(order, 2)
		return false
	}))
	require.NoError(t, m.AddGuard("A", "x", "B", func(from, trigger, to string) bool {
		order = append(order, 3)
		return true
	}))
	require.NoError(t, m.SetInitialState("A"))
	require.NoError(t, m.Start(ctx))

	require.NoError(t, m.Trigger(ctx, "x"))

	// Insertion order, short-circuiting at the first failure.
	assert.Equal(t, []int{1, 2}, order)
	assert.True(t, m.IsInState("A"))
}
