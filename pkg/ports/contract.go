package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	sample := func() *domain.Snapshot {
		snap := domain.NewSnapshot()
		snap.Pushes = 42
		snap.FlipFlops["a"] = true
		snap.FlipFlops["b"] = false
		snap.Conjunctions["con"] = map[domain.ID]domain.Level{
			"a": domain.High,
			"b": domain.Low,
		}
		return snap
	}

	t.Run("Save and Load", func(t *testing.T) {
		want := sample()
		require.NoError(t, store.Save(ctx, key, want), "Save should not return error")

		got, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, want, got)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		snap := sample()
		snap.Pushes = 43
		require.NoError(t, store.Save(ctx, key, snap))

		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 43, got.Pushes)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		got, err := store.Load(ctx, key)
		require.NoError(t, err)
		got.FlipFlops["a"] = false

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.True(t, again.FlipFlops["a"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sample()))
		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		k1, k2 := key+"-1", key+"-2"
		require.NoError(t, store.Save(ctx, k1, sample()))
		require.NoError(t, store.Save(ctx, k2, sample()))
		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}

// RunLockerContract verifies mutual exclusion and release for a Locker.
func RunLockerContract(t *testing.T, locker Locker) {
	ctx := context.Background()
	key := "contract-lock-" + time.Now().Format("20060102150405")

	unlock, err := locker.Lock(ctx, key, 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, unlock)

	t.Run("Contention Blocks", func(t *testing.T) {
		waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err := locker.Lock(waitCtx, key, 5*time.Second)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Release Allows Reacquire", func(t *testing.T) {
		require.NoError(t, unlock(ctx))

		again, err := locker.Lock(ctx, key, 5*time.Second)
		require.NoError(t, err)
		assert.NoError(t, again(ctx))
	})
}
