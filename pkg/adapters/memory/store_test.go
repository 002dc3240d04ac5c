package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/pulsenet/pkg/adapters/memory"
	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/aretw0/pulsenet/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSnapshotStoreContract(t, store)
}

func TestMemoryLocker_Contract(t *testing.T) {
	ports.RunLockerContract(t, memory.NewLocker())
}

func TestMemoryStore_SaveIsolatesCaller(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	snap := domain.NewSnapshot()
	snap.Conjunctions["gate"] = map[domain.ID]domain.Level{"a": domain.High}
	require.NoError(t, store.Save(ctx, "k", snap))

	snap.Conjunctions["gate"]["a"] = domain.Low

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, domain.High, got.Conjunctions["gate"]["a"])
}

func TestMemoryLocker_UnlockIsIdempotent(t *testing.T) {
	locker := memory.NewLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "k", 0)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx))

	again, err := locker.Lock(ctx, "k", 0)
	require.NoError(t, err)
	assert.NoError(t, again(ctx))
}
