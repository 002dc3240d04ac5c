package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pulsenet/pkg/adapters/redis"
	"github.com/aretw0/pulsenet/pkg/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunLockerContract(t, redis.NewLocker(client, "test:"))
}

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "resource1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:resource1"), "Lock key should be set in Redis")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:resource1"), "Lock key should be removed after unlock")
}

func TestRedisLocker_ExpiredLockIsReacquired(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	stale, err := locker.Lock(ctx, "resource1", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	unlock, err := locker.Lock(ctx, "resource1", 5*time.Second)
	require.NoError(t, err)

	// The stale holder must not release the new holder's lock.
	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("test:lock:resource1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:resource1"))
}

func TestRedisLocker_TokensAreUnique(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()

	first, err := redis.NewLocker(client, "test:").Lock(ctx, "resource1", time.Second)
	require.NoError(t, err)
	firstToken, err := mr.Get("test:lock:resource1")
	require.NoError(t, err)
	_, err = uuid.Parse(firstToken)
	require.NoError(t, err, "lock token should be a UUID")

	mr.FastForward(2 * time.Second)

	second, err := redis.NewLocker(client, "test:").Lock(ctx, "resource1", 5*time.Second)
	require.NoError(t, err)
	secondToken, err := mr.Get("test:lock:resource1")
	require.NoError(t, err)
	assert.NotEqual(t, firstToken, secondToken)

	require.NoError(t, first(ctx))
	require.NoError(t, second(ctx))
	assert.False(t, mr.Exists("test:lock:resource1"))
}
