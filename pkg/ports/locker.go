package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a lock.
type UnlockFunc func(ctx context.Context) error

// Locker defines the interface for concurrency control over snapshot keys.
// Two runs resuming the same snapshot must not interleave their load and save.
type Locker interface {
	// Lock acquires the lock for key. It blocks until the lock is acquired or
	// the context is canceled. The lock expires after ttl if the holder dies.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
