package config

import (
	"fmt"

	"github.com/aretw0/pulsenet/pkg/adapters/file"
	"github.com/aretw0/pulsenet/pkg/adapters/memory"
	"github.com/aretw0/pulsenet/pkg/adapters/redis"
	"github.com/aretw0/pulsenet/pkg/ports"
)

// NewStore builds the snapshot store and matching locker for the configured kind.
// File stores are locked in-process only.
func NewStore(c StoreConfig) (ports.SnapshotStore, ports.Locker, error) {
	switch c.Kind {
	case StoreMemory:
		return memory.NewStore(), memory.NewLocker(), nil
	case StoreFile:
		return file.New(c.Dir), memory.NewLocker(), nil
	case StoreRedis:
		var opts []redis.Option
		if c.Prefix != "" {
			opts = append(opts, redis.WithPrefix(c.Prefix))
		}
		if c.TTL > 0 {
			opts = append(opts, redis.WithTTL(c.TTL))
		}
		store := redis.New(c.Address, c.Password, c.DB, opts...)
		return store, redis.NewLocker(store.Client(), store.Prefix()), nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown store kind %q", ErrInvalid, c.Kind)
	}
}
