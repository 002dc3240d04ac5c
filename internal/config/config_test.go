package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/pulsenet/pkg/adapters/file"
	"github.com/aretw0/pulsenet/pkg/adapters/memory"
	"github.com/aretw0/pulsenet/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pulsenet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "broadcaster", cfg.Entry)
	assert.Equal(t, StoreFile, cfg.Store.Kind)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
entry: start
max_pulses: 500
workers: 4
store:
  kind: redis
  address: redis:6379
  db: 2
  ttl: 10m
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "start", cfg.Entry)
	assert.Equal(t, 500, cfg.MaxPulses)
	assert.Equal(t, Default().MaxTriggers, cfg.MaxTriggers, "unset keys keep defaults")
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "redis:6379", cfg.Store.Address)
	assert.Equal(t, 2, cfg.Store.DB)
	assert.Equal(t, 10*time.Minute, cfg.Store.TTL)
}

func TestLoad_OverridesWin(t *testing.T) {
	path := writeConfig(t, "log_level: info\nstore:\n  kind: file\n  dir: /tmp/a\n")

	cfg, err := Load(path, map[string]any{
		"log_level": "debug",
		"store.dir": "/tmp/b",
		"workers":   "3",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StoreFile, cfg.Store.Kind)
	assert.Equal(t, "/tmp/b", cfg.Store.Dir)
	assert.Equal(t, 3, cfg.Workers, "weak typing accepts string numbers")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		overrides map[string]any
		invalid   bool
	}{
		{name: "unknown key", body: "colour: blue\n"},
		{name: "bad yaml", body: "entry: [\n"},
		{name: "bad duration", body: "store:\n  ttl: soon\n"},
		{name: "unknown store", body: "store:\n  kind: s3\n", invalid: true},
		{name: "zero pulses", body: "max_pulses: 0\n", invalid: true},
		{name: "negative workers", overrides: map[string]any{"workers": -1}, invalid: true},
		{name: "override into scalar", body: "entry: x\n", overrides: map[string]any{"entry.sub": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := Load(path, tt.overrides)
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewStore(t *testing.T) {
	store, locker, err := NewStore(StoreConfig{Kind: StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
	assert.IsType(t, &memory.Locker{}, locker)

	store, _, err = NewStore(StoreConfig{Kind: StoreFile, Dir: "snaps"})
	require.NoError(t, err)
	require.IsType(t, &file.Store{}, store)
	assert.Equal(t, "snaps", store.(*file.Store).BasePath)

	store, locker, err = NewStore(StoreConfig{Kind: StoreRedis, Address: "localhost:0", Prefix: "p:"})
	require.NoError(t, err)
	require.IsType(t, &redis.Store{}, store)
	assert.Equal(t, "p:", store.(*redis.Store).Prefix())
	assert.IsType(t, &redis.Locker{}, locker)
	_ = store.(*redis.Store).Close()

	_, _, err = NewStore(StoreConfig{Kind: "tape"})
	assert.ErrorIs(t, err, ErrInvalid)
}
