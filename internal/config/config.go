// Package config loads CLI settings from an optional YAML file overlaid with
// flag values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/pulsenet/internal/runtime"
	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings shared by CLI commands.
type Config struct {
	Entry       string      `yaml:"entry" mapstructure:"entry"`
	MaxPulses   int         `yaml:"max_pulses" mapstructure:"max_pulses"`
	MaxTriggers int         `yaml:"max_triggers" mapstructure:"max_triggers"`
	Workers     int         `yaml:"workers" mapstructure:"workers"`
	LogLevel    string      `yaml:"log_level" mapstructure:"log_level"`
	MetricsFile string      `yaml:"metrics_file" mapstructure:"metrics_file"`
	Store       StoreConfig `yaml:"store" mapstructure:"store"`
}

// StoreConfig selects and configures the snapshot store.
type StoreConfig struct {
	Kind     string        `yaml:"kind" mapstructure:"kind"`
	Dir      string        `yaml:"dir" mapstructure:"dir"`
	Address  string        `yaml:"address" mapstructure:"address"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Entry:       string(domain.DefaultEntry),
		MaxPulses:   runtime.DefaultMaxPulses,
		MaxTriggers: runtime.DefaultMaxTriggers,
		LogLevel:    "warn",
		Store: StoreConfig{
			Kind:    StoreFile,
			Address: "localhost:6379",
		},
	}
}

// Load reads path (skipped when empty), applies overrides and decodes the
// result on top of Default. Override keys use dots for nesting, e.g. "store.kind".
func Load(path string, overrides map[string]any) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for key, val := range overrides {
		if err := set(raw, strings.Split(key, "."), val); err != nil {
			return Config{}, fmt.Errorf("override %s: %w", key, err)
		}
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and the store kind.
func (c Config) Validate() error {
	switch {
	case c.Entry == "":
		return fmt.Errorf("%w: entry is empty", ErrInvalid)
	case c.MaxPulses <= 0:
		return fmt.Errorf("%w: max_pulses must be positive, got %d", ErrInvalid, c.MaxPulses)
	case c.MaxTriggers <= 0:
		return fmt.Errorf("%w: max_triggers must be positive, got %d", ErrInvalid, c.MaxTriggers)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	case c.Store.TTL < 0:
		return fmt.Errorf("%w: store.ttl must not be negative", ErrInvalid)
	}

	switch c.Store.Kind {
	case StoreMemory, StoreFile, StoreRedis:
		return nil
	default:
		return fmt.Errorf("%w: unknown store kind %q", ErrInvalid, c.Store.Kind)
	}
}

func set(m map[string]any, path []string, val any) error {
	if len(path) == 1 {
		m[path[0]] = val
		return nil
	}
	child, ok := m[path[0]]
	if !ok {
		next := map[string]any{}
		m[path[0]] = next
		return set(next, path[1:], val)
	}
	next, ok := child.(map[string]any)
	if !ok {
		return fmt.Errorf("%s is not a section", path[0])
	}
	return set(next, path[1:], val)
}
