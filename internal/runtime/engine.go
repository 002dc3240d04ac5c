package runtime

import (
	"log/slog"
	goruntime "runtime"

	"github.com/aretw0/pulsenet/internal/logging"
	"github.com/aretw0/pulsenet/pkg/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultMaxPulses bounds the pulses dispatched by a single trigger.
	DefaultMaxPulses = 1_000_000
	// DefaultMaxTriggers bounds the triggers run while looking for a period.
	DefaultMaxTriggers = 1_000_000

	tracerName = "github.com/aretw0/pulsenet/internal/runtime"
)

// Config holds the settings shared by circuits and analyzers.
type Config struct {
	Entry          domain.ID
	MaxPulses      int
	MaxTriggers    int
	Workers        int
	Hooks          domain.LifecycleHooks
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Option defines a functional option for configuring the runtime.
type Option func(*Config)

// WithEntry sets the component that receives the trigger pulse (default: "broadcaster").
func WithEntry(id domain.ID) Option {
	return func(c *Config) {
		c.Entry = id
	}
}

// WithMaxPulses bounds the pulses dispatched by one trigger.
func WithMaxPulses(n int) Option {
	return func(c *Config) {
		c.MaxPulses = n
	}
}

// WithMaxTriggers bounds the triggers run while looking for a period.
func WithMaxTriggers(n int) Option {
	return func(c *Config) {
		c.MaxTriggers = n
	}
}

// WithWorkers sets how many period searches run in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Config) {
		c.Hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTracerProvider sets the provider used for analyzer spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// NewConfig applies opts over the defaults.
func NewConfig(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Entry == "" {
		cfg.Entry = domain.DefaultEntry
	}
	if cfg.MaxPulses <= 0 {
		cfg.MaxPulses = DefaultMaxPulses
	}
	if cfg.MaxTriggers <= 0 {
		cfg.MaxTriggers = DefaultMaxTriggers
	}
	if cfg.Workers <= 0 {
		cfg.Workers = goruntime.GOMAXPROCS(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	return cfg
}

func (c Config) tracer() trace.Tracer {
	return c.TracerProvider.Tracer(tracerName)
}
