package pulsenet

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/pulsenet/internal/compiler"
	"github.com/aretw0/pulsenet/internal/logging"
	"github.com/aretw0/pulsenet/internal/runtime"
	"github.com/aretw0/pulsenet/pkg/domain"
	"go.opentelemetry.io/otel/trace"
)

// Network is the high-level entry point for the pulsenet library.
// It owns a live circuit, whose state advances with every trigger, and an
// analyzer that always works from the initial state.
//
// A Network is safe for concurrent use; triggers are serialized.
type Network struct {
	Name string

	defs        []domain.Definition
	entry       domain.ID
	maxPulses   int
	maxTriggers int
	workers     int
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	tracer      trace.TracerProvider

	mu       sync.Mutex
	circuit  *runtime.Circuit
	analyzer *runtime.Analyzer
}

// Option defines a functional option for configuring the Network.
type Option func(*Network)

// WithName labels the network in log records.
func WithName(name string) Option {
	return func(n *Network) {
		n.Name = name
	}
}

// WithEntry configures the component that receives the button pulse (default: "broadcaster").
func WithEntry(id domain.ID) Option {
	return func(n *Network) {
		n.entry = id
	}
}

// WithMaxPulses bounds the pulses a single trigger may dispatch before it is
// reported as not settling.
func WithMaxPulses(max int) Option {
	return func(n *Network) {
		n.maxPulses = max
	}
}

// WithMaxTriggers bounds the triggers the analyzer runs per watched component.
func WithMaxTriggers(max int) Option {
	return func(n *Network) {
		n.maxTriggers = max
	}
}

// WithWorkers sets how many watched components are analyzed in parallel.
func WithWorkers(workers int) Option {
	return func(n *Network) {
		n.workers = workers
	}
}

// WithLifecycleHooks registers observability hooks on the live circuit.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Network) {
		n.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Network) {
		n.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry provider for analyzer spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(n *Network) {
		n.tracer = tp
	}
}

// Parse builds a Network from wiring text.
// It fails on the first malformed line and returns no partial network.
func Parse(text string, opts ...Option) (*Network, error) {
	defs, err := compiler.NewParser().Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse network: %w", err)
	}
	return New(defs, opts...)
}

// New builds a Network from already parsed definitions.
func New(defs []domain.Definition, opts ...Option) (*Network, error) {
	n := &Network{defs: slices.Clone(defs)}
	for _, opt := range opts {
		opt(n)
	}

	if n.logger == nil {
		n.logger = logging.NewNop()
	}
	if n.Name != "" {
		n.logger = n.logger.With("network", n.Name)
	}

	runtimeOpts := []runtime.Option{
		runtime.WithEntry(n.entry),
		runtime.WithMaxPulses(n.maxPulses),
		runtime.WithMaxTriggers(n.maxTriggers),
		runtime.WithWorkers(n.workers),
		runtime.WithLogger(n.logger),
		runtime.WithTracerProvider(n.tracer),
	}

	circuit, err := runtime.Build(n.defs, append(runtimeOpts, runtime.WithLifecycleHooks(n.hooks))...)
	if err != nil {
		return nil, err
	}
	n.circuit = circuit
	n.analyzer = runtime.NewAnalyzer(n.defs, runtimeOpts...)
	return n, nil
}

// Trigger presses the button once and returns the pulses sent, by level.
func (n *Network) Trigger(ctx context.Context) (domain.Counts, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.circuit.Trigger(ctx)
}

// Tally presses the button presses times and returns the summed counts.
func (n *Network) Tally(ctx context.Context, presses int) (domain.Counts, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	counts, err := n.circuit.Tally(ctx, presses)
	if err != nil {
		n.logger.Error("tally failed", "presses", presses, "pushes", n.circuit.Pushes(), "error", err)
		return counts, err
	}
	n.logger.Info("tally", "presses", presses, "low", counts.Low, "high", counts.High)
	return counts, nil
}

// RunCycles presses the button presses times and returns the number of low
// pulses sent multiplied by the number of high pulses sent.
func (n *Network) RunCycles(ctx context.Context, presses int) (int, error) {
	counts, err := n.Tally(ctx, presses)
	if err != nil {
		return 0, err
	}
	return counts.Product(), nil
}

// Pushes returns how many times the button has been pressed on the live circuit.
func (n *Network) Pushes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.circuit.Pushes()
}

// Reset returns the live circuit to its initial state.
func (n *Network) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.circuit.Reset()
}

// FirstHighEmission returns the first press, counted from the initial state,
// during which id emits a high pulse. The live circuit is not affected.
func (n *Network) FirstHighEmission(ctx context.Context, id domain.ID) (int, error) {
	return n.analyzer.FirstHighEmission(ctx, id)
}

// Periods returns FirstHighEmission for every id, in argument order.
func (n *Network) Periods(ctx context.Context, ids ...domain.ID) ([]int, error) {
	return n.analyzer.Periods(ctx, ids...)
}

// Period returns the least common multiple of the periods of ids.
func (n *Network) Period(ctx context.Context, ids ...domain.ID) (int, error) {
	return n.analyzer.Period(ctx, ids...)
}

// GateInputs returns the inputs of the single conjunction feeding sink.
func (n *Network) GateInputs(sink domain.ID) ([]domain.ID, error) {
	return n.analyzer.GateInputs(sink)
}

// SinkPeriod returns the number of presses after which the conjunction
// gating sink first sees all of its inputs high on the same press.
func (n *Network) SinkPeriod(ctx context.Context, sink domain.ID) (int, error) {
	p, err := n.analyzer.SinkPeriod(ctx, sink)
	if err != nil {
		return 0, err
	}
	n.logger.Info("sink period", "sink", sink, "presses", p)
	return p, nil
}

// Inspect returns the definitions the network was built from, in declared order.
func (n *Network) Inspect() []domain.Definition {
	out := make([]domain.Definition, len(n.defs))
	for i, d := range n.defs {
		d.Outputs = slices.Clone(d.Outputs)
		out[i] = d
	}
	return out
}

// Format renders the network back into wiring text.
func (n *Network) Format() string {
	return compiler.Format(n.defs)
}

// Entry returns the component that receives the button pulse.
func (n *Network) Entry() domain.ID {
	if n.entry == "" {
		return domain.DefaultEntry
	}
	return n.entry
}

// Snapshot captures the state of the live circuit.
func (n *Network) Snapshot() *domain.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.circuit.Snapshot()
}

// Restore replaces the state of the live circuit with snap.
func (n *Network) Restore(snap *domain.Snapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.circuit.Restore(snap); err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	n.logger.Debug("snapshot restored", "pushes", snap.Pushes)
	return nil
}
