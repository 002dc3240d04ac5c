// Package cli implements the pulsenet commands on top of the library facade.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/aretw0/pulsenet"
	"github.com/aretw0/pulsenet/internal/config"
	"github.com/aretw0/pulsenet/internal/presentation/graph"
	"github.com/aretw0/pulsenet/internal/runtime"
	"github.com/aretw0/pulsenet/internal/validator"
	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/aretw0/pulsenet/pkg/observability"
	"github.com/aretw0/pulsenet/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrInvalidNetwork is returned by Validate when the report has findings.
var ErrInvalidNetwork = errors.New("network has structural problems")

// App carries the configuration and collaborators shared by commands.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Style  *Styler

	sessions *session.Manager
}

// NewApp builds the snapshot store named by cfg.
func NewApp(cfg config.Config, logger *slog.Logger, style *Styler) (*App, error) {
	store, locker, err := config.NewStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:   cfg,
		Logger:   logger,
		Style:    style,
		sessions: session.NewManager(store, session.WithLocker(locker), session.WithLogger(logger)),
	}, nil
}

// Network parses text with the configured limits.
func (a *App) Network(text string, opts ...pulsenet.Option) (*pulsenet.Network, error) {
	base := []pulsenet.Option{
		pulsenet.WithEntry(domain.ID(a.Config.Entry)),
		pulsenet.WithMaxPulses(a.Config.MaxPulses),
		pulsenet.WithMaxTriggers(a.Config.MaxTriggers),
		pulsenet.WithWorkers(a.Config.Workers),
		pulsenet.WithLogger(a.Logger),
	}
	return pulsenet.Parse(text, append(base, opts...)...)
}

// Run presses the button cycles times and prints the tally.
// With a session key the network resumes from, and saves back to, the store.
func (a *App) Run(ctx context.Context, text string, cycles int, key string) error {
	hooks := observability.LogHooks(a.Logger)

	var collector *observability.Collector
	if a.Config.MetricsFile != "" {
		var err error
		collector, err = observability.NewCollector(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		hooks = observability.Combine(hooks, collector.Hooks())
	}

	net, err := a.Network(text, pulsenet.WithLifecycleHooks(hooks))
	if err != nil {
		return err
	}

	var counts domain.Counts
	press := func(ctx context.Context) error {
		var err error
		counts, err = net.Tally(ctx, cycles)
		return err
	}

	if key == "" {
		err = press(ctx)
	} else {
		var resumed bool
		resumed, err = a.sessions.Resume(ctx, key, net, press)
		if err == nil {
			a.Logger.Info("session saved", "session", key, "resumed", resumed, "pushes", net.Pushes())
		}
	}
	if err != nil {
		return err
	}

	if collector != nil {
		if err := collector.WriteTextfile(a.Config.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	a.Style.Field("low", counts.Low)
	a.Style.Field("high", counts.High)
	a.Style.Field("product", counts.Product())
	a.Style.Field("pushes", net.Pushes())
	return nil
}

// Period prints the period of each watched id, or of the gate inputs of sink,
// followed by their least common multiple.
func (a *App) Period(ctx context.Context, text string, watch []string, sink string) error {
	if (len(watch) == 0) == (sink == "") {
		return errors.New("exactly one of watch or sink must be set")
	}

	net, err := a.Network(text)
	if err != nil {
		return err
	}

	ids, err := watched(net, watch, sink)
	if err != nil {
		return err
	}

	periods, err := net.Periods(ctx, ids...)
	if err != nil {
		return err
	}

	for i, id := range ids {
		a.Style.Field(string(id), periods[i])
	}
	a.Style.Field("lcm", runtime.LCM(periods...))
	return nil
}

// watched resolves the watch list, or the gate inputs of sink when set.
func watched(net *pulsenet.Network, watch []string, sink string) ([]domain.ID, error) {
	if sink != "" {
		return net.GateInputs(domain.ID(sink))
	}
	ids := make([]domain.ID, len(watch))
	for i, w := range watch {
		ids[i] = domain.ID(strings.TrimSpace(w))
	}
	return ids, nil
}

// GraphOptions selects the state drawn over the flowchart.
type GraphOptions struct {
	// Session highlights the flip-flops that are on in the stored snapshot.
	Session string
	// Watch and Sink mark components as watched, the same way Period picks them.
	Watch []string
	Sink  string
}

// Graph prints a Mermaid flowchart with the overlay selected by opts.
func (a *App) Graph(ctx context.Context, text string, opts GraphOptions) error {
	if len(opts.Watch) > 0 && opts.Sink != "" {
		return errors.New("watch and sink are mutually exclusive")
	}

	net, err := a.Network(text)
	if err != nil {
		return err
	}
	defs := net.Inspect()

	var overlay *graph.Overlay
	if opts.Session != "" {
		snap, err := a.sessions.Load(ctx, opts.Session)
		if err != nil {
			return fmt.Errorf("failed to load session %s: %w", opts.Session, err)
		}
		overlay = &graph.Overlay{}
		for _, d := range defs {
			if snap.FlipFlops[d.ID] {
				overlay.On = append(overlay.On, d.ID)
			}
		}
	}

	if len(opts.Watch) > 0 || opts.Sink != "" {
		ids, err := watched(net, opts.Watch, opts.Sink)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if !slices.ContainsFunc(defs, func(d domain.Definition) bool { return d.ID == id }) {
				return fmt.Errorf("watched %s: %w", id, domain.ErrUnknownComponent)
			}
		}
		if overlay == nil {
			overlay = &graph.Overlay{}
		}
		overlay.Watched = ids
	}

	a.Style.Plain(graph.GenerateMermaid(defs, net.Entry(), overlay))
	return nil
}

// Validate parses text and prints the structural report.
func (a *App) Validate(text string) error {
	net, err := a.Network(text)
	if err != nil {
		return err
	}

	report := validator.Validate(net.Inspect(), net.Entry())
	for _, id := range report.UnboundSinks {
		a.Logger.Debug("unbound sink", "id", id)
	}

	findings := report.Findings()
	if len(findings) == 0 {
		a.Style.OK("network is valid (%d components)", len(net.Inspect()))
		return nil
	}
	for _, f := range findings {
		a.Logger.Warn("validation finding", "finding", f)
		a.Style.Warn("%s", f)
	}
	return fmt.Errorf("%w: %d finding(s)", ErrInvalidNetwork, len(findings))
}

// Version prints the release.
func (a *App) Version() {
	a.Style.Plain(fmt.Sprintf("pulsenet version %s\n", strings.TrimSpace(pulsenet.Version)))
}
