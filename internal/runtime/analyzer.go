package runtime

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/pulsenet/pkg/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Analyzer finds how many triggers it takes for watched components to emit a
// High pulse. Every search runs on its own circuit built from the original
// definitions, so searches never observe each other or a live circuit.
type Analyzer struct {
	defs   []domain.Definition
	cfg    Config
	tracer trace.Tracer
}

// NewAnalyzer creates an analyzer over defs.
func NewAnalyzer(defs []domain.Definition, opts ...Option) *Analyzer {
	cfg := NewConfig(opts...)
	return &Analyzer{
		defs:   slices.Clone(defs),
		cfg:    cfg,
		tracer: cfg.tracer(),
	}
}

// FirstHighEmission returns the 1-based index of the first trigger during
// which id emits at least one High pulse, starting from the initial state.
func (a *Analyzer) FirstHighEmission(ctx context.Context, id domain.ID) (period int, err error) {
	ctx, span := a.tracer.Start(ctx, "FirstHighEmission",
		trace.WithAttributes(attribute.String("pulsenet.watched", string(id))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("pulsenet.period", period))
		}
		span.End()
	}()

	// hooks are host callbacks for the live network; searches run unobserved
	cfg := a.cfg
	cfg.Hooks = domain.LifecycleHooks{}
	c, err := build(a.defs, cfg)
	if err != nil {
		return 0, err
	}
	if _, ok := c.components[id]; !ok {
		return 0, fmt.Errorf("watched %s: %w", id, domain.ErrUnknownComponent)
	}

	fired := false
	c.observe = func(p domain.Pulse) {
		if p.Source == id && p.Level == domain.High {
			fired = true
		}
	}

	for push := 1; push <= cfg.MaxTriggers; push++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := c.Trigger(ctx); err != nil {
			return 0, fmt.Errorf("watched %s: %w", id, err)
		}
		if fired {
			cfg.Logger.Debug("first high emission", "watched", id, "push", push)
			return push, nil
		}
	}
	return 0, fmt.Errorf("watched %s after %d pushes: %w", id, cfg.MaxTriggers, domain.ErrPeriodNotFound)
}

// Periods runs FirstHighEmission for every id on a bounded pool of workers.
// Results are returned in argument order. The first failure cancels the rest.
func (a *Analyzer) Periods(ctx context.Context, ids ...domain.ID) ([]int, error) {
	periods := make([]int, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, id := range ids {
		g.Go(func() error {
			p, err := a.FirstHighEmission(gctx, id)
			if err != nil {
				return err
			}
			periods[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return periods, nil
}

// Period returns the number of triggers after which all watched components
// emit High on the same trigger: the least common multiple of their periods.
func (a *Analyzer) Period(ctx context.Context, ids ...domain.ID) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("no watched components")
	}
	periods, err := a.Periods(ctx, ids...)
	if err != nil {
		return 0, err
	}
	p := LCM(periods...)
	a.cfg.Logger.Debug("combined period", "watched", ids, "periods", periods, "period", p)
	return p, nil
}

// GateInputs returns the inputs of the conjunction that feeds sink, sorted.
// The sink must be fed by exactly one component and that component must be a
// conjunction.
func (a *Analyzer) GateInputs(sink domain.ID) ([]domain.ID, error) {
	var feeders []domain.Definition
	for _, d := range a.defs {
		if slices.Contains(d.Outputs, sink) {
			feeders = append(feeders, d)
		}
	}
	if len(feeders) != 1 {
		return nil, fmt.Errorf("%s has %d feeders: %w", sink, len(feeders), domain.ErrNoGate)
	}
	gate := feeders[0]
	if gate.Kind != domain.KindConjunction {
		return nil, fmt.Errorf("%s is fed by %s %s: %w", sink, gate.Kind, gate.ID, domain.ErrNoGate)
	}

	c, err := build(a.defs, a.cfg)
	if err != nil {
		return nil, err
	}
	comp, _ := c.Component(gate.ID)
	return comp.Inputs(), nil
}

// SinkPeriod is Period over the GateInputs of sink.
func (a *Analyzer) SinkPeriod(ctx context.Context, sink domain.ID) (int, error) {
	ids, err := a.GateInputs(sink)
	if err != nil {
		return 0, err
	}
	return a.Period(ctx, ids...)
}

// LCM returns the least common multiple of ns. LCM() is 1.
func LCM(ns ...int) int {
	l := 1
	for _, n := range ns {
		if n == 0 {
			return 0
		}
		l = l / gcd(l, n) * n
	}
	return l
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
