package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles Prometheus metrics for a running network.
type Collector struct {
	gatherer prometheus.Gatherer

	Pulses        *prometheus.CounterVec
	UnboundPulses prometheus.Counter
	Triggers      prometheus.Counter
	TriggerPulses prometheus.Histogram
}

// NewCollector registers metrics against reg, defaulting to the global
// registry when nil. Registering twice against the same registry reuses the
// existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	pulses, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pulsenet_pulses_total",
		Help: "Total number of dispatched pulses, labeled by level.",
	}, []string{"level"}))
	if err != nil {
		return nil, err
	}

	unbound, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pulsenet_unbound_pulses_total",
		Help: "Pulses delivered to ids with no component definition.",
	}))
	if err != nil {
		return nil, err
	}

	triggers, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pulsenet_triggers_total",
		Help: "Total number of triggers that settled.",
	}))
	if err != nil {
		return nil, err
	}

	perTrigger, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pulsenet_trigger_pulses",
		Help:    "Pulses dispatched per settled trigger.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Pulses:        pulses,
		UnboundPulses: unbound,
		Triggers:      triggers,
		TriggerPulses: perTrigger,
	}, nil
}

// Gatherer returns the gatherer paired with the registerer.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.gatherer
}

// WriteTextfile writes the current metrics in text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.gatherer)
}

// Hooks returns lifecycle hooks that feed the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPulse: func(_ context.Context, e *domain.PulseEvent) {
			c.Pulses.WithLabelValues(e.Pulse.Level.String()).Inc()
			if !e.Bound {
				c.UnboundPulses.Inc()
			}
		},
		OnTriggerSettled: func(_ context.Context, e *domain.TriggerEvent) {
			c.Triggers.Inc()
			c.TriggerPulses.Observe(float64(e.Counts.Total()))
		},
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}
