package observability_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pulsenet"
	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/aretw0/pulsenet/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wiring = `broadcaster -> a
%a -> inv, con
&inv -> b
%b -> con
&con -> output
`

func TestCollector_CountsPulsesByLevel(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewCollector(reg)
	require.NoError(t, err)

	net, err := pulsenet.Parse(wiring, pulsenet.WithLifecycleHooks(collector.Hooks()))
	require.NoError(t, err)

	counts, err := net.Trigger(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Counts{Low: 4, High: 4}, counts)

	assert.Equal(t, 4.0, testutil.ToFloat64(collector.Pulses.WithLabelValues("low")))
	assert.Equal(t, 4.0, testutil.ToFloat64(collector.Pulses.WithLabelValues("high")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.UnboundPulses), "output is an unbound sink")
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Triggers))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.TriggerPulses))
}

func TestCollector_RegisterTwiceReuses(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := observability.NewCollector(reg)
	require.NoError(t, err)
	second, err := observability.NewCollector(reg)
	require.NoError(t, err)

	first.Triggers.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.Triggers))
}

func TestCollector_GathererPairsWithRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewCollector(reg)
	require.NoError(t, err)
	collector.Triggers.Add(2)

	count, err := testutil.GatherAndCount(collector.Gatherer(), "pulsenet_triggers_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	fresh, err := testutil.GatherAndCount(prometheus.NewRegistry(), "pulsenet_triggers_total")
	require.NoError(t, err)
	assert.Zero(t, fresh)
}

func TestCollector_WriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewCollector(reg)
	require.NoError(t, err)
	collector.Pulses.WithLabelValues("high").Add(3)

	path := filepath.Join(t.TempDir(), "pulsenet.prom")
	require.NoError(t, collector.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `pulsenet_pulses_total{level="high"} 3`)
}

func TestCombine(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnPulse: func(context.Context, *domain.PulseEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnPulse:          func(context.Context, *domain.PulseEvent) { calls = append(calls, "b") },
		OnTriggerSettled: func(context.Context, *domain.TriggerEvent) { calls = append(calls, "settled") },
	}

	hooks := observability.Combine(a, domain.LifecycleHooks{}, b)
	hooks.OnPulse(context.Background(), &domain.PulseEvent{})
	hooks.OnTriggerSettled(context.Background(), &domain.TriggerEvent{})

	assert.Equal(t, []string{"a", "b", "settled"}, calls)
	assert.Nil(t, observability.Combine().OnPulse)
}
