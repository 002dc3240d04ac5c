package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/pulsenet/pkg/domain"
)

// Combine merges several hook sets; each callback fans out in argument order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var pulse []func(context.Context, *domain.PulseEvent)
	var settled []func(context.Context, *domain.TriggerEvent)
	for _, s := range sets {
		if s.OnPulse != nil {
			pulse = append(pulse, s.OnPulse)
		}
		if s.OnTriggerSettled != nil {
			settled = append(settled, s.OnTriggerSettled)
		}
	}

	var out domain.LifecycleHooks
	if len(pulse) > 0 {
		out.OnPulse = func(ctx context.Context, e *domain.PulseEvent) {
			for _, fn := range pulse {
				fn(ctx, e)
			}
		}
	}
	if len(settled) > 0 {
		out.OnTriggerSettled = func(ctx context.Context, e *domain.TriggerEvent) {
			for _, fn := range settled {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LogHooks logs every settled trigger at debug level. Individual pulses are
// not logged.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTriggerSettled: func(ctx context.Context, e *domain.TriggerEvent) {
			logger.DebugContext(ctx, "trigger settled",
				"push", e.Push,
				"low", e.Counts.Low,
				"high", e.Counts.High,
			)
		},
	}
}
