package runtime

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/pulsenet/pkg/domain"
)

// Circuit is a built pulse network together with its mutable state.
// Triggers run strictly one after another; a Circuit is not safe for
// concurrent use.
type Circuit struct {
	cfg        Config
	components map[domain.ID]*domain.Component
	order      []domain.ID
	pushes     int

	// observe sees every pulse emitted by a component, before it is enqueued.
	observe func(domain.Pulse)
}

// Build instantiates the components described by defs.
//
// Construction runs in two passes: every component is created with its
// outputs in declared order, then every conjunction is seeded with the set of
// components wired to it, each remembered as Low.
func Build(defs []domain.Definition, opts ...Option) (*Circuit, error) {
	return build(defs, NewConfig(opts...))
}

func build(defs []domain.Definition, cfg Config) (*Circuit, error) {
	c := &Circuit{
		cfg:        cfg,
		components: make(map[domain.ID]*domain.Component, len(defs)),
		order:      make([]domain.ID, 0, len(defs)),
	}

	for _, d := range defs {
		if _, dup := c.components[d.ID]; dup {
			return nil, fmt.Errorf("component %s: %w", d.ID, domain.ErrDuplicateComponent)
		}
		comp, err := domain.NewComponent(d.ID, d.Kind, d.Outputs)
		if err != nil {
			return nil, fmt.Errorf("failed to build component: %w", err)
		}
		c.components[d.ID] = comp
		c.order = append(c.order, d.ID)
	}

	for _, src := range c.order {
		for _, dst := range c.components[src].Outputs {
			if target, ok := c.components[dst]; ok && target.Kind == domain.KindConjunction {
				target.Watch(src)
			}
		}
	}

	cfg.Logger.Debug("circuit built", "components", len(c.order), "entry", cfg.Entry)
	return c, nil
}

// Component returns the component registered under id.
func (c *Circuit) Component(id domain.ID) (*domain.Component, bool) {
	comp, ok := c.components[id]
	return comp, ok
}

// IDs returns the component ids in declaration order.
func (c *Circuit) IDs() []domain.ID {
	return slices.Clone(c.order)
}

// Pushes returns the number of triggers run so far.
func (c *Circuit) Pushes() int { return c.pushes }

// Trigger injects a Low pulse from the button into the entry component and
// dispatches pulses until the queue drains. It returns the number of pulses
// enqueued during this trigger, the button pulse included.
//
// Pulses addressed to unbound sinks are counted and then dropped. If more
// than MaxPulses pulses are dispatched the trigger is aborted with a
// *domain.SettleError; the circuit is left mid-propagation.
func (c *Circuit) Trigger(ctx context.Context) (domain.Counts, error) {
	c.pushes++
	push := c.pushes

	q := NewQueue()
	q.Enqueue(domain.Pulse{Source: domain.ButtonID, Destination: c.cfg.Entry, Level: domain.Low})

	dispatched := 0
	for {
		p, ok := q.Dequeue()
		if !ok {
			break
		}
		if dispatched == c.cfg.MaxPulses {
			return q.Counts(), &domain.SettleError{Push: push, Pulses: dispatched}
		}
		dispatched++

		comp, bound := c.components[p.Destination]
		c.emitPulse(ctx, push, p, bound)
		if !bound {
			continue
		}
		for _, out := range comp.Receive(p) {
			if c.observe != nil {
				c.observe(out)
			}
			q.Enqueue(out)
		}
	}

	counts := q.Counts()
	c.emitTriggerSettled(ctx, push, counts)
	return counts, nil
}

// Tally runs n triggers in sequence and sums their counts.
// The context is checked between triggers.
func (c *Circuit) Tally(ctx context.Context, n int) (domain.Counts, error) {
	if n < 0 {
		return domain.Counts{}, fmt.Errorf("invalid trigger count %d", n)
	}

	var total domain.Counts
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		counts, err := c.Trigger(ctx)
		total = total.Add(counts)
		if err != nil {
			return total, err
		}
	}

	c.cfg.Logger.Debug("tally complete", "pushes", n, "low", total.Low, "high", total.High)
	return total, nil
}

// Reset returns every component to its initial state.
func (c *Circuit) Reset() {
	for _, comp := range c.components {
		comp.Reset()
	}
	c.pushes = 0
}

// Snapshot captures the current state of the circuit.
func (c *Circuit) Snapshot() *domain.Snapshot {
	snap := domain.NewSnapshot()
	snap.Pushes = c.pushes
	for _, id := range c.order {
		comp := c.components[id]
		switch comp.Kind {
		case domain.KindFlipFlop:
			snap.FlipFlops[id] = comp.On()
		case domain.KindConjunction:
			mem := make(map[domain.ID]domain.Level)
			for _, in := range comp.Inputs() {
				mem[in], _ = comp.Remembered(in)
			}
			snap.Conjunctions[id] = mem
		}
	}
	return snap
}

// Restore replaces the circuit state with snap. State absent from snap is
// reset to its initial value. On error the circuit is left untouched.
func (c *Circuit) Restore(snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	if snap.Pushes < 0 {
		return fmt.Errorf("invalid push count %d", snap.Pushes)
	}

	staged := make(map[domain.ID]*domain.Component, len(c.components))
	for id, comp := range c.components {
		cp := comp.Clone()
		cp.Reset()
		staged[id] = cp
	}

	for _, id := range slices.Sorted(maps.Keys(snap.FlipFlops)) {
		comp, ok := staged[id]
		if !ok {
			return fmt.Errorf("restore flip-flop %s: %w", id, domain.ErrUnknownComponent)
		}
		if err := comp.SetOn(snap.FlipFlops[id]); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(snap.Conjunctions)) {
		comp, ok := staged[id]
		if !ok {
			return fmt.Errorf("restore conjunction %s: %w", id, domain.ErrUnknownComponent)
		}
		for in, level := range snap.Conjunctions[id] {
			if err := comp.Remember(in, level); err != nil {
				return fmt.Errorf("restore: %w", err)
			}
		}
	}

	c.components = staged
	c.pushes = snap.Pushes
	return nil
}

func (c *Circuit) emitPulse(ctx context.Context, push int, p domain.Pulse, bound bool) {
	if c.cfg.Hooks.OnPulse == nil {
		return
	}
	c.cfg.Hooks.OnPulse(ctx, &domain.PulseEvent{
		Type:  domain.EventPulse,
		Push:  push,
		Pulse: p,
		Bound: bound,
	})
}

func (c *Circuit) emitTriggerSettled(ctx context.Context, push int, counts domain.Counts) {
	if c.cfg.Hooks.OnTriggerSettled == nil {
		return
	}
	c.cfg.Hooks.OnTriggerSettled(ctx, &domain.TriggerEvent{
		Type:   domain.EventTriggerSettled,
		Push:   push,
		Counts: counts,
	})
}
