package domain

import (
	"fmt"
	"slices"
)

// Component is a node of the pulse network. Its behavior is selected by Kind;
// the set of kinds is closed and Receive handles every one of them.
//
// A Component is not safe for concurrent use.
type Component struct {
	ID      ID
	Kind    Kind
	Outputs []ID

	// flip-flop state
	on bool

	// conjunction state: last level seen per input, and how many are High.
	memory map[ID]Level
	highs  int
}

// NewComponent creates a component in its initial state.
// Conjunction inputs are registered afterwards with Watch.
func NewComponent(id ID, kind Kind, outputs []ID) (*Component, error) {
	if id == "" {
		return nil, fmt.Errorf("component missing ID")
	}
	switch kind {
	case KindBroadcaster, KindFlipFlop:
	case KindConjunction:
	default:
		return nil, fmt.Errorf("component %s: unknown kind %d", id, kind)
	}

	c := &Component{
		ID:      id,
		Kind:    kind,
		Outputs: slices.Clone(outputs),
	}
	if kind == KindConjunction {
		c.memory = make(map[ID]Level)
	}
	return c, nil
}

// Watch registers input as a remembered input of a conjunction, initially Low.
// It is a no-op for other kinds and for inputs already known.
func (c *Component) Watch(input ID) {
	if c.Kind != KindConjunction {
		return
	}
	if _, ok := c.memory[input]; ok {
		return
	}
	c.memory[input] = Low
}

// Inputs returns the remembered inputs of a conjunction in sorted order.
func (c *Component) Inputs() []ID {
	ids := make([]ID, 0, len(c.memory))
	for id := range c.memory {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// On reports the flip-flop state.
func (c *Component) On() bool { return c.on }

// Remembered returns the last level a conjunction received from input.
func (c *Component) Remembered(input ID) (Level, bool) {
	l, ok := c.memory[input]
	return l, ok
}

// SetOn overrides the flip-flop state.
func (c *Component) SetOn(on bool) error {
	if c.Kind != KindFlipFlop {
		return fmt.Errorf("component %s is a %s, not a flip-flop", c.ID, c.Kind)
	}
	c.on = on
	return nil
}

// Remember overrides the level a conjunction remembers for input.
// The input must already be known.
func (c *Component) Remember(input ID, level Level) error {
	if c.Kind != KindConjunction {
		return fmt.Errorf("component %s is a %s, not a conjunction", c.ID, c.Kind)
	}
	prev, ok := c.memory[input]
	if !ok {
		return fmt.Errorf("conjunction %s has no input %s: %w", c.ID, input, ErrUnknownComponent)
	}
	c.set(input, prev, level)
	return nil
}

// Reset returns the component to its initial state.
func (c *Component) Reset() {
	c.on = false
	for id := range c.memory {
		c.memory[id] = Low
	}
	c.highs = 0
}

// Clone returns an independent copy of the component, state included.
func (c *Component) Clone() *Component {
	cp := *c
	cp.Outputs = slices.Clone(c.Outputs)
	if c.memory != nil {
		cp.memory = make(map[ID]Level, len(c.memory))
		for k, v := range c.memory {
			cp.memory[k] = v
		}
	}
	return &cp
}

// Receive handles one incoming pulse and returns the pulses it emits, in
// output order. It may mutate the component state.
func (c *Component) Receive(p Pulse) []Pulse {
	switch c.Kind {
	case KindBroadcaster:
		return c.emit(p.Level)

	case KindFlipFlop:
		if p.Level == High {
			return nil
		}
		c.on = !c.on
		if c.on {
			return c.emit(High)
		}
		return c.emit(Low)

	case KindConjunction:
		if prev, ok := c.memory[p.Source]; ok {
			c.set(p.Source, prev, p.Level)
		}
		if c.highs == len(c.memory) {
			return c.emit(Low)
		}
		return c.emit(High)
	}
	return nil
}

func (c *Component) set(input ID, prev, next Level) {
	if prev == next {
		return
	}
	c.memory[input] = next
	if next == High {
		c.highs++
	} else {
		c.highs--
	}
}

func (c *Component) emit(level Level) []Pulse {
	if len(c.Outputs) == 0 {
		return nil
	}
	out := make([]Pulse, len(c.Outputs))
	for i, dst := range c.Outputs {
		out[i] = Pulse{Source: c.ID, Destination: dst, Level: level}
	}
	return out
}
