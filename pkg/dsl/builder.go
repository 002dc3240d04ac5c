package dsl

import (
	"fmt"

	"github.com/aretw0/pulsenet/internal/compiler"
	"github.com/aretw0/pulsenet/pkg/domain"
)

// Builder accumulates component definitions in declaration order.
type Builder struct {
	defs []domain.Definition
}

// New creates a new network builder.
func New() *Builder {
	return &Builder{}
}

// Broadcaster declares a component that forwards every pulse unchanged.
func (b *Builder) Broadcaster(id string, outputs ...string) *Builder {
	return b.add(domain.KindBroadcaster, id, outputs)
}

// FlipFlop declares a component that toggles on low pulses.
func (b *Builder) FlipFlop(id string, outputs ...string) *Builder {
	return b.add(domain.KindFlipFlop, id, outputs)
}

// Conjunction declares a component that emits low once all inputs are high.
func (b *Builder) Conjunction(id string, outputs ...string) *Builder {
	return b.add(domain.KindConjunction, id, outputs)
}

func (b *Builder) add(kind domain.Kind, id string, outputs []string) *Builder {
	def := domain.Definition{ID: domain.ID(id), Kind: kind}
	for _, out := range outputs {
		def.Outputs = append(def.Outputs, domain.ID(out))
	}
	b.defs = append(b.defs, def)
	return b
}

// Build validates the declarations and returns them. Ids carry no kind
// marker; the kind comes from the declaring method.
func (b *Builder) Build() ([]domain.Definition, error) {
	for i, d := range b.defs {
		if err := checkIDs(i+1, d); err != nil {
			return nil, fmt.Errorf("failed to build network: %w", err)
		}
	}
	defs, err := compiler.NewParser().Parse(b.Text())
	if err != nil {
		return nil, fmt.Errorf("failed to build network: %w", err)
	}
	return defs, nil
}

// Text renders the declarations as wiring text without validating them.
func (b *Builder) Text() string {
	return compiler.Format(b.defs)
}

func checkIDs(line int, d domain.Definition) *domain.ParseError {
	fail := func(reason string) *domain.ParseError {
		return &domain.ParseError{Line: line, Text: d.String(), Reason: reason}
	}
	if !compiler.ValidID(string(d.ID)) {
		return fail(fmt.Sprintf("invalid %s name %q", d.Kind, d.ID))
	}
	for _, out := range d.Outputs {
		if !compiler.ValidID(string(out)) {
			return fail(fmt.Sprintf("invalid destination %q", out))
		}
	}
	return nil
}
