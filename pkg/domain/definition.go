package domain

import "strings"

// Kind selects the behavior of a component.
type Kind uint8

const (
	KindBroadcaster Kind = iota
	KindFlipFlop
	KindConjunction
)

// Markers prefixed to an id in the wiring text.
const (
	MarkerFlipFlop    = '%'
	MarkerConjunction = '&'
)

// DefaultEntry is the component that receives the trigger pulse.
const DefaultEntry ID = "broadcaster"

// ButtonID is the synthetic source of the trigger pulse.
const ButtonID ID = "button"

func (k Kind) String() string {
	switch k {
	case KindBroadcaster:
		return "broadcaster"
	case KindFlipFlop:
		return "flip-flop"
	case KindConjunction:
		return "conjunction"
	}
	return "unknown"
}

// Marker returns the wiring-text prefix for the kind, or "" for broadcasters.
func (k Kind) Marker() string {
	switch k {
	case KindFlipFlop:
		return string(MarkerFlipFlop)
	case KindConjunction:
		return string(MarkerConjunction)
	}
	return ""
}

// Definition is one wiring line: a component, its kind and its outputs in
// declared order.
type Definition struct {
	ID      ID   `json:"id" yaml:"id"`
	Kind    Kind `json:"kind" yaml:"kind"`
	Outputs []ID `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// String formats the definition back into wiring text.
func (d Definition) String() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.Marker())
	sb.WriteString(string(d.ID))
	if len(d.Outputs) == 0 {
		return sb.String()
	}
	sb.WriteString(" -> ")
	for i, o := range d.Outputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(o))
	}
	return sb.String()
}
