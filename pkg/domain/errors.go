package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedLine is returned when a wiring line does not match the grammar.
var ErrMalformedLine = errors.New("malformed wiring line")

// ErrDuplicateComponent is returned when a component is defined more than once.
var ErrDuplicateComponent = errors.New("duplicate component")

// ErrUnknownComponent is returned when an id is not defined in the network.
var ErrUnknownComponent = errors.New("unknown component")

// ErrDidNotSettle is returned when a trigger exceeds its pulse budget.
var ErrDidNotSettle = errors.New("propagation did not settle")

// ErrPeriodNotFound is returned when a watched component never emits High
// within the trigger budget.
var ErrPeriodNotFound = errors.New("no high emission within trigger budget")

// ErrNoGate is returned when a sink is not fed by exactly one conjunction.
var ErrNoGate = errors.New("sink is not gated by a single conjunction")

// ErrSnapshotNotFound is returned when a snapshot key cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ParseError reports a malformed wiring line.
type ParseError struct {
	Line   int // 1-based
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Reason)
}

// Unwrap exposes ErrMalformedLine and, when set, the more specific cause.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedLine, e.Err}
	}
	return []error{ErrMalformedLine}
}

// SettleError reports a trigger that was aborted after dispatching too many pulses.
type SettleError struct {
	Push   int // 1-based index of the trigger since construction or restore
	Pulses int
}

func (e *SettleError) Error() string {
	return fmt.Sprintf("push %d: %d pulses dispatched: %v", e.Push, e.Pulses, ErrDidNotSettle)
}

func (e *SettleError) Unwrap() error { return ErrDidNotSettle }
