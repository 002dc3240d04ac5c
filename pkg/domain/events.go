package domain

import "context"

// EventType defines the category of the event.
type EventType string

const (
	EventPulse          EventType = "pulse"
	EventTriggerSettled EventType = "trigger_settled"
)

// PulseEvent is emitted for every pulse dispatched to a component.
type PulseEvent struct {
	Type  EventType `json:"type"`
	Push  int       `json:"push"`
	Pulse Pulse     `json:"pulse"`
	Bound bool      `json:"bound"` // false when the destination is an unbound sink
}

// TriggerEvent is emitted once a trigger has drained its queue.
type TriggerEvent struct {
	Type   EventType `json:"type"`
	Push   int       `json:"push"`
	Counts Counts    `json:"counts"`
}

// LifecycleHooks defines callbacks for simulation observability.
type LifecycleHooks struct {
	OnPulse          func(context.Context, *PulseEvent)
	OnTriggerSettled func(context.Context, *TriggerEvent)
}
