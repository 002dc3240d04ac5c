package domain

import "fmt"

// ID identifies a component within a network.
type ID string

// Level is the value carried by a pulse.
type Level uint8

const (
	Low Level = iota
	High
)

// String returns "low" or "high".
func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// MarshalText encodes the level as "low" or "high".
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes "low" or "high".
func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*l = Low
	case "high":
		*l = High
	default:
		return fmt.Errorf("invalid level %q", text)
	}
	return nil
}

// Pulse is a single signal travelling from Source to Destination.
type Pulse struct {
	Source      ID    `json:"source"`
	Destination ID    `json:"destination"`
	Level       Level `json:"level"`
}

// String renders the pulse the way it reads in traces: "a -high-> b".
func (p Pulse) String() string {
	return fmt.Sprintf("%s -%s-> %s", p.Source, p.Level, p.Destination)
}

// Counts tallies pulses by level.
type Counts struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Inc increments the counter matching l.
func (c *Counts) Inc(l Level) {
	if l == High {
		c.High++
	} else {
		c.Low++
	}
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{Low: c.Low + o.Low, High: c.High + o.High}
}

// Total is the number of pulses counted.
func (c Counts) Total() int { return c.Low + c.High }

// Product is Low * High.
func (c Counts) Product() int { return c.Low * c.High }
