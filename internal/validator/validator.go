package validator

import (
	"fmt"
	"slices"

	"github.com/aretw0/pulsenet/pkg/domain"
)

// Report lists structural findings for a network. None of them prevent a
// network from being built; they point at wiring that is likely a mistake.
type Report struct {
	// MissingEntry is set when the entry component is not defined.
	MissingEntry bool
	Entry        domain.ID

	// Unreachable components cannot receive a pulse from the entry.
	Unreachable []domain.ID

	// UnboundSinks are destinations with no definition of their own.
	UnboundSinks []domain.ID

	// InputlessConjunctions have no input wired to them and always emit Low.
	InputlessConjunctions []domain.ID
}

// OK reports whether there are no findings.
func (r Report) OK() bool {
	return len(r.Findings()) == 0
}

// Findings renders the report as one line per problem. Unbound sinks are
// informational and not included.
func (r Report) Findings() []string {
	var out []string
	if r.MissingEntry {
		out = append(out, fmt.Sprintf("entry %q is not defined", r.Entry))
	}
	for _, id := range r.Unreachable {
		out = append(out, fmt.Sprintf("%q is unreachable from %q", id, r.Entry))
	}
	for _, id := range r.InputlessConjunctions {
		out = append(out, fmt.Sprintf("conjunction %q has no inputs", id))
	}
	return out
}

// Validate crawls the wiring breadth-first from entry.
func Validate(defs []domain.Definition, entry domain.ID) Report {
	report := Report{Entry: entry}

	byID := make(map[domain.ID]domain.Definition, len(defs))
	fed := make(map[domain.ID]bool)
	sinks := make(map[domain.ID]bool)
	for _, d := range defs {
		byID[d.ID] = d
	}
	for _, d := range defs {
		for _, out := range d.Outputs {
			fed[out] = true
			if _, ok := byID[out]; !ok {
				sinks[out] = true
			}
		}
	}

	visited := make(map[domain.ID]bool)
	if _, ok := byID[entry]; !ok {
		report.MissingEntry = true
	} else {
		queue := []domain.ID{entry}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			if visited[current] {
				continue
			}
			visited[current] = true

			for _, out := range byID[current].Outputs {
				if _, ok := byID[out]; ok && !visited[out] {
					queue = append(queue, out)
				}
			}
		}
	}

	for _, d := range defs {
		if !visited[d.ID] {
			report.Unreachable = append(report.Unreachable, d.ID)
		}
		if d.Kind == domain.KindConjunction && !fed[d.ID] {
			report.InputlessConjunctions = append(report.InputlessConjunctions, d.ID)
		}
	}
	for id := range sinks {
		report.UnboundSinks = append(report.UnboundSinks, id)
	}
	slices.Sort(report.UnboundSinks)

	return report
}
