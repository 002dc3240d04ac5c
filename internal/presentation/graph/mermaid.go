package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/pulsenet/pkg/domain"
)

// Overlay contains runtime state to visualize on the graph.
type Overlay struct {
	// On lists flip-flops currently in the on state.
	On []domain.ID
	// Watched lists components being analyzed for a period.
	Watched []domain.ID
}

// GenerateMermaid produces a Mermaid flowchart from component definitions.
// Shapes follow the component kind:
//   - entry: ((circle))
//   - flip-flop: [/parallelogram/]
//   - conjunction: {rhombus}
//   - broadcaster: [rectangle]
//   - unbound sink: [[subroutine]]
func GenerateMermaid(defs []domain.Definition, entry domain.ID, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	defined := make(map[domain.ID]bool, len(defs))
	for _, d := range defs {
		defined[d.ID] = true
	}

	var sinks []domain.ID
	for _, d := range defs {
		opener, closer := "[", "]"
		switch {
		case d.ID == entry:
			opener, closer = "((", "))"
		case d.Kind == domain.KindFlipFlop:
			opener, closer = "[/", "/]"
		case d.Kind == domain.KindConjunction:
			opener, closer = "{", "}"
		}

		fmt.Fprintf(&sb, "    %s%s\"%s%s\"%s\n", nodeID(d.ID), opener, d.Kind.Marker(), d.ID, closer)

		for _, out := range d.Outputs {
			fmt.Fprintf(&sb, "    %s --> %s\n", nodeID(d.ID), nodeID(out))
			if !defined[out] && !slices.Contains(sinks, out) {
				sinks = append(sinks, out)
			}
		}
	}

	slices.Sort(sinks)
	for _, id := range sinks {
		fmt.Fprintf(&sb, "    %s[[\"%s\"]]\n", nodeID(id), id)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef on fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef watched fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		writeClass(&sb, "on", overlay.On)
		writeClass(&sb, "watched", overlay.Watched)
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, class string, ids []domain.ID) {
	seen := make(map[domain.ID]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(sb, "    class %s %s;\n", nodeID(id), class)
	}
}

// Prefixed so ids such as "end" do not collide with Mermaid keywords.
func nodeID(id domain.ID) string {
	return "n_" + string(id)
}
