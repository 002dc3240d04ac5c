package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/pulsenet/internal/presentation/graph"
	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	defs := []domain.Definition{
		{ID: "broadcaster", Kind: domain.KindBroadcaster, Outputs: []domain.ID{"a"}},
		{ID: "a", Kind: domain.KindFlipFlop, Outputs: []domain.ID{"inv", "end"}},
		{ID: "inv", Kind: domain.KindConjunction, Outputs: []domain.ID{"end", "rx"}},
		{ID: "relay", Kind: domain.KindBroadcaster},
	}

	tests := []struct {
		name     string
		overlay  *graph.Overlay
		contains []string
		absent   []string
	}{
		{
			name: "Shapes By Kind",
			contains: []string{
				"graph TD\n",
				`n_broadcaster(("broadcaster"))`,
				`n_a[/"%a"/]`,
				`n_inv{"&inv"}`,
				`n_relay["relay"]`,
				`n_end[["end"]]`,
				`n_rx[["rx"]]`,
			},
			absent: []string{"classDef"},
		},
		{
			name: "Edges In Declared Order",
			contains: []string{
				"    n_a --> n_inv\n    n_a --> n_end\n",
				"    n_inv --> n_end\n    n_inv --> n_rx\n",
			},
		},
		{
			name:    "Overlay",
			overlay: &graph.Overlay{On: []domain.ID{"a", "a"}, Watched: []domain.ID{"inv"}},
			contains: []string{
				"classDef on",
				"classDef watched",
				"class n_a on;",
				"class n_inv watched;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(defs, domain.DefaultEntry, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_SinkDeclaredOnce(t *testing.T) {
	defs := []domain.Definition{
		{ID: "broadcaster", Kind: domain.KindBroadcaster, Outputs: []domain.ID{"out", "out"}},
	}
	got := graph.GenerateMermaid(defs, domain.DefaultEntry, &graph.Overlay{On: []domain.ID{"a"}})
	assert.Equal(t, 1, strings.Count(got, `n_out[["out"]]`))
	assert.Equal(t, 1, strings.Count(got, "class n_a on;"))
}
