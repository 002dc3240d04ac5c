package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounts(t *testing.T) {
	var c domain.Counts
	c.Inc(domain.Low)
	c.Inc(domain.High)
	c.Inc(domain.High)

	assert.Equal(t, domain.Counts{Low: 1, High: 2}, c)
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 2, c.Product())
	assert.Equal(t, domain.Counts{Low: 2, High: 4}, c.Add(c))
}

func TestLevel_Text(t *testing.T) {
	data, err := json.Marshal(map[domain.ID]domain.Level{"a": domain.High})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"high"}`, string(data))

	var l domain.Level
	assert.Error(t, l.UnmarshalText([]byte("medium")))
}

func TestDefinition_String(t *testing.T) {
	tests := []struct {
		def  domain.Definition
		want string
	}{
		{domain.Definition{ID: "broadcaster", Kind: domain.KindBroadcaster, Outputs: []domain.ID{"a", "b"}}, "broadcaster -> a, b"},
		{domain.Definition{ID: "a", Kind: domain.KindFlipFlop, Outputs: []domain.ID{"b"}}, "%a -> b"},
		{domain.Definition{ID: "inv", Kind: domain.KindConjunction, Outputs: []domain.ID{"a"}}, "&inv -> a"},
		{domain.Definition{ID: "dead", Kind: domain.KindFlipFlop}, "%dead"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.def.String())
	}
}
