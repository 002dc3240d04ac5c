package validator

import (
	"testing"

	"github.com/aretw0/pulsenet/internal/compiler"
	"github.com/aretw0/pulsenet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) []domain.Definition {
	t.Helper()
	defs, err := compiler.NewParser().Parse(text)
	require.NoError(t, err)
	return defs
}

func TestValidate_Clean(t *testing.T) {
	defs := parse(t, `broadcaster -> a, b, c
%a -> b
%b -> c
%c -> inv
&inv -> a`)

	report := Validate(defs, domain.DefaultEntry)
	assert.True(t, report.OK(), report.Findings())
	assert.Empty(t, report.UnboundSinks)
}

func TestValidate_Findings(t *testing.T) {
	defs := parse(t, `broadcaster -> a
%a -> rx
%island -> a
&lonely -> rx`)

	report := Validate(defs, domain.DefaultEntry)

	assert.False(t, report.MissingEntry)
	assert.Equal(t, []domain.ID{"island", "lonely"}, report.Unreachable)
	assert.Equal(t, []domain.ID{"rx"}, report.UnboundSinks)
	assert.Equal(t, []domain.ID{"lonely"}, report.InputlessConjunctions)
	assert.Len(t, report.Findings(), 3)
	assert.False(t, report.OK())
}

func TestValidate_MissingEntry(t *testing.T) {
	defs := parse(t, "%a -> b\n%b -> a")

	report := Validate(defs, domain.DefaultEntry)

	assert.True(t, report.MissingEntry)
	assert.Equal(t, []domain.ID{"a", "b"}, report.Unreachable)
	assert.Contains(t, report.Findings()[0], `entry "broadcaster" is not defined`)
}

func TestValidate_CustomEntry(t *testing.T) {
	defs := parse(t, "start -> a\n%a -> start")

	report := Validate(defs, "start")
	assert.True(t, report.OK(), report.Findings())
}
