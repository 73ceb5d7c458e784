package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestor/pkg/domain"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatCurrency(1234.56))
	assert.Equal(t, "R$ 0,00", FormatCurrency(0))
	assert.Equal(t, "R$ 999,90", FormatCurrency(999.9))
	assert.Equal(t, "R$ 1.000.000,00", FormatCurrency(1000000))
	assert.Equal(t, "R$ -1.234,56", FormatCurrency(-1234.56))
}

func TestCleanCurrency(t *testing.T) {
	got, err := CleanCurrency("R$ 1.234,56")
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, got, 1e-9)

	got, err = CleanCurrency("R$ 50,00")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got, 1e-9)

	got, err = CleanCurrency("1234.56")
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, got, 1e-9)

	_, err = CleanCurrency("R$ abc")
	assert.Error(t, err)
}

func TestCurrencyRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.5, 12, 1234.56, 987654.32} {
		got, err := CleanCurrency(FormatCurrency(v))
		require.NoError(t, err)
		assert.InDelta(t, v, got, 1e-9)
	}
}

func TestPriorityClass(t *testing.T) {
	assert.Equal(t, "priority-high", PriorityClass("Alta"))
	assert.Equal(t, "priority-medium", PriorityClass("Média"))
	assert.Equal(t, "priority-low", PriorityClass("Baixa"))
	assert.Equal(t, "priority-high", PriorityClass("alta"))
	assert.Equal(t, "priority-low", PriorityClass(""))
	assert.Equal(t, "priority-low", PriorityClass("whatever"))
	assert.Equal(t, "priority-strip-high", PriorityStripClass("Alta"))
	assert.Equal(t, "priority-strip-low", PriorityStripClass(""))
}

func TestSchemaCoversEveryModule(t *testing.T) {
	team := domain.DefaultTeamMembers()
	for _, m := range domain.Modules() {
		fields := Schema(m, team)
		require.NotEmpty(t, fields, "module %s", m)
		require.NotEmpty(t, IDField(m), "module %s", m)
		for _, f := range fields {
			assert.NotEmpty(t, f.Name, "module %s", m)
			assert.NotEmpty(t, f.Label, "module %s", m)
			if f.Kind == KindSelect {
				assert.NotEmpty(t, f.Options, "module %s field %s", m, f.Name)
			}
		}
	}
	assert.Nil(t, Schema(domain.Module("bogus"), team))
}

func TestLabelWireMappingIsBijective(t *testing.T) {
	team := domain.DefaultTeamMembers()
	for _, m := range domain.Modules() {
		fields := Schema(m, team)
		for _, f := range fields {
			assert.Equal(t, f.Label, LabelFor(fields, f.Name))
			assert.Equal(t, f.Name, WireFor(fields, f.Label))
		}
	}
}

func TestStateMachineTransitions(t *testing.T) {
	s := NewState()
	assert.Equal(t, domain.ModuleTasks, s.ActiveModule)
	assert.Equal(t, ModeListing, s.Mode)

	s.StartCreate()
	assert.Equal(t, ModeCreating, s.Mode)
	assert.False(t, s.Editing())
	s.Finish()
	assert.Equal(t, ModeListing, s.Mode)

	s.StartEdit("abc")
	assert.Equal(t, ModeEditing, s.Mode)
	assert.True(t, s.Editing())
	assert.Equal(t, "abc", s.EditingID)
	s.Cancel()
	assert.Equal(t, ModeListing, s.Mode)
	assert.Empty(t, s.EditingID)

	s.StartEdit("def")
	s.SwitchModule(domain.ModuleSales)
	assert.Equal(t, domain.ModuleSales, s.ActiveModule)
	assert.Equal(t, ModeListing, s.Mode)
	assert.Empty(t, s.EditingID)
}
