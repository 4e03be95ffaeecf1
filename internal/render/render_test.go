package render

import (
	"testing"

	"power-wizard/internal/advisor"
	"power-wizard/internal/i18n"
	"power-wizard/internal/model"
	"power-wizard/internal/supply"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, counts map[string]float64) *supply.Report {
	t.Helper()
	r, err := supply.Evaluate(model.DefaultCatalog(), model.DefaultDemandKW, counts)
	require.NoError(t, err)
	return r
}

func TestMenus(t *testing.T) {
	tr := i18n.New("en")
	assert.Equal(t, []string{
		"Choose a language:",
		"  1) English [en]",
		"  2) Francais [fr]",
		"  3) Inuktitut [iu]",
	}, LanguageMenu(tr))

	assert.Equal(t, []string{
		"Choose a town:",
		"  1) Iqaluit [iqaluit]",
		"  2) Rankin Inlet [rankininlet]",
	}, TownMenu(tr, model.DefaultTowns()))
}

func TestInstallationMenu(t *testing.T) {
	lines := InstallationMenu(i18n.New("en"), model.DefaultCatalog())
	require.Len(t, lines, 5)
	assert.Equal(t, "  [slr] solar panel: 1 kW each, capacity factor 15%, $ 400", lines[1])
	assert.Equal(t, "  [lgw] large wind tower: 2,300 kW each, capacity factor 29%, $ 2,000,000", lines[3])
	assert.Equal(t, "  [die] diesel generator: 100 kW each, capacity factor 80%, $ 70,000", lines[4])
}

func TestReportPromptWhenNothingInstalled(t *testing.T) {
	lines := Report(i18n.New("en"), nil, model.DefaultDemandKW)
	assert.Equal(t, []string{"You need to generate 8,000 kW of power."}, lines)
}

func TestReportShortfall(t *testing.T) {
	lines := Report(i18n.New("en"), evaluate(t, map[string]float64{"slr": 1000}), model.DefaultDemandKW)
	assert.Equal(t, []string{
		"Total nameplate capacity: 1,000 kW.",
		"Actual generation: 150 kW.",
		"Capital cost: $ 400,000.",
		"",
		"You need to produce 8,000 kW. You are short by 7,850 kW.",
	}, lines)
}

func TestReportMet(t *testing.T) {
	lines := Report(i18n.New("en"), evaluate(t, map[string]float64{"lgw": 12}), model.DefaultDemandKW)
	require.Len(t, lines, 5)
	assert.Equal(t, "Total nameplate capacity: 27,600 kW.", lines[0])
	assert.Equal(t, "Actual generation: 8,004 kW.", lines[1])
	assert.Equal(t, "Capital cost: $ 24,000,000.", lines[2])
	assert.Equal(t, "Congrats, you're producing enough power! Can you do it for cheaper?", lines[4])
}

func TestSuggestion(t *testing.T) {
	plan := advisor.Plan{Advisor: "cheapest", Counts: map[string]int{"die": 100, "slr": 2}}
	assert.Equal(t, []string{
		"Suggested mix (cheapest):",
		"  2 x solar panel",
		"  100 x diesel generator",
	}, Suggestion(i18n.New("en"), model.DefaultCatalog(), plan))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a\n\nb", Join([]string{"a", "", "b"}))
}
