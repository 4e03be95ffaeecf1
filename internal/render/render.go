package render

import (
	"fmt"
	"math"
	"strings"

	"power-wizard/internal/advisor"
	"power-wizard/internal/i18n"
	"power-wizard/internal/model"
	"power-wizard/internal/supply"
	"power-wizard/internal/wizard"
)

// languageLabels are shown in their own language.
var languageLabels = map[wizard.Language]string{
	wizard.LangEnglish:   "English",
	wizard.LangFrench:    "Francais",
	wizard.LangInuktitut: "Inuktitut",
}

func LanguageMenu(tr *i18n.Translator) []string {
	lines := []string{tr.T(i18n.KeyChooseLanguage)}
	for i, l := range wizard.Languages {
		lines = append(lines, fmt.Sprintf("  %d) %s [%s]", i+1, languageLabels[l], l))
	}
	return lines
}

func TownMenu(tr *i18n.Translator, towns *model.Towns) []string {
	lines := []string{tr.T(i18n.KeyChooseTown)}
	for i, t := range towns.All() {
		lines = append(lines, fmt.Sprintf("  %d) %s [%s]", i+1, t.Name, t.ID))
	}
	return lines
}

// InstallationLine describes one catalog entry next to its input field.
func InstallationLine(tr *i18n.Translator, t model.InstallationType) string {
	return tr.T(i18n.KeyInstallationLine,
		t.DisplayName(),
		int64(math.Round(t.NameplateKW)),
		int64(math.Round(t.CapacityFactor*100)),
		t.UnitPrice.Round(0).IntPart(),
	)
}

func InstallationMenu(tr *i18n.Translator, c *model.Catalog) []string {
	lines := []string{tr.T(i18n.KeyChoosePower)}
	for _, t := range c.All() {
		lines = append(lines, fmt.Sprintf("  [%s] %s", t.ID, InstallationLine(tr, t)))
	}
	return lines
}

// Prompt is shown instead of totals while nothing is installed.
func Prompt(tr *i18n.Translator, demandKW float64) string {
	return tr.T(i18n.KeyNeedGenerate, int64(math.Round(demandKW)))
}

// Report renders totals and the verdict. A nil report renders the prompt.
func Report(tr *i18n.Translator, r *supply.Report, demandKW float64) []string {
	if r == nil {
		return []string{Prompt(tr, demandKW)}
	}
	rr := r.Rounded()
	lines := []string{
		tr.T(i18n.KeyTotalNameplate, rr.NameplateKW),
		tr.T(i18n.KeyActualGeneration, rr.GeneratedKW),
		tr.T(i18n.KeyCapitalCost, rr.Cost),
		"",
	}
	if r.Met() {
		lines = append(lines, tr.T(i18n.KeyCongrats))
	} else {
		lines = append(lines, tr.T(i18n.KeyShortfall, rr.DemandKW, rr.ShortfallKW))
	}
	return lines
}

func Suggestion(tr *i18n.Translator, c *model.Catalog, p advisor.Plan) []string {
	lines := []string{tr.T(i18n.KeySuggestion, p.Advisor)}
	for _, t := range c.All() {
		if n := p.Counts[t.ID]; n > 0 {
			lines = append(lines, tr.T(i18n.KeySuggestionLine, n, t.DisplayName()))
		}
	}
	return lines
}

func Join(lines []string) string {
	return strings.Join(lines, "\n")
}
