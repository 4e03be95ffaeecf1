// Package i18n looks up player-facing messages by language.
//
// Only lookup is provided: tables are flat format strings, and any key missing
// from a language falls back to English. Numbers are formatted for the
// matched locale by golang.org/x/text/message.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Key string

const (
	KeyChooseLanguage   Key = "choose_language"
	KeyChooseTown       Key = "choose_town"
	KeyChoosePower      Key = "choose_power"
	KeyNeedGenerate     Key = "need_generate"
	KeyTotalNameplate   Key = "total_nameplate"
	KeyActualGeneration Key = "actual_generation"
	KeyCapitalCost      Key = "capital_cost"
	KeyShortfall        Key = "shortfall"
	KeyCongrats         Key = "congrats"
	KeyInstallationLine Key = "installation_line"
	KeyPowerHelp        Key = "power_help"
	KeyInvalidQuantity  Key = "invalid_quantity"
	KeyUnknownType      Key = "unknown_type"
	KeyUnknownTown      Key = "unknown_town"
	KeySuggestion       Key = "suggestion"
	KeySuggestionLine   Key = "suggestion_line"
)

var english = map[Key]string{
	KeyChooseLanguage:   "Choose a language:",
	KeyChooseTown:       "Choose a town:",
	KeyChoosePower:      "Choose your power plants:",
	KeyNeedGenerate:     "You need to generate %d kW of power.",
	KeyTotalNameplate:   "Total nameplate capacity: %d kW.",
	KeyActualGeneration: "Actual generation: %d kW.",
	KeyCapitalCost:      "Capital cost: $ %d.",
	KeyShortfall:        "You need to produce %d kW. You are short by %d kW.",
	KeyCongrats:         "Congrats, you're producing enough power! Can you do it for cheaper?",
	KeyInstallationLine: "%s: %d kW each, capacity factor %d%%, $ %d",
	KeyPowerHelp:        "Enter <type> <quantity> (e.g. slr 1000), 'suggest [advisor]', 'apply', 'csv', 'town', 'reset' or 'quit'.",
	KeyInvalidQuantity:  "Not a valid quantity: %s",
	KeyUnknownType:      "Unknown installation type: %s",
	KeyUnknownTown:      "No demand figure for town %s",
	KeySuggestion:       "Suggested mix (%s):",
	KeySuggestionLine:   "  %d x %s",
}

var french = map[Key]string{
	KeyChooseLanguage:   "Choisissez une langue :",
	KeyChooseTown:       "Choisissez une ville :",
	KeyChoosePower:      "Choisissez vos centrales :",
	KeyNeedGenerate:     "Vous devez produire %d kW d'électricité.",
	KeyTotalNameplate:   "Capacité nominale totale : %d kW.",
	KeyActualGeneration: "Production réelle : %d kW.",
	KeyCapitalCost:      "Coût en capital : %d $.",
	KeyShortfall:        "Vous devez produire %d kW. Il vous manque %d kW.",
	KeyCongrats:         "Bravo, vous produisez assez d'électricité ! Pouvez-vous le faire à moindre coût ?",
	KeyInvalidQuantity:  "Quantité invalide : %s",
	KeyUnknownType:      "Type d'installation inconnu : %s",
	KeyUnknownTown:      "Aucune demande connue pour la ville %s",
	KeySuggestion:       "Combinaison suggérée (%s) :",
}

// Inuktitut has no translated strings yet; every key falls back to English.
var inuktitut = map[Key]string{}

var (
	supported = []language.Tag{language.English, language.French, language.Make("iu")}
	tables    = []map[Key]string{english, french, inuktitut}
	matcher   = language.NewMatcher(supported)
)

type Translator struct {
	tag     language.Tag
	table   map[Key]string
	printer *message.Printer
}

// New picks the closest supported language for code, English if none matches.
func New(code string) *Translator {
	idx := 0
	if tag, err := language.Parse(code); err == nil {
		if _, i, conf := matcher.Match(tag); conf != language.No {
			idx = i
		}
	}
	return &Translator{
		tag:     supported[idx],
		table:   tables[idx],
		printer: message.NewPrinter(supported[idx]),
	}
}

func (t *Translator) Tag() language.Tag { return t.tag }

// T formats the message for key with locale-aware number formatting.
func (t *Translator) T(key Key, args ...any) string {
	format, ok := t.table[key]
	if !ok {
		format, ok = english[key]
	}
	if !ok {
		return string(key)
	}
	return t.printer.Sprintf(format, args...)
}
