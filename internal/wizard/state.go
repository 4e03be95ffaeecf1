package wizard

import (
	"errors"
	"fmt"
	"strings"

	"power-wizard/internal/model"
)

// Step is the page the wizard is showing.
// Keep these values stable; they are exposed through the API.
type Step string

const (
	StepChooseLanguage Step = "chooseLang"
	StepChooseLocation Step = "chooseLoc"
	StepChoosePower    Step = "choosePower"
)

// Language is a UI language code. Any string is accepted by the wizard;
// message lookup falls back to English for codes it does not know.
type Language string

const (
	LangEnglish   Language = "en"
	LangFrench    Language = "fr"
	LangInuktitut Language = "iu"
)

// Languages lists the offered languages in menu order.
var Languages = []Language{LangEnglish, LangFrench, LangInuktitut}

func (l Language) Supported() bool {
	for _, s := range Languages {
		if l == s {
			return true
		}
	}
	return false
}

// ErrEmptyTown is returned when a town selection carries no identifier.
var ErrEmptyTown = errors.New("town id is required")

// State is one complete snapshot of the wizard.
// Transitions never modify a State in place; they return a new one.
type State struct {
	Step     Step
	Language Language
	Town     string
	Counts   map[string]float64
}

// Initial is the state a new session starts in.
func Initial() State {
	return State{
		Step:     StepChooseLanguage,
		Language: LangEnglish,
		Town:     model.DefaultTownID,
		Counts:   map[string]float64{},
	}
}

// Clone deep-copies the counts map.
func (s State) Clone() State {
	out := s
	out.Counts = make(map[string]float64, len(s.Counts))
	for k, v := range s.Counts {
		out.Counts[k] = v
	}
	return out
}

// HasInstallations reports whether any quantity is non-zero.
func (s State) HasInstallations() bool {
	for _, q := range s.Counts {
		if q != 0 {
			return true
		}
	}
	return false
}

// SelectLanguage is valid from any step and always moves to ChooseLocation.
func SelectLanguage(s State, lang Language) State {
	next := s.Clone()
	next.Language = lang
	next.Step = StepChooseLocation
	return next
}

// SelectTown sets the town and moves to ChoosePower. Unknown towns are accepted;
// only demand lookup can fail for them.
func SelectTown(s State, town string) (State, error) {
	town = strings.TrimSpace(town)
	if town == "" {
		return s, ErrEmptyTown
	}
	next := s.Clone()
	next.Town = town
	next.Step = StepChoosePower
	return next, nil
}

// SetInstallationCount records quantity for typeID and keeps the wizard on ChoosePower.
func SetInstallationCount(s State, catalog *model.Catalog, typeID string, quantity float64) (State, error) {
	if !catalog.Has(typeID) {
		return s, fmt.Errorf("%w: %q", model.ErrUnknownType, typeID)
	}
	next := s.Clone()
	next.Counts[typeID] = quantity
	next.Step = StepChoosePower
	return next, nil
}

// ClearCounts drops every installation quantity.
func ClearCounts(s State) State {
	next := s.Clone()
	next.Counts = map[string]float64{}
	return next
}
