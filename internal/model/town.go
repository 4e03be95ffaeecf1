package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultDemandKW is the demand every built-in town carries.
// Per-town values can be set through the scenario file.
const DefaultDemandKW = 8000.0

// DefaultTownID is the town a fresh wizard starts with.
const DefaultTownID = "iqaluit"

// Town is a selectable location and the power it needs, in kW.
type Town struct {
	ID       string
	Name     string
	DemandKW float64
}

func (t Town) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("town id is required")
	}
	if math.IsNaN(t.DemandKW) || math.IsInf(t.DemandKW, 0) || t.DemandKW <= 0 {
		return fmt.Errorf("%s: DemandKW must be > 0", t.ID)
	}
	return nil
}

// Towns maps town ids to demand, keeping insertion order for menus.
//
// When FallbackDemandKW is > 0, Demand answers it for unknown towns instead of
// returning ErrUnknownTown.
type Towns struct {
	towns            []Town
	index            map[string]int
	FallbackDemandKW float64
}

func NewTowns(towns []Town) (*Towns, error) {
	t := &Towns{
		towns: make([]Town, 0, len(towns)),
		index: make(map[string]int, len(towns)),
	}
	for _, town := range towns {
		if err := town.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.index[town.ID]; dup {
			return nil, fmt.Errorf("duplicate town id %q", town.ID)
		}
		t.index[town.ID] = len(t.towns)
		t.towns = append(t.towns, town)
	}
	return t, nil
}

func DefaultTowns() *Towns {
	t, err := NewTowns([]Town{
		{ID: "iqaluit", Name: "Iqaluit", DemandKW: DefaultDemandKW},
		{ID: "rankininlet", Name: "Rankin Inlet", DemandKW: DefaultDemandKW},
	})
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Towns) Lookup(id string) (Town, error) {
	i, ok := t.index[id]
	if !ok {
		return Town{}, fmt.Errorf("%w: %q", ErrUnknownTown, id)
	}
	return t.towns[i], nil
}

// Demand returns the power demand of town id in kW.
func (t *Towns) Demand(id string) (float64, error) {
	town, err := t.Lookup(id)
	if err == nil {
		return town.DemandKW, nil
	}
	if t.FallbackDemandKW > 0 {
		return t.FallbackDemandKW, nil
	}
	return 0, err
}

func (t *Towns) All() []Town {
	out := make([]Town, len(t.towns))
	copy(out, t.towns)
	return out
}
