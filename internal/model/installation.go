package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// InstallationType is one kind of generation unit the player can build.
// Units:
// - CapacityFactor: fraction 0..1 of nameplate actually produced on average
// - NameplateKW: kW rated output per unit
// - UnitPrice: $ capital cost per unit
type InstallationType struct {
	ID             string
	Name           string
	CapacityFactor float64
	NameplateKW    float64
	UnitPrice      decimal.Decimal
}

func (t InstallationType) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("installation id is required")
	}
	if math.IsNaN(t.CapacityFactor) || t.CapacityFactor < 0 || t.CapacityFactor > 1 {
		return fmt.Errorf("%s: CapacityFactor must be in [0, 1]", t.ID)
	}
	if math.IsNaN(t.NameplateKW) || math.IsInf(t.NameplateKW, 0) || t.NameplateKW <= 0 {
		return fmt.Errorf("%s: NameplateKW must be > 0", t.ID)
	}
	if !t.UnitPrice.IsPositive() {
		return fmt.Errorf("%s: UnitPrice must be > 0", t.ID)
	}
	return nil
}

// EffectiveKW is the average output of one unit (nameplate * capacity factor).
func (t InstallationType) EffectiveKW() float64 {
	return t.NameplateKW * t.CapacityFactor
}

// DisplayName falls back to the id when no name was configured.
func (t InstallationType) DisplayName() string {
	if t.Name == "" {
		return t.ID
	}
	return t.Name
}
