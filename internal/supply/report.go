package supply

import (
	"math"

	"github.com/shopspring/decimal"
)

// Status is a human-friendly verdict for a report.
// Keep these values stable; they are intended for CSV and JSON output.
type Status string

const (
	StatusShortfall Status = "SHORTFALL"
	StatusMet       Status = "MET"
)

// Line is the contribution of one installation type.
type Line struct {
	TypeID   string
	Name     string
	Quantity float64

	NameplateKW float64
	GeneratedKW float64
	Cost        decimal.Decimal
}

// Report is derived from the wizard state on demand and never stored.
type Report struct {
	// Lines follow catalog order and only include types with a non-zero quantity.
	Lines []Line

	TotalNameplateKW float64
	TotalGeneratedKW float64
	TotalCost        decimal.Decimal

	DemandKW float64
	// DeficitKW is DemandKW - TotalGeneratedKW; <= 0 means demand is met.
	DeficitKW float64
}

func (r *Report) Met() bool {
	return r.DeficitKW <= 0
}

func (r *Report) Status() Status {
	if r.Met() {
		return StatusMet
	}
	return StatusShortfall
}

// ShortfallKW is the positive part of the deficit.
func (r *Report) ShortfallKW() float64 {
	return math.Max(0, r.DeficitKW)
}

// SurplusKW is the generation above demand, 0 when short.
func (r *Report) SurplusKW() float64 {
	return math.Max(0, -r.DeficitKW)
}

// Rounded holds the whole-unit figures shown to players.
type Rounded struct {
	NameplateKW int64
	GeneratedKW int64
	Cost        int64
	DemandKW    int64
	ShortfallKW int64
}

// Rounded rounds the report for display; accumulation stays unrounded.
func (r *Report) Rounded() Rounded {
	return Rounded{
		NameplateKW: int64(math.Round(r.TotalNameplateKW)),
		GeneratedKW: int64(math.Round(r.TotalGeneratedKW)),
		Cost:        r.TotalCost.Round(0).IntPart(),
		DemandKW:    int64(math.Round(r.DemandKW)),
		ShortfallKW: int64(math.Round(r.ShortfallKW())),
	}
}
