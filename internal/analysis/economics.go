package analysis

import (
	"math"

	"power-wizard/internal/model"

	"github.com/shopspring/decimal"
)

// Economics is a per-type summary used for ranking and for the catalog view.
// It does not depend on what the player has installed.
type Economics struct {
	TypeID string
	Name   string

	EffectiveKWPerUnit float64

	// CostPerEffectiveKW is unit price / (nameplate * capacity factor).
	// Zero when the type produces nothing on average.
	CostPerEffectiveKW float64
	CostPerNameplateKW float64

	// UnitsToMeetDemand is how many units alone would cover DemandKW (0 if impossible).
	DemandKW          float64
	UnitsToMeetDemand int
	CostToMeetDemand  decimal.Decimal
}

func ComputeEconomics(t model.InstallationType, demandKW float64) Economics {
	e := Economics{
		TypeID:             t.ID,
		Name:               t.DisplayName(),
		EffectiveKWPerUnit: t.EffectiveKW(),
		DemandKW:           demandKW,
		CostToMeetDemand:   decimal.Zero,
	}
	price := t.UnitPrice.InexactFloat64()
	if t.NameplateKW > 0 {
		e.CostPerNameplateKW = price / t.NameplateKW
	}
	if e.EffectiveKWPerUnit > 0 {
		e.CostPerEffectiveKW = price / e.EffectiveKWPerUnit
		if demandKW > 0 {
			e.UnitsToMeetDemand = int(math.Ceil(demandKW/e.EffectiveKWPerUnit - 1e-6))
			e.CostToMeetDemand = t.UnitPrice.Mul(decimal.NewFromInt(int64(e.UnitsToMeetDemand)))
		}
	}
	return e
}
