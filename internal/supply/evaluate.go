package supply

import (
	"fmt"
	"math"

	"power-wizard/internal/model"

	"github.com/shopspring/decimal"
)

// Evaluate aggregates installed capacity against a town's demand.
//
// It returns a nil report when nothing is installed (total nameplate is zero);
// callers then prompt the player to generate demandKW instead of showing totals.
// Types absent from counts contribute nothing.
func Evaluate(catalog *model.Catalog, demandKW float64, counts map[string]float64) (*Report, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	for id, q := range counts {
		if !catalog.Has(id) {
			return nil, fmt.Errorf("%w: %q", model.ErrUnknownType, id)
		}
		if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
			return nil, fmt.Errorf("%w: %s=%v", model.ErrInvalidQuantity, id, q)
		}
	}

	r := &Report{
		TotalCost: decimal.Zero,
		DemandKW:  demandKW,
	}
	for _, t := range catalog.All() {
		q := counts[t.ID]
		if q == 0 {
			continue
		}
		line := Line{
			TypeID:      t.ID,
			Name:        t.DisplayName(),
			Quantity:    q,
			NameplateKW: q * t.NameplateKW,
			GeneratedKW: q * t.NameplateKW * t.CapacityFactor,
			Cost:        decimal.NewFromFloat(q).Mul(t.UnitPrice),
		}
		r.TotalNameplateKW += line.NameplateKW
		r.TotalGeneratedKW += line.GeneratedKW
		r.TotalCost = r.TotalCost.Add(line.Cost)
		r.Lines = append(r.Lines, line)
	}

	if r.TotalNameplateKW == 0 {
		return nil, nil
	}
	r.DeficitKW = demandKW - r.TotalGeneratedKW
	return r, nil
}
