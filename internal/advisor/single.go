package advisor

import (
	"errors"
	"math"

	"power-wizard/internal/model"

	"github.com/shopspring/decimal"
)

// SingleTypeAdvisor meets demand with as many units of one type as needed,
// picking the type with the lowest total cost (catalog order breaks ties).
type SingleTypeAdvisor struct{}

func (a *SingleTypeAdvisor) Name() string { return "single" }

func (a *SingleTypeAdvisor) Suggest(catalog *model.Catalog, demandKW float64) (Plan, error) {
	if demandKW <= 0 {
		return Plan{Advisor: a.Name(), Counts: map[string]int{}}, nil
	}

	var (
		bestID   string
		bestN    int
		bestCost decimal.Decimal
	)
	for _, t := range catalog.All() {
		eff := t.EffectiveKW()
		if eff <= 0 {
			continue
		}
		n := int(math.Ceil(demandKW/eff - gridEpsilon))
		cost := t.UnitPrice.Mul(decimal.NewFromInt(int64(n)))
		if bestID == "" || cost.LessThan(bestCost) {
			bestID, bestN, bestCost = t.ID, n, cost
		}
	}
	if bestID == "" {
		return Plan{}, errors.New("no installation type produces any power")
	}
	return evaluatePlan(a.Name(), catalog, demandKW, map[string]int{bestID: bestN})
}
