package analysis

import (
	"sort"

	"power-wizard/internal/model"
)

type Ranked struct {
	Rank int
	Economics
}

// RankByCostPerKW sorts catalog types by cost per effective kW, cheapest first.
// Types that produce nothing sort last; ties keep catalog order.
func RankByCostPerKW(catalog *model.Catalog, demandKW float64) []Ranked {
	types := catalog.All()
	out := make([]Ranked, 0, len(types))
	for _, t := range types {
		out = append(out, Ranked{Economics: ComputeEconomics(t, demandKW)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.EffectiveKWPerUnit > 0) != (b.EffectiveKWPerUnit > 0) {
			return a.EffectiveKWPerUnit > 0
		}
		return a.CostPerEffectiveKW < b.CostPerEffectiveKW
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
