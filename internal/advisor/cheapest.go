package advisor

import (
	"fmt"
	"math"

	"power-wizard/internal/model"
)

// CheapestAdvisor finds the minimum capital cost mix of whole units whose
// average generation covers demand.
//
// It runs an unbounded-knapsack style dynamic program over generation
// discretized at ResolutionKW. Each type's per-unit generation is floored to
// the grid, so a plan never delivers less than the DP believes it does.
type CheapestAdvisor struct {
	Params CheapestParams
}

type CheapestParams struct {
	// ResolutionKW is the generation grid step. Smaller = more exact, slower.
	ResolutionKW float64
	// MaxSteps bounds the DP table size.
	MaxSteps int
}

const (
	defaultResolutionKW = 0.01
	defaultMaxSteps     = 5_000_000
	gridEpsilon         = 1e-6
)

func (a *CheapestAdvisor) Name() string { return "cheapest" }

func (a *CheapestAdvisor) Suggest(catalog *model.Catalog, demandKW float64) (Plan, error) {
	res := a.Params.ResolutionKW
	if res <= 0 {
		res = defaultResolutionKW
	}
	maxSteps := a.Params.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	if math.IsNaN(demandKW) || math.IsInf(demandKW, 0) || demandKW < 0 {
		return Plan{}, fmt.Errorf("demand must be a finite non-negative number, got %v", demandKW)
	}

	target := int(math.Ceil(demandKW/res - gridEpsilon))
	if target <= 0 {
		return Plan{Advisor: a.Name(), Counts: map[string]int{}}, nil
	}
	if target > maxSteps {
		return Plan{}, fmt.Errorf("demand %.0f kW needs %d steps at %.4g kW resolution (max %d)", demandKW, target, res, maxSteps)
	}

	types := catalog.All()
	steps := make([]int, len(types))
	prices := make([]float64, len(types))
	usable := 0
	for i, t := range types {
		steps[i] = int(math.Floor(t.EffectiveKW()/res + gridEpsilon))
		prices[i] = t.UnitPrice.InexactFloat64()
		if steps[i] > 0 {
			usable++
		}
	}
	if usable == 0 {
		return Plan{}, fmt.Errorf("no installation type generates at least %.4g kW per unit", res)
	}

	// cost[g] = cheapest way to generate at least g steps; choice[g] = type index used last.
	cost := make([]float64, target+1)
	choice := make([]int, target+1)
	for g := 1; g <= target; g++ {
		cost[g] = math.Inf(1)
		choice[g] = -1
		for i := range types {
			if steps[i] == 0 {
				continue
			}
			prev := g - steps[i]
			if prev < 0 {
				prev = 0
			}
			if c := cost[prev] + prices[i]; c < cost[g] {
				cost[g] = c
				choice[g] = i
			}
		}
	}

	counts := map[string]int{}
	for g := target; g > 0; {
		i := choice[g]
		counts[types[i].ID]++
		g -= steps[i]
	}
	return evaluatePlan(a.Name(), catalog, demandKW, counts)
}
