package advisor

import (
	"fmt"

	"power-wizard/internal/model"
	"power-wizard/internal/supply"
)

// Plan is a suggested whole-unit installation mix.
type Plan struct {
	Advisor string
	Counts  map[string]int
	// Report is the evaluated plan; nil only when no unit was needed.
	Report *supply.Report
}

// Quantities converts the plan into wizard counts.
func (p Plan) Quantities() map[string]float64 {
	out := make(map[string]float64, len(p.Counts))
	for id, n := range p.Counts {
		out[id] = float64(n)
	}
	return out
}

type Advisor interface {
	Name() string
	Suggest(catalog *model.Catalog, demandKW float64) (Plan, error)
}

// Info describes an advisor for menus and the API.
type Info struct {
	Name        string
	Description string
}

// Available lists the advisors New can build.
func Available() []Info {
	return []Info{
		{Name: "cheapest", Description: "Lowest capital cost mix of whole units that meets demand."},
		{Name: "single", Description: "Cheapest way to meet demand with one installation type."},
	}
}

// New builds an advisor by name. Params come from the scenario file.
func New(name string, params map[string]any) (Advisor, error) {
	switch name {
	case "", "cheapest":
		return &CheapestAdvisor{Params: CheapestParams{
			ResolutionKW: mustNum(params, "resolution_kw", 0),
			MaxSteps:     int(mustNum(params, "max_steps", 0)),
		}}, nil
	case "single":
		return &SingleTypeAdvisor{}, nil
	default:
		return nil, fmt.Errorf("unsupported advisor: %q", name)
	}
}

func evaluatePlan(name string, catalog *model.Catalog, demandKW float64, counts map[string]int) (Plan, error) {
	p := Plan{Advisor: name, Counts: counts}
	r, err := supply.Evaluate(catalog, demandKW, p.Quantities())
	if err != nil {
		return Plan{}, err
	}
	p.Report = r
	return p, nil
}

func mustNum(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}
