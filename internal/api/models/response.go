package models

// WizardResponse is the full view of the session used by the UI to render a page.
type WizardResponse struct {
	SessionID string        `json:"session_id"`
	State     StateView     `json:"state"`
	DemandKW  *float64      `json:"demand_kw,omitempty"`
	Report    *ReportView   `json:"report,omitempty"`
	Messages  []string      `json:"messages"`
	Warnings  []ErrorDetail `json:"warnings,omitempty"`
}

// StateView mirrors wizard.State
type StateView struct {
	Step     string             `json:"step"`
	Language string             `json:"language"`
	Town     string             `json:"town"`
	Counts   map[string]float64 `json:"counts"`
}

// ReportView mirrors supply.Report
type ReportView struct {
	Status           string     `json:"status"` // "SHORTFALL" or "MET"
	TotalNameplateKW float64    `json:"total_nameplate_kw"`
	TotalGeneratedKW float64    `json:"total_generated_kw"`
	TotalCost        float64    `json:"total_cost"`
	DemandKW         float64    `json:"demand_kw"`
	DeficitKW        float64    `json:"deficit_kw"`
	Lines            []LineView `json:"lines"`
}

// LineView is one installation type's contribution
type LineView struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	NameplateKW float64 `json:"nameplate_kw"`
	GeneratedKW float64 `json:"generated_kw"`
	Cost        float64 `json:"cost"`
}

// InstallationInfo represents one catalog entry
type InstallationInfo struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	CapacityFactor     float64 `json:"capacity_factor"`
	NameplateKW        float64 `json:"nameplate_kw"`
	UnitPrice          float64 `json:"unit_price"`
	CostPerEffectiveKW float64 `json:"cost_per_effective_kw"`
	Description        string  `json:"description"`
}

// TownInfo represents a selectable town
type TownInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	DemandKW float64 `json:"demand_kw"`
}

// AdvisorInfo describes an advisor
type AdvisorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SuggestResponse is the response of POST /api/v1/wizard/suggest
type SuggestResponse struct {
	Advisor  string         `json:"advisor"`
	Counts   map[string]int `json:"counts"`
	Report   *ReportView    `json:"report,omitempty"`
	Applied  bool           `json:"applied"`
	Messages []string       `json:"messages"`
}

// RankResponse represents the response from ranking installation types
type RankResponse struct {
	Town     string    `json:"town"`
	DemandKW float64   `json:"demand_kw"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked installation type
type Ranking struct {
	Rank               int     `json:"rank"`
	Type               string  `json:"type"`
	Name               string  `json:"name"`
	EffectiveKWPerUnit float64 `json:"effective_kw_per_unit"`
	CostPerEffectiveKW float64 `json:"cost_per_effective_kw"`
	CostPerNameplateKW float64 `json:"cost_per_nameplate_kw"`
	UnitsToMeetDemand  int     `json:"units_to_meet_demand"`
	CostToMeetDemand   float64 `json:"cost_to_meet_demand"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
