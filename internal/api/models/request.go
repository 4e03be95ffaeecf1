package models

import (
	"bytes"
	"encoding/json"
)

// LanguageRequest is the body of POST /api/v1/wizard/language.
// Any code is accepted; unknown or empty codes render in English.
type LanguageRequest struct {
	Language string `json:"language"`
}

// TownRequest is the body of POST /api/v1/wizard/town
type TownRequest struct {
	Town string `json:"town" binding:"required"`
}

// QuantityRequest is the body of PUT /api/v1/wizard/installations/:type.
// Quantity is the raw form field: a JSON string or number, parsed server-side.
type QuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// RawQuantity returns the quantity as the text the player typed.
func (r QuantityRequest) RawQuantity() string {
	raw := bytes.TrimSpace(r.Quantity)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// SuggestRequest is the body of POST /api/v1/wizard/suggest
type SuggestRequest struct {
	Advisor string `json:"advisor,omitempty"` // default: configured advisor
	Apply   bool   `json:"apply,omitempty"`   // replace current counts with the plan
}

// RankRequest holds the query of GET /api/v1/rank
type RankRequest struct {
	Town  string `form:"town,omitempty"`  // default: current session town
	Limit int    `form:"limit,omitempty"` // default: all
}
