package handlers

import (
	"net/http"
	"strings"

	"power-wizard/internal/analysis"
	"power-wizard/internal/api/models"

	"github.com/gin-gonic/gin"
)

// Rank handles GET /api/v1/rank
// Without ?town= the session's current town is used.
func (h *WizardHandler) Rank(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	h.mu.Lock()
	catalog := h.session.Catalog()
	towns := h.session.Towns()
	town := strings.TrimSpace(req.Town)
	if town == "" {
		town = h.session.State().Town
	}
	h.mu.Unlock()

	demand, err := towns.Demand(town)
	if err != nil {
		writeError(c, err)
		return
	}

	ranked := analysis.RankByCostPerKW(catalog, demand)

	// Apply limit
	limit := req.Limit
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	// Convert to response format
	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:               r.Rank,
			Type:               r.TypeID,
			Name:               r.Name,
			EffectiveKWPerUnit: r.EffectiveKWPerUnit,
			CostPerEffectiveKW: r.CostPerEffectiveKW,
			CostPerNameplateKW: r.CostPerNameplateKW,
			UnitsToMeetDemand:  r.UnitsToMeetDemand,
			CostToMeetDemand:   r.CostToMeetDemand.InexactFloat64(),
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{
		Town:     town,
		DemandKW: demand,
		Rankings: rankings,
	})
}
