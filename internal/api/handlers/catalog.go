package handlers

import (
	"net/http"

	"power-wizard/internal/advisor"
	"power-wizard/internal/analysis"
	"power-wizard/internal/api/models"
	"power-wizard/internal/i18n"
	"power-wizard/internal/model"
	"power-wizard/internal/render"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only reference data: installation types, towns and advisors.
type CatalogHandler struct {
	catalog *model.Catalog
	towns   *model.Towns
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *model.Catalog, towns *model.Towns) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, towns: towns}
}

// ListInstallations handles GET /api/v1/catalog
// ?lang= picks the language of the description line.
func (h *CatalogHandler) ListInstallations(c *gin.Context) {
	tr := i18n.New(c.DefaultQuery("lang", "en"))
	types := h.catalog.All()
	out := make([]models.InstallationInfo, len(types))
	for i, t := range types {
		econ := analysis.ComputeEconomics(t, 0)
		out[i] = models.InstallationInfo{
			ID:                 t.ID,
			Name:               t.DisplayName(),
			CapacityFactor:     t.CapacityFactor,
			NameplateKW:        t.NameplateKW,
			UnitPrice:          t.UnitPrice.InexactFloat64(),
			CostPerEffectiveKW: econ.CostPerEffectiveKW,
			Description:        render.InstallationLine(tr, t),
		}
	}
	c.JSON(http.StatusOK, gin.H{"installations": out})
}

// ListTowns handles GET /api/v1/towns
func (h *CatalogHandler) ListTowns(c *gin.Context) {
	towns := h.towns.All()
	out := make([]models.TownInfo, len(towns))
	for i, t := range towns {
		out[i] = models.TownInfo{ID: t.ID, Name: t.Name, DemandKW: t.DemandKW}
	}
	c.JSON(http.StatusOK, gin.H{"towns": out})
}

// ListAdvisors handles GET /api/v1/advisors
func (h *CatalogHandler) ListAdvisors(c *gin.Context) {
	available := advisor.Available()
	out := make([]models.AdvisorInfo, len(available))
	for i, a := range available {
		out[i] = models.AdvisorInfo{Name: a.Name, Description: a.Description}
	}
	c.JSON(http.StatusOK, gin.H{"advisors": out})
}
