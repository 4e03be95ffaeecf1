package handlers

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"power-wizard/internal/advisor"
	"power-wizard/internal/api/models"
	"power-wizard/internal/i18n"
	"power-wizard/internal/model"
	"power-wizard/internal/render"
	"power-wizard/internal/supply"
	"power-wizard/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WizardHandler exposes the single in-memory session of this process.
// The session is not safe for concurrent use, so every handler holds mu.
type WizardHandler struct {
	mu      sync.Mutex
	session *wizard.Session
	advisor advisor.Advisor
	log     *logrus.Logger
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(session *wizard.Session, defaultAdvisor advisor.Advisor, logger *logrus.Logger) *WizardHandler {
	if defaultAdvisor == nil {
		defaultAdvisor = &advisor.CheapestAdvisor{}
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &WizardHandler{
		session: session,
		advisor: defaultAdvisor,
		log:     logger,
	}
}

// GetWizard handles GET /api/v1/wizard
func (h *WizardHandler) GetWizard(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, h.buildView())
}

// SelectLanguage handles POST /api/v1/wizard/language
func (h *WizardHandler) SelectLanguage(c *gin.Context) {
	var req models.LanguageRequest
	if !bindJSON(c, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.session.SelectLanguage(req.Language)
	c.JSON(http.StatusOK, h.buildView())
}

// SelectTown handles POST /api/v1/wizard/town
func (h *WizardHandler) SelectTown(c *gin.Context) {
	var req models.TownRequest
	if !bindJSON(c, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.session.SelectTown(req.Town); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.buildView())
}

// SetInstallation handles PUT /api/v1/wizard/installations/:type
func (h *WizardHandler) SetInstallation(c *gin.Context) {
	var req models.QuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	typeID := c.Param("type")

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.session.SetInstallationQuantity(typeID, req.RawQuantity()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.buildView())
}

// GetReport handles GET /api/v1/wizard/report
// The report is null until something is installed.
func (h *WizardHandler) GetReport(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	demand, err := h.session.Demand()
	if err != nil {
		writeError(c, err)
		return
	}
	report, err := h.session.SupplyReport()
	if err != nil {
		writeError(c, err)
		return
	}
	tr := i18n.New(string(h.session.State().Language))
	c.JSON(http.StatusOK, gin.H{
		"demand_kw": demand,
		"report":    toReportView(report),
		"messages":  render.Report(tr, report, demand),
	})
}

// Suggest handles POST /api/v1/wizard/suggest
func (h *WizardHandler) Suggest(c *gin.Context) {
	var req models.SuggestRequest
	// An empty body means "use the configured advisor".
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	adv := h.advisor
	if req.Advisor != "" {
		var err error
		adv, err = advisor.New(req.Advisor, nil)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "UNKNOWN_ADVISOR",
					Message: err.Error(),
				},
			})
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	plan, err := h.session.Suggest(adv)
	if err != nil {
		writeError(c, err)
		return
	}
	if req.Apply {
		if err := h.session.ApplyPlan(plan); err != nil {
			writeError(c, err)
			return
		}
	}

	tr := i18n.New(string(h.session.State().Language))
	demand := 0.0
	if plan.Report != nil {
		demand = plan.Report.DemandKW
	}
	messages := render.Suggestion(tr, h.session.Catalog(), plan)
	messages = append(messages, render.Report(tr, plan.Report, demand)...)
	c.JSON(http.StatusOK, models.SuggestResponse{
		Advisor:  plan.Advisor,
		Counts:   plan.Counts,
		Report:   toReportView(plan.Report),
		Applied:  req.Apply,
		Messages: messages,
	})
}

// Reset handles POST /api/v1/wizard/reset
func (h *WizardHandler) Reset(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session.Reset()
	h.log.WithField("session", h.session.ID().String()).Info("WizardHandler: session reset")
	c.JSON(http.StatusOK, h.buildView())
}

// Helper methods

// buildView renders the page for the current step. Callers hold mu.
func (h *WizardHandler) buildView() models.WizardResponse {
	st := h.session.State()
	tr := i18n.New(string(st.Language))

	resp := models.WizardResponse{
		SessionID: h.session.ID().String(),
		State: models.StateView{
			Step:     string(st.Step),
			Language: string(st.Language),
			Town:     st.Town,
			Counts:   st.Counts,
		},
	}

	switch st.Step {
	case wizard.StepChooseLanguage:
		resp.Messages = render.LanguageMenu(tr)
	case wizard.StepChooseLocation:
		resp.Messages = render.TownMenu(tr, h.session.Towns())
	case wizard.StepChoosePower:
		resp.Messages = render.InstallationMenu(tr, h.session.Catalog())
		demand, err := h.session.Demand()
		if err != nil {
			resp.Messages = append(resp.Messages, tr.T(i18n.KeyUnknownTown, st.Town))
			resp.Warnings = append(resp.Warnings, errorDetail(err))
			break
		}
		resp.DemandKW = &demand
		report, err := h.session.SupplyReport()
		if err != nil {
			resp.Warnings = append(resp.Warnings, errorDetail(err))
			break
		}
		resp.Report = toReportView(report)
		resp.Messages = append(resp.Messages, "")
		resp.Messages = append(resp.Messages, render.Report(tr, report, demand)...)
	}
	return resp
}

func toReportView(r *supply.Report) *models.ReportView {
	if r == nil {
		return nil
	}
	view := &models.ReportView{
		Status:           string(r.Status()),
		TotalNameplateKW: r.TotalNameplateKW,
		TotalGeneratedKW: r.TotalGeneratedKW,
		TotalCost:        r.TotalCost.InexactFloat64(),
		DemandKW:         r.DemandKW,
		DeficitKW:        r.DeficitKW,
		Lines:            make([]models.LineView, len(r.Lines)),
	}
	for i, l := range r.Lines {
		view.Lines[i] = models.LineView{
			Type:        l.TypeID,
			Name:        l.Name,
			Quantity:    l.Quantity,
			NameplateKW: l.NameplateKW,
			GeneratedKW: l.GeneratedKW,
			Cost:        l.Cost.InexactFloat64(),
		}
	}
	return view
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return false
	}
	return true
}

func errorDetail(err error) models.ErrorDetail {
	_, code := classify(err)
	return models.ErrorDetail{Code: code, Message: err.Error()}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrUnknownType):
		return http.StatusNotFound, "UNKNOWN_TYPE"
	case errors.Is(err, model.ErrUnknownTown):
		return http.StatusUnprocessableEntity, "UNKNOWN_TOWN"
	case errors.Is(err, model.ErrInvalidQuantity):
		return http.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, wizard.ErrEmptyTown):
		return http.StatusBadRequest, "EMPTY_TOWN"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
