package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"power-wizard/internal/api/models"
	"power-wizard/internal/model"
	"power-wizard/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, opts wizard.Options) (*gin.Engine, *wizard.Session) {
	t.Helper()
	session := wizard.NewSession(model.DefaultCatalog(), model.DefaultTowns(), opts)
	router := NewRouter(RouterOptions{Session: session})
	return router, session
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, wizard.Options{})
	w := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestWizardFlow(t *testing.T) {
	router, session := newTestRouter(t, wizard.Options{})

	w := do(t, router, http.MethodGet, "/api/v1/wizard", "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.WizardResponse](t, w)
	assert.Equal(t, session.ID().String(), view.SessionID)
	assert.Equal(t, "chooseLang", view.State.Step)
	assert.Equal(t, "Choose a language:", view.Messages[0])
	assert.Nil(t, view.Report)

	w = do(t, router, http.MethodPost, "/api/v1/wizard/language", `{"language":"en"}`)
	require.Equal(t, http.StatusOK, w.Code)
	view = decode[models.WizardResponse](t, w)
	assert.Equal(t, "chooseLoc", view.State.Step)
	assert.Equal(t, "Choose a town:", view.Messages[0])

	w = do(t, router, http.MethodPost, "/api/v1/wizard/town", `{"town":"iqaluit"}`)
	require.Equal(t, http.StatusOK, w.Code)
	view = decode[models.WizardResponse](t, w)
	assert.Equal(t, "choosePower", view.State.Step)
	require.NotNil(t, view.DemandKW)
	assert.Equal(t, 8000.0, *view.DemandKW)
	assert.Nil(t, view.Report)
	assert.Equal(t, "You need to generate 8,000 kW of power.", view.Messages[len(view.Messages)-1])

	w = do(t, router, http.MethodPut, "/api/v1/wizard/installations/lgw", `{"quantity":"4"}`)
	require.Equal(t, http.StatusOK, w.Code)
	view = decode[models.WizardResponse](t, w)
	require.NotNil(t, view.Report)
	assert.Equal(t, "SHORTFALL", view.Report.Status)
	assert.InDelta(t, 2668.0, view.Report.TotalGeneratedKW, 1e-9)
	assert.InDelta(t, 8000000.0, view.Report.TotalCost, 1e-6)
	assert.InDelta(t, 5332.0, view.Report.DeficitKW, 1e-9)
	assert.Equal(t, "You need to produce 8,000 kW. You are short by 5,332 kW.", view.Messages[len(view.Messages)-1])

	// Numbers are accepted as well as strings.
	w = do(t, router, http.MethodPut, "/api/v1/wizard/installations/lgw", `{"quantity":12}`)
	require.Equal(t, http.StatusOK, w.Code)
	view = decode[models.WizardResponse](t, w)
	assert.Equal(t, "MET", view.Report.Status)
	assert.Equal(t, 12.0, view.State.Counts["lgw"])

	w = do(t, router, http.MethodGet, "/api/v1/wizard/report", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Congrats")
}

func TestSetInstallationErrors(t *testing.T) {
	router, session := newTestRouter(t, wizard.Options{})
	require.NoError(t, session.SetInstallationCount("slr", 10))

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown type", "/api/v1/wizard/installations/nuke", `{"quantity":"1"}`, http.StatusNotFound, "UNKNOWN_TYPE"},
		{"not a number", "/api/v1/wizard/installations/slr", `{"quantity":"lots"}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"negative", "/api/v1/wizard/installations/slr", `{"quantity":-2}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"malformed json", "/api/v1/wizard/installations/slr", `{"quantity":`, http.StatusBadRequest, "INVALID_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			resp := decode[models.ErrorResponse](t, w)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, 10.0, session.State().Counts["slr"], "state unchanged")
		})
	}
}

func TestClearInstallationWithEmptyQuantity(t *testing.T) {
	router, session := newTestRouter(t, wizard.Options{})
	require.NoError(t, session.SetInstallationCount("slr", 10))

	w := do(t, router, http.MethodPut, "/api/v1/wizard/installations/slr", `{"quantity":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, session.State().Counts["slr"])
}

func TestLenientPolicy(t *testing.T) {
	router, session := newTestRouter(t, wizard.Options{Policy: wizard.PolicyLenient})
	require.NoError(t, session.SetInstallationCount("slr", 10))

	w := do(t, router, http.MethodPut, "/api/v1/wizard/installations/slr", `{"quantity":"lots"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, session.State().Counts["slr"])
}

func TestSelectTownErrors(t *testing.T) {
	router, _ := newTestRouter(t, wizard.Options{})

	w := do(t, router, http.MethodPost, "/api/v1/wizard/town", `{"town":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_TOWN", decode[models.ErrorResponse](t, w).Error.Code)

	w = do(t, router, http.MethodPost, "/api/v1/wizard/town", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)

	// Unknown towns are accepted; the page carries a warning instead of a report.
	w = do(t, router, http.MethodPost, "/api/v1/wizard/town", `{"town":"whitehorse"}`)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.WizardResponse](t, w)
	require.Len(t, view.Warnings, 1)
	assert.Equal(t, "UNKNOWN_TOWN", view.Warnings[0].Code)
	assert.Nil(t, view.DemandKW)

	w = do(t, router, http.MethodGet, "/api/v1/wizard/report", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "UNKNOWN_TOWN", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestUnsupportedLanguageAccepted(t *testing.T) {
	router, _ := newTestRouter(t, wizard.Options{})
	w := do(t, router, http.MethodPost, "/api/v1/wizard/language", `{"language":"xx"}`)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.WizardResponse](t, w)
	assert.Equal(t, "xx", view.State.Language)
	assert.Equal(t, "chooseLoc", view.State.Step)
	assert.Equal(t, "Choose a town:", view.Messages[0])
}

func TestEmptyLanguageAccepted(t *testing.T) {
	router, session := newTestRouter(t, wizard.Options{})
	w := do(t, router, http.MethodPost, "/api/v1/wizard/language", `{"language":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.WizardResponse](t, w)
	assert.Equal(t, "chooseLoc", view.State.Step)
	assert.Equal(t, "Choose a town:", view.Messages[0])
	assert.Equal(t, wizard.Language(""), session.State().Language)
}

func TestFrenchMessages(t *testing.T) {
	router, _ := newTestRouter(t, wizard.Options{})
	w := do(t, router, http.MethodPost, "/api/v1/wizard/language", `{"language":"fr"}`)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.WizardResponse](t, w)
	assert.True(t, strings.HasPrefix(view.Messages[0], "Choisissez"))
}

func TestSuggest(t *testing.T) {
	router, session := newTestRouter(t, wizard.Options{})

	w := do(t, router, http.MethodPost, "/api/v1/wizard/suggest", `{"advisor":"single"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.SuggestResponse](t, w)
	assert.Equal(t, "single", resp.Advisor)
	assert.Equal(t, map[string]int{"die": 100}, resp.Counts)
	assert.False(t, resp.Applied)
	require.NotNil(t, resp.Report)
	assert.Equal(t, "MET", resp.Report.Status)
	assert.Equal(t, "Suggested mix (single):", resp.Messages[0])
	assert.Empty(t, session.State().Counts)

	w = do(t, router, http.MethodPost, "/api/v1/wizard/suggest", `{"advisor":"single","apply":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.SuggestResponse](t, w).Applied)
	assert.Equal(t, map[string]float64{"die": 100}, session.State().Counts)

	w = do(t, router, http.MethodPost, "/api/v1/wizard/suggest", `{"advisor":"oracle"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_ADVISOR", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestReset(t *testing.T) {
	router, session := newTestRouter(t, wizard.Options{})
	id := session.ID().String()
	require.NoError(t, session.SetInstallationCount("die", 5))

	w := do(t, router, http.MethodPost, "/api/v1/wizard/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.WizardResponse](t, w)
	assert.NotEqual(t, id, view.SessionID)
	assert.Equal(t, "chooseLang", view.State.Step)
	assert.Empty(t, view.State.Counts)
}

func TestReferenceData(t *testing.T) {
	router, _ := newTestRouter(t, wizard.Options{})

	w := do(t, router, http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)
	catalog := decode[map[string][]models.InstallationInfo](t, w)["installations"]
	require.Len(t, catalog, 4)
	assert.Equal(t, "slr", catalog[0].ID)
	assert.Equal(t, "solar panel: 1 kW each, capacity factor 15%, $ 400", catalog[0].Description)
	assert.InDelta(t, 875.0, catalog[3].CostPerEffectiveKW, 1e-6)

	w = do(t, router, http.MethodGet, "/api/v1/towns", "")
	require.Equal(t, http.StatusOK, w.Code)
	towns := decode[map[string][]models.TownInfo](t, w)["towns"]
	require.Len(t, towns, 2)
	assert.Equal(t, "Rankin Inlet", towns[1].Name)

	w = do(t, router, http.MethodGet, "/api/v1/advisors", "")
	require.Equal(t, http.StatusOK, w.Code)
	advisors := decode[map[string][]models.AdvisorInfo](t, w)["advisors"]
	require.Len(t, advisors, 2)
	assert.Equal(t, "cheapest", advisors[0].Name)
}

func TestRank(t *testing.T) {
	router, _ := newTestRouter(t, wizard.Options{})

	w := do(t, router, http.MethodGet, "/api/v1/rank?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RankResponse](t, w)
	assert.Equal(t, "iqaluit", resp.Town)
	assert.Equal(t, 8000.0, resp.DemandKW)
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, "die", resp.Rankings[0].Type)
	assert.Equal(t, 100, resp.Rankings[0].UnitsToMeetDemand)
	assert.Equal(t, "slr", resp.Rankings[1].Type)

	w = do(t, router, http.MethodGet, "/api/v1/rank?town=whitehorse", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/rank?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, wizard.Options{})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/wizard/town", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	router, _ := newTestRouter(t, wizard.Options{})
	w := do(t, router, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>wizard</html>"), 0o644))

	session := wizard.NewSession(model.DefaultCatalog(), model.DefaultTowns(), wizard.Options{})
	router := NewRouter(RouterOptions{Session: session, StaticDir: dir})

	w := do(t, router, http.MethodGet, "/some/page", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wizard")

	w = do(t, router, http.MethodGet, "/api/v1/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
