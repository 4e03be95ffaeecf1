package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"power-wizard/internal/advisor"
	"power-wizard/internal/api/handlers"
	"power-wizard/internal/api/middleware"
	"power-wizard/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterOptions are the pieces the HTTP layer needs.
type RouterOptions struct {
	Session        *wizard.Session
	Advisor        advisor.Advisor
	Logger         *logrus.Logger
	AllowedOrigins []string
	// StaticDir is served for non-API routes when it exists. Empty disables it.
	StaticDir string
}

// NewRouter wires middleware, API routes and the optional web UI.
func NewRouter(opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
		opts.Logger.SetOutput(io.Discard)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logger(opts.Logger))
	router.Use(middleware.ErrorHandler(opts.Logger))

	// Initialize handlers
	wizardHandler := handlers.NewWizardHandler(opts.Session, opts.Advisor, opts.Logger)
	catalogHandler := handlers.NewCatalogHandler(opts.Session.Catalog(), opts.Session.Towns())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", catalogHandler.ListInstallations)
		v1.GET("/towns", catalogHandler.ListTowns)
		v1.GET("/advisors", catalogHandler.ListAdvisors)
		v1.GET("/rank", wizardHandler.Rank)

		v1.GET("/wizard", wizardHandler.GetWizard)
		v1.POST("/wizard/language", wizardHandler.SelectLanguage)
		v1.POST("/wizard/town", wizardHandler.SelectTown)
		v1.PUT("/wizard/installations/:type", wizardHandler.SetInstallation)
		v1.GET("/wizard/report", wizardHandler.GetReport)
		v1.POST("/wizard/suggest", wizardHandler.Suggest)
		v1.POST("/wizard/reset", wizardHandler.Reset)
	}

	serveStatic(router, opts.StaticDir, opts.Logger)
	return router
}

// serveStatic serves a built single-page UI, falling back to index.html.
func serveStatic(router *gin.Engine, staticDir string, logger *logrus.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	}
	if staticDir == "" {
		router.NoRoute(notFound)
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		logger.Infof("Static directory %s not found, skipping static file serving", staticDir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))

	// Serve index.html for all non-API routes (SPA routing)
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	})
	logger.Infof("Serving static files from %s", staticDir)
}
