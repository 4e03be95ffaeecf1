package main

import (
	"os"

	"power-wizard/internal/api"
	"power-wizard/internal/config"
	"power-wizard/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	srv, err := config.LoadServer()
	if err != nil {
		logging.New("info", os.Stderr).Fatalf("Failed to load server config: %v", err)
	}
	logger := logging.New(srv.LogLevel, os.Stdout)

	if wd, err := os.Getwd(); err == nil {
		logger.Infof("Working directory: %s", wd)
	}

	// Scenario: built-in catalog and towns unless a file is given
	scenario := config.Default()
	if srv.ScenarioFile != "" {
		scenario, err = config.Load(srv.ScenarioFile)
		if err != nil {
			logger.Fatalf("Failed to load scenario %s: %v", srv.ScenarioFile, err)
		}
		logger.Infof("Loaded scenario from %s", srv.ScenarioFile)
	}

	session, err := scenario.NewSession(logger)
	if err != nil {
		logger.Fatalf("Failed to create session: %v", err)
	}
	adv, err := scenario.BuildAdvisor()
	if err != nil {
		logger.Fatalf("Failed to create advisor: %v", err)
	}

	// Set up Gin router
	if srv.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.RouterOptions{
		Session:        session,
		Advisor:        adv,
		Logger:         logger,
		AllowedOrigins: srv.AllowedOrigins,
		StaticDir:      srv.StaticDir,
	})

	// Start server
	logger.WithField("session", session.ID().String()).Infof("Starting API server on %s", srv.Addr())
	if err := router.Run(srv.Addr()); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
