package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"power-wizard/internal/config"
	"power-wizard/internal/console"
	"power-wizard/internal/logging"
)

// Demo:
// - Build a session from the built-in tables (or --config)
// - Feed it a fixed script of player inputs
// - Print every page so the wizard flow can be read top to bottom
func main() {
	cfgPath := flag.String("config", "", "Path to scenario YAML (optional)")
	logLevel := flag.String("log-level", "warn", "Log level")
	lang := flag.String("lang", "1", "Language menu choice or code")
	town := flag.String("town", "1", "Town menu choice or id")
	flag.Parse()

	logger := logging.New(*logLevel, os.Stderr)

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
	}
	session, err := cfg.NewSession(logger)
	if err != nil {
		panic(err)
	}
	adv, err := cfg.BuildAdvisor()
	if err != nil {
		panic(err)
	}

	script := []string{
		*lang,
		*town,
		"slr 1000", // solar alone falls far short
		"smw 10",
		"die 80", // still short
		"die 100",
		"csv",
		"slr 0",
		"smw",
		"suggest",
		"apply",
		"suggest single",
	}

	c := console.New(session, adv, os.Stdout)
	fmt.Printf("Session %s\n\n", session.ID())
	if err := c.ShowPage(); err != nil {
		panic(err)
	}
	for _, line := range script {
		fmt.Printf("\n> %s\n", line)
		if _, err := c.Handle(line); err != nil {
			panic(err)
		}
	}

	st := session.State()
	fmt.Printf("\nDone. step=%s language=%s town=%s counts=%s\n", st.Step, st.Language, st.Town, formatCounts(session.Catalog().IDs(), st.Counts))
}

func formatCounts(ids []string, counts map[string]float64) string {
	parts := make([]string, 0, len(counts))
	for _, id := range ids {
		if q, ok := counts[id]; ok {
			parts = append(parts, fmt.Sprintf("%s=%g", id, q))
		}
	}
	return strings.Join(parts, " ")
}
