package main

import (
	"fmt"
	"os"
	"strings"

	"power-wizard/internal/advisor"
	"power-wizard/internal/analysis"
	"power-wizard/internal/config"
	"power-wizard/internal/console"
	"power-wizard/internal/i18n"
	"power-wizard/internal/logging"
	"power-wizard/internal/model"
	"power-wizard/internal/render"
	"power-wizard/internal/supply"
	"power-wizard/internal/wizard"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// global flags
var (
	cfgPath  string
	logLevel string
	lang     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cli",
		Short:        "Plan a community power supply for a northern town",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to scenario YAML (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "Language for printed messages (en, fr, iu)")

	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(suggestCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run the interactive wizard on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(logLevel, cmd.ErrOrStderr())
			cfg, err := loadScenario(logger)
			if err != nil {
				return err
			}
			session, err := cfg.NewSession(logger)
			if err != nil {
				return err
			}
			adv, err := cfg.BuildAdvisor()
			if err != nil {
				return err
			}
			return console.New(session, adv, cmd.OutOrStdout()).Run(cmd.InOrStdin())
		},
	}
}

func evaluateCmd() *cobra.Command {
	var (
		town   string
		counts []string
		format string
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate an installation mix against a town's demand",
		Example: "  cli evaluate --town iqaluit --count slr=1000 --count die=20\n" +
			"  cli evaluate --count lgw=5 --format csv",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(logLevel, cmd.ErrOrStderr())
			cfg, err := loadScenario(logger)
			if err != nil {
				return err
			}
			catalog, towns, err := buildTables(cfg)
			if err != nil {
				return err
			}
			demand, err := towns.Demand(town)
			if err != nil {
				return err
			}
			parsed, err := parseCounts(counts)
			if err != nil {
				return err
			}
			report, err := supply.Evaluate(catalog, demand, parsed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "csv":
				if report == nil {
					return fmt.Errorf("nothing installed, no report to write")
				}
				return supply.WriteCSV(out, report)
			case "text", "":
				_, err := fmt.Fprintln(out, render.Join(render.Report(i18n.New(lang), report, demand)))
				return err
			default:
				return fmt.Errorf("unsupported format: %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&town, "town", model.DefaultTownID, "Town id")
	cmd.Flags().StringArrayVar(&counts, "count", nil, "Installation count as id=quantity (repeatable)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or csv")
	return cmd
}

func catalogCmd() *cobra.Command {
	var town string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List installation types ranked by cost per effective kW",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(logLevel, cmd.ErrOrStderr())
			cfg, err := loadScenario(logger)
			if err != nil {
				return err
			}
			catalog, towns, err := buildTables(cfg)
			if err != nil {
				return err
			}
			demand, err := towns.Demand(town)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Demand in %s: %.0f kW\n", town, demand)
			fmt.Fprintf(out, "%-4s %-6s %-18s %-12s %-14s %-8s %-14s\n", "rank", "id", "name", "eff kW/unit", "$/eff kW", "units", "cost alone")
			for _, r := range analysis.RankByCostPerKW(catalog, demand) {
				fmt.Fprintf(out, "%-4d %-6s %-18s %-12.2f %-14.2f %-8d %-14s\n",
					r.Rank,
					r.TypeID,
					r.Name,
					r.EffectiveKWPerUnit,
					r.CostPerEffectiveKW,
					r.UnitsToMeetDemand,
					r.CostToMeetDemand.StringFixed(0),
				)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&town, "town", model.DefaultTownID, "Town id")
	return cmd
}

func suggestCmd() *cobra.Command {
	var (
		town        string
		advisorName string
	)
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a whole-unit mix that meets a town's demand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(logLevel, cmd.ErrOrStderr())
			cfg, err := loadScenario(logger)
			if err != nil {
				return err
			}
			catalog, towns, err := buildTables(cfg)
			if err != nil {
				return err
			}
			demand, err := towns.Demand(town)
			if err != nil {
				return err
			}

			var adv advisor.Advisor
			if advisorName != "" {
				adv, err = advisor.New(advisorName, cfg.Advisor.Params)
			} else {
				adv, err = cfg.BuildAdvisor()
			}
			if err != nil {
				return err
			}
			plan, err := adv.Suggest(catalog, demand)
			if err != nil {
				return err
			}

			tr := i18n.New(lang)
			lines := render.Suggestion(tr, catalog, plan)
			lines = append(lines, render.Report(tr, plan.Report, demand)...)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Join(lines))
			return err
		},
	}
	cmd.Flags().StringVar(&town, "town", model.DefaultTownID, "Town id")
	cmd.Flags().StringVar(&advisorName, "advisor", "", "Advisor: cheapest or single (default from config)")
	return cmd
}

func loadScenario(logger *logrus.Logger) (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", cfgPath).Info("scenario loaded")
	return cfg, nil
}

func buildTables(cfg *config.Config) (*model.Catalog, *model.Towns, error) {
	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return nil, nil, err
	}
	towns, err := cfg.BuildTowns()
	if err != nil {
		return nil, nil, err
	}
	return catalog, towns, nil
}

// parseCounts turns id=quantity pairs into wizard counts. Quantities are
// parsed strictly; later pairs for the same id win.
func parseCounts(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		id, raw, ok := strings.Cut(p, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("--count must be id=quantity, got %q", p)
		}
		q, err := wizard.ParseQuantity(raw, wizard.PolicyStrict)
		if err != nil {
			return nil, err
		}
		out[id] = q
	}
	return out, nil
}
