// Package console drives a wizard session from line-oriented text input.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"power-wizard/internal/advisor"
	"power-wizard/internal/i18n"
	"power-wizard/internal/model"
	"power-wizard/internal/render"
	"power-wizard/internal/supply"
	"power-wizard/internal/wizard"
)

// Console reads commands from in and writes pages to out.
type Console struct {
	session *wizard.Session
	advisor advisor.Advisor
	out     io.Writer

	// last suggestion, applied by "apply"
	plan *advisor.Plan
}

func New(session *wizard.Session, adv advisor.Advisor, out io.Writer) *Console {
	if adv == nil {
		adv = &advisor.CheapestAdvisor{}
	}
	return &Console{session: session, advisor: adv, out: out}
}

// Run shows the current page and handles input until EOF or "quit".
func (c *Console) Run(in io.Reader) error {
	if err := c.ShowPage(); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := c.Handle(scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Handle processes one input line. Player mistakes are printed, not returned;
// the returned error is for write failures only.
func (c *Console) Handle(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd := strings.ToLower(fields[0])

	// Commands available on every page
	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "reset", "lang":
		c.session.Reset()
		c.plan = nil
		return false, c.ShowPage()
	case "town":
		st := c.session.State()
		c.session.SelectLanguage(string(st.Language))
		return false, c.ShowPage()
	}

	switch c.session.State().Step {
	case wizard.StepChooseLanguage:
		c.session.SelectLanguage(pickLanguage(fields[0]))
	case wizard.StepChooseLocation:
		if err := c.session.SelectTown(c.pickTown(fields[0])); err != nil {
			return false, c.printError(err, "", "")
		}
	case wizard.StepChoosePower:
		return false, c.handlePower(cmd, fields[1:])
	}
	return false, c.ShowPage()
}

func (c *Console) handlePower(cmd string, args []string) error {
	switch cmd {
	case "suggest":
		adv := c.advisor
		if len(args) > 0 {
			var err error
			if adv, err = advisor.New(args[0], nil); err != nil {
				return c.println(err.Error())
			}
		}
		plan, err := c.session.Suggest(adv)
		if err != nil {
			return c.printError(err, "", "")
		}
		c.plan = &plan
		tr := c.translator()
		lines := render.Suggestion(tr, c.session.Catalog(), plan)
		if plan.Report != nil {
			lines = append(lines, render.Report(tr, plan.Report, plan.Report.DemandKW)...)
		}
		return c.println(render.Join(lines))
	case "apply":
		if c.plan == nil {
			return c.println("nothing to apply, run 'suggest' first")
		}
		if err := c.session.ApplyPlan(*c.plan); err != nil {
			return c.printError(err, "", "")
		}
		return c.showReport()
	case "csv":
		report, err := c.session.SupplyReport()
		if err != nil {
			return c.printError(err, "", "")
		}
		if report == nil {
			return c.showReport()
		}
		return supply.WriteCSV(c.out, report)
	case "help", "?":
		return c.ShowPage()
	}

	// <type> <quantity>; a missing quantity clears the field
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	}
	if err := c.session.SetInstallationQuantity(cmd, raw); err != nil {
		return c.printError(err, cmd, raw)
	}
	return c.showReport()
}

// ShowPage prints the page for the current step.
func (c *Console) ShowPage() error {
	tr := c.translator()
	switch c.session.State().Step {
	case wizard.StepChooseLanguage:
		return c.println(render.Join(render.LanguageMenu(tr)))
	case wizard.StepChooseLocation:
		return c.println(render.Join(render.TownMenu(tr, c.session.Towns())))
	default:
		lines := render.InstallationMenu(tr, c.session.Catalog())
		lines = append(lines, tr.T(i18n.KeyPowerHelp))
		if err := c.println(render.Join(lines)); err != nil {
			return err
		}
		return c.showReport()
	}
}

func (c *Console) showReport() error {
	demand, err := c.session.Demand()
	if err != nil {
		return c.printError(err, "", "")
	}
	report, err := c.session.SupplyReport()
	if err != nil {
		return c.printError(err, "", "")
	}
	return c.println(render.Join(render.Report(c.translator(), report, demand)))
}

// printError reports a failed action. typeID and raw name the input when the
// action was an installation update.
func (c *Console) printError(err error, typeID, raw string) error {
	tr := c.translator()
	st := c.session.State()
	switch {
	case errors.Is(err, model.ErrInvalidQuantity):
		return c.println(tr.T(i18n.KeyInvalidQuantity, raw))
	case errors.Is(err, model.ErrUnknownType):
		return c.println(tr.T(i18n.KeyUnknownType, typeID))
	case errors.Is(err, model.ErrUnknownTown):
		return c.println(tr.T(i18n.KeyUnknownTown, st.Town))
	default:
		return c.println(err.Error())
	}
}

func (c *Console) translator() *i18n.Translator {
	return i18n.New(string(c.session.State().Language))
}

func (c *Console) println(s string) error {
	_, err := fmt.Fprintln(c.out, s)
	return err
}

// pickLanguage accepts a menu number or a language code.
func pickLanguage(in string) string {
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(wizard.Languages) {
		return string(wizard.Languages[n-1])
	}
	return strings.ToLower(in)
}

// pickTown accepts a menu number or a town id.
func (c *Console) pickTown(in string) string {
	towns := c.session.Towns().All()
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(towns) {
		return towns[n-1].ID
	}
	return strings.ToLower(in)
}
