package wizard

import (
	"fmt"
	"io"

	"power-wizard/internal/advisor"
	"power-wizard/internal/model"
	"power-wizard/internal/supply"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options tune a Session.
type Options struct {
	Policy QuantityPolicy
	// ResetCountsOnReselect clears installation counts when the language or
	// town is chosen again. By default they are kept.
	ResetCountsOnReselect bool
	Logger                *logrus.Logger
}

// Session owns the wizard state of one player for one run of the program.
// It is not safe for concurrent use; adapters that serve requests in
// parallel must serialize access.
type Session struct {
	id      uuid.UUID
	catalog *model.Catalog
	towns   *model.Towns
	opts    Options
	log     *logrus.Logger
	state   State
}

func NewSession(catalog *model.Catalog, towns *model.Towns, opts Options) *Session {
	if opts.Policy == "" {
		opts.Policy = PolicyStrict
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	s := &Session{
		id:      uuid.New(),
		catalog: catalog,
		towns:   towns,
		opts:    opts,
		log:     log,
		state:   Initial(),
	}
	s.entry().Debug("session started")
	return s
}

func (s *Session) ID() uuid.UUID           { return s.id }
func (s *Session) Catalog() *model.Catalog { return s.catalog }
func (s *Session) Towns() *model.Towns     { return s.towns }
func (s *Session) Policy() QuantityPolicy  { return s.opts.Policy }

// State returns a snapshot; callers may not mutate the session through it.
func (s *Session) State() State {
	return s.state.Clone()
}

func (s *Session) SelectLanguage(lang string) {
	next := SelectLanguage(s.state, Language(lang))
	if s.opts.ResetCountsOnReselect {
		next = ClearCounts(next)
	}
	s.state = next
	s.entry().WithField("language", lang).Debug("language selected")
}

func (s *Session) SelectTown(town string) error {
	next, err := SelectTown(s.state, town)
	if err != nil {
		s.entry().WithError(err).Debug("town rejected")
		return err
	}
	if s.opts.ResetCountsOnReselect {
		next = ClearCounts(next)
	}
	s.state = next
	s.entry().WithField("town", next.Town).Debug("town selected")
	return nil
}

// SetInstallationQuantity parses raw form input under the session policy and
// records it. On error the state is unchanged.
func (s *Session) SetInstallationQuantity(typeID, raw string) error {
	q, err := ParseQuantity(raw, s.opts.Policy)
	if err != nil {
		s.entry().WithError(err).WithField("type", typeID).Debug("quantity rejected")
		return err
	}
	return s.SetInstallationCount(typeID, q)
}

// SetInstallationCount records an already parsed quantity.
func (s *Session) SetInstallationCount(typeID string, quantity float64) error {
	if !ValidQuantity(quantity) {
		return fmt.Errorf("%w: %v", model.ErrInvalidQuantity, quantity)
	}
	next, err := SetInstallationCount(s.state, s.catalog, typeID, quantity)
	if err != nil {
		s.entry().WithError(err).Debug("installation rejected")
		return err
	}
	s.state = next
	s.entry().WithFields(logrus.Fields{"type": typeID, "quantity": quantity}).Debug("installation updated")
	return nil
}

// Demand is the current town's demand in kW.
func (s *Session) Demand() (float64, error) {
	return s.towns.Demand(s.state.Town)
}

// SupplyReport evaluates the current state. A nil report with a nil error
// means nothing is installed yet.
func (s *Session) SupplyReport() (*supply.Report, error) {
	demand, err := s.Demand()
	if err != nil {
		return nil, err
	}
	return supply.Evaluate(s.catalog, demand, s.state.Counts)
}

// Suggest asks an advisor for a mix meeting the current town's demand.
// The suggestion is not applied; see ApplyPlan.
func (s *Session) Suggest(a advisor.Advisor) (advisor.Plan, error) {
	demand, err := s.Demand()
	if err != nil {
		return advisor.Plan{}, err
	}
	plan, err := a.Suggest(s.catalog, demand)
	if err != nil {
		return advisor.Plan{}, err
	}
	s.entry().WithFields(logrus.Fields{"advisor": a.Name(), "counts": plan.Counts}).Debug("plan suggested")
	return plan, nil
}

// ApplyPlan replaces all installation counts with the plan's counts.
func (s *Session) ApplyPlan(p advisor.Plan) error {
	next := ClearCounts(s.state)
	for id, n := range p.Counts {
		if !ValidQuantity(float64(n)) {
			return fmt.Errorf("%w: %d", model.ErrInvalidQuantity, n)
		}
		var err error
		next, err = SetInstallationCount(next, s.catalog, id, float64(n))
		if err != nil {
			return err
		}
	}
	next.Step = StepChoosePower
	s.state = next
	s.entry().WithField("advisor", p.Advisor).Debug("plan applied")
	return nil
}

// Reset starts over with a fresh state and a new session id.
func (s *Session) Reset() {
	s.id = uuid.New()
	s.state = Initial()
	s.entry().Debug("session reset")
}

func (s *Session) entry() *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"session": s.id.String(),
		"step":    string(s.state.Step),
	})
}
