package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"power-wizard/internal/advisor"
	"power-wizard/internal/model"
	"power-wizard/internal/wizard"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML).
//
// Installations and towns are merged onto the built-in tables by id unless the
// matching replace_* flag is set.
type Config struct {
	// Optional: load installations from a separate YAML (e.g. examples/catalogs/*.yaml).
	// Inline Installations override entries from CatalogFile.
	CatalogFile    string               `yaml:"catalog_file"`
	Installations  []InstallationConfig `yaml:"installations"`
	ReplaceCatalog bool                 `yaml:"replace_catalog"`

	Towns        []TownConfig `yaml:"towns"`
	ReplaceTowns bool         `yaml:"replace_towns"`
	// FallbackDemandKW, when > 0, is the demand used for towns not listed.
	FallbackDemandKW float64 `yaml:"fallback_demand_kw"`

	Wizard  WizardConfig  `yaml:"wizard"`
	Advisor AdvisorConfig `yaml:"advisor"`
}

type InstallationConfig struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	CapacityFactor float64 `yaml:"capacity_factor"`
	NameplateKW    float64 `yaml:"nameplate_kw"`
	UnitPrice      float64 `yaml:"unit_price"`
}

type TownConfig struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	DemandKW float64 `yaml:"demand_kw"`
}

type WizardConfig struct {
	QuantityPolicy        string `yaml:"quantity_policy"`
	ResetCountsOnReselect bool   `yaml:"reset_counts_on_reselect"`
}

type AdvisorConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

// Default is the configuration used when no scenario file is given.
func Default() *Config {
	return &Config{}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.CatalogFile != "" {
		catalogPath := c.CatalogFile
		if !filepath.IsAbs(catalogPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), catalogPath)
			if _, err := os.Stat(cand); err == nil {
				catalogPath = cand
			}
		}
		loaded, err := loadCatalogFile(catalogPath)
		if err != nil {
			return nil, err
		}
		c.Installations = mergeInstallationLists(loaded, c.Installations)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.BuildCatalog(); err != nil {
		return fmt.Errorf("installations invalid: %w", err)
	}
	if _, err := c.BuildTowns(); err != nil {
		return fmt.Errorf("towns invalid: %w", err)
	}
	if c.FallbackDemandKW < 0 {
		return errors.New("fallback_demand_kw must be >= 0")
	}
	if _, err := wizard.ParsePolicy(c.Wizard.QuantityPolicy); err != nil {
		return fmt.Errorf("wizard config invalid: %w", err)
	}
	if _, err := c.BuildAdvisor(); err != nil {
		return fmt.Errorf("advisor config invalid: %w", err)
	}
	return nil
}

// BuildCatalog merges configured installations onto the built-in ones.
func (c *Config) BuildCatalog() (*model.Catalog, error) {
	var base []InstallationConfig
	if !c.ReplaceCatalog {
		for _, t := range model.DefaultInstallationTypes() {
			base = append(base, FromInstallationType(t))
		}
	}
	merged := mergeInstallationLists(base, c.Installations)
	types := make([]model.InstallationType, 0, len(merged))
	for _, ic := range merged {
		types = append(types, ic.ToModel())
	}
	return model.NewCatalog(types)
}

func (c *Config) BuildTowns() (*model.Towns, error) {
	var base []TownConfig
	if !c.ReplaceTowns {
		for _, t := range model.DefaultTowns().All() {
			base = append(base, TownConfig{ID: t.ID, Name: t.Name, DemandKW: t.DemandKW})
		}
	}
	merged := base
	for _, o := range c.Towns {
		found := false
		for i := range merged {
			if merged[i].ID == o.ID {
				merged[i] = MergeTown(merged[i], o)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, o)
		}
	}
	towns := make([]model.Town, 0, len(merged))
	for _, tc := range merged {
		name := tc.Name
		if name == "" {
			name = tc.ID
		}
		towns = append(towns, model.Town{ID: tc.ID, Name: name, DemandKW: tc.DemandKW})
	}
	t, err := model.NewTowns(towns)
	if err != nil {
		return nil, err
	}
	t.FallbackDemandKW = c.FallbackDemandKW
	return t, nil
}

func (c *Config) BuildAdvisor() (advisor.Advisor, error) {
	return advisor.New(c.Advisor.Name, c.Advisor.Params)
}

func (c *Config) SessionOptions(logger *logrus.Logger) (wizard.Options, error) {
	policy, err := wizard.ParsePolicy(c.Wizard.QuantityPolicy)
	if err != nil {
		return wizard.Options{}, err
	}
	return wizard.Options{
		Policy:                policy,
		ResetCountsOnReselect: c.Wizard.ResetCountsOnReselect,
		Logger:                logger,
	}, nil
}

// NewSession builds the catalog, towns and options and starts a session.
func (c *Config) NewSession(logger *logrus.Logger) (*wizard.Session, error) {
	catalog, err := c.BuildCatalog()
	if err != nil {
		return nil, err
	}
	towns, err := c.BuildTowns()
	if err != nil {
		return nil, err
	}
	opts, err := c.SessionOptions(logger)
	if err != nil {
		return nil, err
	}
	return wizard.NewSession(catalog, towns, opts), nil
}

func (ic InstallationConfig) ToModel() model.InstallationType {
	return model.InstallationType{
		ID:             ic.ID,
		Name:           ic.Name,
		CapacityFactor: ic.CapacityFactor,
		NameplateKW:    ic.NameplateKW,
		UnitPrice:      decimal.NewFromFloat(ic.UnitPrice),
	}
}

func FromInstallationType(t model.InstallationType) InstallationConfig {
	return InstallationConfig{
		ID:             t.ID,
		Name:           t.Name,
		CapacityFactor: t.CapacityFactor,
		NameplateKW:    t.NameplateKW,
		UnitPrice:      t.UnitPrice.InexactFloat64(),
	}
}

type catalogFileWrapper struct {
	Installations []InstallationConfig `yaml:"installations"`
}

func loadCatalogFile(path string) ([]InstallationConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w catalogFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Installations, nil
}

func mergeInstallationLists(base, overrides []InstallationConfig) []InstallationConfig {
	out := make([]InstallationConfig, len(base), len(base)+len(overrides))
	copy(out, base)
	for _, o := range overrides {
		found := false
		for i := range out {
			if out[i].ID == o.ID {
				out[i] = MergeInstallation(out[i], o)
				found = true
				break
			}
		}
		if !found {
			out = append(out, o)
		}
	}
	return out
}

// MergeInstallation overlays non-zero fields from override onto base.
func MergeInstallation(base, override InstallationConfig) InstallationConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	// Note: a capacity factor of 0 cannot be set through an override.
	if override.CapacityFactor != 0 {
		out.CapacityFactor = override.CapacityFactor
	}
	if override.NameplateKW != 0 {
		out.NameplateKW = override.NameplateKW
	}
	if override.UnitPrice != 0 {
		out.UnitPrice = override.UnitPrice
	}
	return out
}

func MergeTown(base, override TownConfig) TownConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.DemandKW != 0 {
		out.DemandKW = override.DemandKW
	}
	return out
}
