package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog is the fixed, ordered table of installation types.
// It is immutable once built; lookups return copies.
type Catalog struct {
	types []InstallationType
	index map[string]int
}

func NewCatalog(types []InstallationType) (*Catalog, error) {
	c := &Catalog{
		types: make([]InstallationType, 0, len(types)),
		index: make(map[string]int, len(types)),
	}
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[t.ID]; dup {
			return nil, fmt.Errorf("duplicate installation id %q", t.ID)
		}
		c.index[t.ID] = len(c.types)
		c.types = append(c.types, t)
	}
	return c, nil
}

// DefaultCatalog returns the built-in installation table.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultInstallationTypes())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultInstallationTypes lists the built-in types in display order.
func DefaultInstallationTypes() []InstallationType {
	return []InstallationType{
		{ID: "slr", Name: "solar panel", CapacityFactor: 0.15, NameplateKW: 1, UnitPrice: decimal.NewFromInt(400)},
		{ID: "smw", Name: "small wind tower", CapacityFactor: 0.29, NameplateKW: 100, UnitPrice: decimal.NewFromInt(100000)},
		{ID: "lgw", Name: "large wind tower", CapacityFactor: 0.29, NameplateKW: 2300, UnitPrice: decimal.NewFromInt(2000000)},
		{ID: "die", Name: "diesel generator", CapacityFactor: 0.80, NameplateKW: 100, UnitPrice: decimal.NewFromInt(70000)},
	}
}

// Lookup returns the type registered under id.
func (c *Catalog) Lookup(id string) (InstallationType, error) {
	i, ok := c.index[id]
	if !ok {
		return InstallationType{}, fmt.Errorf("%w: %q", ErrUnknownType, id)
	}
	return c.types[i], nil
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// All returns the types in insertion order.
func (c *Catalog) All() []InstallationType {
	out := make([]InstallationType, len(c.types))
	copy(out, c.types)
	return out
}

func (c *Catalog) IDs() []string {
	out := make([]string, len(c.types))
	for i, t := range c.types {
		out[i] = t.ID
	}
	return out
}

func (c *Catalog) Len() int { return len(c.types) }
