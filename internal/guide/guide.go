// Package guide holds the static fish reference catalog and the
// favorite-species set persisted in the preference store.
package guide

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fishinghit/fishhit/internal/domain"
)

//go:embed species.json
var speciesJSON []byte

// Catalog is the read-only species reference table
type Catalog struct {
	species []domain.FishInfo
	byName  map[string]int
}

// Load parses and validates the embedded species table
func Load() (*Catalog, error) {
	var species []domain.FishInfo
	if err := json.Unmarshal(speciesJSON, &species); err != nil {
		return nil, fmt.Errorf("parse species table: %w", err)
	}
	if len(species) == 0 {
		return nil, fmt.Errorf("species table is empty")
	}

	byName := make(map[string]int, len(species))
	for i, sp := range species {
		if sp.Name == "" {
			return nil, fmt.Errorf("species at index %d has no name", i)
		}
		if _, dup := byName[sp.Name]; dup {
			return nil, fmt.Errorf("duplicate species %q", sp.Name)
		}
		byName[sp.Name] = i
	}

	return &Catalog{species: species, byName: byName}, nil
}

// All returns the full species list in table order
func (c *Catalog) All() []domain.FishInfo {
	out := make([]domain.FishInfo, len(c.species))
	copy(out, c.species)
	return out
}

// Get looks a species up by exact name
func (c *Catalog) Get(name string) (domain.FishInfo, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.FishInfo{}, false
	}
	return c.species[i], true
}

// Search returns species whose name contains the query,
// case-insensitively. An empty query returns everything.
func (c *Catalog) Search(query string) []domain.FishInfo {
	if query == "" {
		return c.All()
	}
	q := strings.ToLower(query)

	var out []domain.FishInfo
	for _, sp := range c.species {
		if strings.Contains(strings.ToLower(sp.Name), q) {
			out = append(out, sp)
		}
	}
	return out
}

// Count returns the number of species in the catalog
func (c *Catalog) Count() int { return len(c.species) }
