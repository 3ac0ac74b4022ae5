package guide

import (
	"encoding/json"
	"fmt"

	"github.com/fishinghit/fishhit/internal/prefs"
)

// Prefs is the slice of the preference store favorites need
type Prefs interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// LoadFavorites reads the favorite species names from the preference
// store. A missing or unreadable value is an empty set, matching how the
// app treated a fresh install.
func LoadFavorites(p Prefs) []string {
	raw, ok := p.Get(prefs.KeyFavorites)
	if !ok {
		return nil
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil
	}
	return names
}

// SaveFavorites writes the favorite species names to the preference store
func SaveFavorites(p Prefs, names []string) error {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	return p.Set(prefs.KeyFavorites, string(raw))
}

// AddFavorite adds a species name to the persisted set; adding a name
// that is already present is a no-op
func AddFavorite(p Prefs, name string) error {
	names := LoadFavorites(p)
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return SaveFavorites(p, append(names, name))
}

// RemoveFavorite drops a species name from the persisted set
func RemoveFavorite(p Prefs, name string) error {
	names := LoadFavorites(p)
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return SaveFavorites(p, out)
}

// IsFavorite reports whether a species name is in the persisted set
func IsFavorite(p Prefs, name string) bool {
	for _, n := range LoadFavorites(p) {
		if n == name {
			return true
		}
	}
	return false
}
