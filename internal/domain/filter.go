package domain

import "strings"

// WaterType classifies a spot by the water its fish-type text mentions
type WaterType string

const (
	WaterAll   WaterType = "All"
	WaterFresh WaterType = "Freshwater"
	WaterSalt  WaterType = "Saltwater"
)

// CatchFilter narrows a diary listing. Empty fields always match, so the
// zero value is the unfiltered listing.
type CatchFilter struct {
	FishType string // case-insensitive substring of the fish type
	Year     string // exact four-digit year of the catch date
}

// Matches reports whether the catch passes every set predicate
func (f CatchFilter) Matches(c CatchRecord) bool {
	if f.FishType != "" && !containsFold(c.FishType, f.FishType) {
		return false
	}
	if f.Year != "" && c.Year() != f.Year {
		return false
	}
	return true
}

// SpotFilter narrows a spot listing. Empty fields always match.
type SpotFilter struct {
	FishType string    // case-insensitive substring of the fish type
	Water    WaterType // "" and WaterAll both match everything
}

// Matches reports whether the spot passes every set predicate
func (f SpotFilter) Matches(s FishingSpot) bool {
	if f.FishType != "" && !containsFold(s.FishType, f.FishType) {
		return false
	}
	if f.Water != "" && f.Water != WaterAll && !strings.Contains(s.FishType, string(f.Water)) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
