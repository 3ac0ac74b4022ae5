package domain

import "time"

// CatchRecord is a single diary entry: one caught fish with its
// measurements and optional media attachments
type CatchRecord struct {
	ID        string     `json:"id"`
	FishType  string     `json:"fish_type"`
	Weight    float64    `json:"weight"` // kg
	Length    float64    `json:"length"` // cm
	Photo     []byte     `json:"-"`
	Note      string     `json:"note,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	AudioRef  string     `json:"audio_ref,omitempty"`
	VideoRef  string     `json:"video_ref,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Year returns the four-digit year of the catch date, or "" when no date is set
func (c CatchRecord) Year() string {
	if c.Date == nil {
		return ""
	}
	return c.Date.Format("2006")
}

// FishingSpot is a saved map location
type FishingSpot struct {
	ID        string    `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	FishType  string    `json:"fish_type,omitempty"`
	Depth     float64   `json:"depth"` // m
	Gear      string    `json:"gear,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Coordinate is a latitude/longitude pair
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// FishingRoute is a named ordered sequence of coordinates
type FishingRoute struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Spots     []Coordinate `json:"spots"`
	CreatedAt time.Time    `json:"created_at"`
}

// GearItem is one entry of a checklist
type GearItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// GearChecklist is a named ordered list of gear items
type GearChecklist struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []GearItem `json:"items,omitempty"`
}

// FishInfo is one species of the static reference guide
type FishInfo struct {
	Name        string `json:"name"`
	Habitat     string `json:"habitat"`
	Bait        string `json:"bait"`
	Season      string `json:"season"`
	Description string `json:"description"`
}

// FishTypeCount is one bucket of the diary statistics view
type FishTypeCount struct {
	FishType string `json:"fish_type"`
	Count    int    `json:"count"`
}
