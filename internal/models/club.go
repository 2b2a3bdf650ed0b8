package models

import "time"

// CourtType distinguishes covered courts from open-air ones
type CourtType string

const (
	CourtTypeIndoor  CourtType = "indoor"
	CourtTypeOutdoor CourtType = "outdoor"
)

// Club represents a padel venue with one or more courts
type Club struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Location  *string   `json:"location,omitempty"` // Free-text address, optional
	Courts    []Court   `json:"courts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated by the distance resolution pass (not stored in clubs table).
	// nil means unknown.
	Distance *float64 `json:"distance_km,omitempty"`
}

// Court represents a single bookable playing surface
type Court struct {
	ID           string     `json:"id"`
	ClubID       string     `json:"club_id"`
	Name         string     `json:"name"`
	Type         CourtType  `json:"type"`
	PricePerHour float64    `json:"price_per_hour"`
	Rating       float64    `json:"rating"` // 0 when unrated
	Description  string     `json:"description,omitempty"`
	City         string     `json:"city"`
	Facilities   []Facility `json:"facilities"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Populated via JOIN on court detail reads
	Club *Club `json:"club,omitempty"`
}

// Facility is an amenity attached to a court
type Facility struct {
	ID      string `json:"id"`
	CourtID string `json:"court_id"`
	Name    string `json:"name"`
}

// HasFacilities reports whether the court carries every named facility.
func (c Court) HasFacilities(names []string) bool {
	have := make(map[string]struct{}, len(c.Facilities))
	for _, f := range c.Facilities {
		have[f.Name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := have[name]; !ok {
			return false
		}
	}
	return true
}
