// Package filter narrows a club list by price, rating, facilities and distance.
package filter

import (
	"encoding/json"
	"math"

	"padelfinder/internal/facilities"
	"padelfinder/internal/models"
)

// Range is an inclusive price interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MarshalJSON leaves out an open upper bound.
func (r Range) MarshalJSON() ([]byte, error) {
	out := struct {
		Min float64  `json:"min"`
		Max *float64 `json:"max,omitempty"`
	}{Min: r.Min}
	if !math.IsInf(r.Max, 1) {
		out.Max = &r.Max
	}
	return json.Marshal(out)
}

// Spec holds the active criteria. A nil or empty field is inactive.
type Spec struct {
	Price         *Range   `json:"price,omitempty"`
	MinRating     *float64 `json:"min_rating,omitempty"`
	MaxDistanceKm *float64 `json:"max_distance_km,omitempty"`
	Facilities    []string `json:"facilities,omitempty"` // filter ids, see facilities.Resolve
}

// Active reports whether any criterion is set.
func (s Spec) Active() bool {
	return s.Price != nil || s.MinRating != nil || s.MaxDistanceKm != nil || len(s.Facilities) > 0
}

// Apply returns the clubs satisfying every active criterion, in input order.
// The input slice is not modified.
func Apply(clubs []models.Club, spec Spec) []models.Club {
	out := make([]models.Club, 0, len(clubs))

	var (
		names       []string
		unsatisfied bool
	)
	for _, id := range spec.Facilities {
		name, ok := facilities.Resolve(id)
		if !ok {
			unsatisfied = true
			break
		}
		names = append(names, name)
	}

	for _, club := range clubs {
		if spec.Price != nil && !anyCourt(club, func(c models.Court) bool {
			return c.PricePerHour >= spec.Price.Min && c.PricePerHour <= spec.Price.Max
		}) {
			continue
		}

		if spec.MinRating != nil && !anyCourt(club, func(c models.Court) bool {
			return c.Rating >= *spec.MinRating
		}) {
			continue
		}

		if len(spec.Facilities) > 0 {
			if unsatisfied || !anyCourt(club, func(c models.Court) bool { return c.HasFacilities(names) }) {
				continue
			}
		}

		// Unknown distance passes; Infinite never does.
		if spec.MaxDistanceKm != nil && club.Distance != nil && !(*club.Distance <= *spec.MaxDistanceKm) {
			continue
		}

		out = append(out, club)
	}

	return out
}

func anyCourt(club models.Club, pred func(models.Court) bool) bool {
	for _, court := range club.Courts {
		if pred(court) {
			return true
		}
	}
	return false
}

// Default bounds of the filter sidebar controls.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 100
)

// FromSentinels builds a Spec from the sidebar's raw control values, where the
// default value of each control means "no filter". A price range of exactly
// [0,100], a rating of 0 and a max range of 0 are therefore inactive.
func FromSentinels(minPrice, maxPrice, rating, maxRange float64, facilityIDs []string) Spec {
	var spec Spec
	if minPrice != DefaultMinPrice || maxPrice != DefaultMaxPrice {
		spec.Price = &Range{Min: minPrice, Max: maxPrice}
	}
	if rating > 0 {
		spec.MinRating = &rating
	}
	if maxRange > 0 {
		spec.MaxDistanceKm = &maxRange
	}
	if len(facilityIDs) > 0 {
		spec.Facilities = append([]string(nil), facilityIDs...)
	}
	return spec
}
