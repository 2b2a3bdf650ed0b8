package filter

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidParameter wraps malformed filter query parameters.
var ErrInvalidParameter = errors.New("invalid filter parameter")

// FromQuery parses minPrice, maxPrice, rating, maxDistance and facilities.
// Absent parameters leave the criterion unset; present ones are applied even at
// boundary values. With legacy=1 the sidebar sentinel rules of FromSentinels
// apply instead.
func FromQuery(values url.Values) (Spec, error) {
	minPrice, hasMin, err := parseFloat(values, "minPrice")
	if err != nil {
		return Spec{}, err
	}
	maxPrice, hasMax, err := parseFloat(values, "maxPrice")
	if err != nil {
		return Spec{}, err
	}
	rating, hasRating, err := parseFloat(values, "rating")
	if err != nil {
		return Spec{}, err
	}
	maxDistance, hasDistance, err := parseFloat(values, "maxDistance")
	if err != nil {
		return Spec{}, err
	}
	facilityIDs := parseList(values["facilities"])

	if values.Get("legacy") == "1" {
		if !hasMin {
			minPrice = DefaultMinPrice
		}
		if !hasMax {
			maxPrice = DefaultMaxPrice
		}
		return FromSentinels(minPrice, maxPrice, rating, maxDistance, facilityIDs), nil
	}

	var spec Spec
	if hasMin || hasMax {
		r := Range{Min: 0, Max: math.Inf(1)}
		if hasMin {
			r.Min = minPrice
		}
		if hasMax {
			r.Max = maxPrice
		}
		if r.Min > r.Max {
			return Spec{}, fmt.Errorf("%w: minPrice exceeds maxPrice", ErrInvalidParameter)
		}
		spec.Price = &r
	}
	if hasRating {
		spec.MinRating = &rating
	}
	if hasDistance {
		if maxDistance < 0 {
			return Spec{}, fmt.Errorf("%w: maxDistance must not be negative", ErrInvalidParameter)
		}
		spec.MaxDistanceKm = &maxDistance
	}
	spec.Facilities = facilityIDs
	return spec, nil
}

func parseFloat(values url.Values, key string) (float64, bool, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%w: %s=%q", ErrInvalidParameter, key, raw)
	}
	return v, true, nil
}

// parseList accepts repeated and comma separated values.
func parseList(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
