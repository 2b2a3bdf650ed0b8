// Package distance estimates driving distances between a search origin and
// club locations.
package distance

import (
	"context"
	"math"

	"padelfinder/internal/logging"
)

// Infinite is the distance reported when no route could be determined. It
// fails every finite maximum-distance criterion.
var Infinite = math.Inf(1)

// Router returns driving distances in kilometres.
type Router interface {
	DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

// Estimator turns router failures into Infinite.
type Estimator struct {
	router Router
}

// NewEstimator wraps router.
func NewEstimator(router Router) *Estimator {
	return &Estimator{router: router}
}

// Estimate returns the driving distance in kilometres, or Infinite when the
// route lookup fails for any reason. Each call is a network round trip.
func (e *Estimator) Estimate(ctx context.Context, origin, destination string) float64 {
	km, err := e.router.DrivingDistanceKm(ctx, origin, destination)
	if err != nil {
		logging.WithContext(ctx).Warn().
			Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Msg("distance lookup failed")
		return Infinite
	}
	return km
}
