package distance

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"padelfinder/internal/logging"
	"padelfinder/internal/models"
)

// Resolver fills in Club.Distance ahead of filtering. Lookups are memoized
// through the cache and run with bounded concurrency under the caller's
// context.
type Resolver struct {
	estimator *Estimator
	cache     Cache
	limit     int
}

// NewResolver builds a resolver issuing at most limit concurrent lookups.
func NewResolver(estimator *Estimator, cache Cache, limit int) *Resolver {
	if limit < 1 {
		limit = 1
	}
	return &Resolver{estimator: estimator, cache: cache, limit: limit}
}

// Resolve returns a copy of clubs with Distance set from origin. Clubs without
// a location keep a nil distance. Cancelling ctx stops issuing new lookups and
// returns ctx.Err().
func (r *Resolver) Resolve(ctx context.Context, origin string, clubs []models.Club) ([]models.Club, error) {
	out := make([]models.Club, len(clubs))
	copy(out, clubs)

	destinations := make(map[string]struct{})
	for _, club := range out {
		if club.Location != nil && *club.Location != "" {
			destinations[*club.Location] = struct{}{}
		}
	}

	var (
		mu      sync.Mutex
		results = make(map[string]float64, len(destinations))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for destination := range destinations {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			km := r.lookup(gctx, origin, destination)
			if err := gctx.Err(); err != nil {
				return err
			}

			mu.Lock()
			results[destination] = km
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Location == nil || *out[i].Location == "" {
			out[i].Distance = nil
			continue
		}
		km := results[*out[i].Location]
		out[i].Distance = &km
	}

	return out, nil
}

func (r *Resolver) lookup(ctx context.Context, origin, destination string) float64 {
	logger := logging.WithContext(ctx)

	if r.cache != nil {
		km, ok, err := r.cache.Get(ctx, origin, destination)
		if err != nil {
			logger.Warn().Err(err).Msg("distance cache read failed")
		} else if ok {
			return km
		}
	}

	km := r.estimator.Estimate(ctx, origin, destination)

	// A lookup cut short by cancellation says nothing about the route.
	if ctx.Err() != nil || r.cache == nil {
		return km
	}
	if err := r.cache.Set(ctx, origin, destination, km); err != nil {
		logger.Warn().Err(err).Msg("distance cache write failed")
	}
	return km
}
