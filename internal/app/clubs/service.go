package clubs

import (
	"context"
	"strings"

	"padelfinder/internal/filter"
	"padelfinder/internal/models"
	"padelfinder/internal/search"
)

// Store captures the persistence needs for club workflows.
type Store interface {
	ListClubs(ctx context.Context, city string) ([]models.Club, error)
	GetClub(ctx context.Context, id string) (*models.Club, error)
}

// DistanceResolver fills in Club.Distance relative to an origin.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin string, clubs []models.Club) ([]models.Club, error)
}

// SearchParams is a club search as submitted from the search page.
type SearchParams struct {
	Query  search.Query
	Filter filter.Spec
	// Origin is the place distances are measured from. Empty falls back to
	// Query.Location.
	Origin string
}

// Service coordinates club discovery.
type Service interface {
	Search(ctx context.Context, params SearchParams) ([]models.Club, error)
	Get(ctx context.Context, id string) (*models.Club, error)
}

type service struct {
	store    Store
	resolver DistanceResolver
}

// New constructs a Service. resolver may be nil, in which case distances stay
// unknown and a distance criterion keeps every club.
func New(store Store, resolver DistanceResolver) Service {
	return &service{store: store, resolver: resolver}
}

func (s *service) Search(ctx context.Context, params SearchParams) ([]models.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clubs, err := s.store.ListClubs(ctx, params.Query.Location)
	if err != nil {
		return nil, err
	}

	origin := strings.TrimSpace(params.Origin)
	if origin == "" {
		origin = params.Query.Location
	}
	if params.Filter.MaxDistanceKm != nil && origin != "" && s.resolver != nil {
		clubs, err = s.resolver.Resolve(ctx, origin, clubs)
		if err != nil {
			return nil, err
		}
	}

	return filter.Apply(clubs, params.Filter), nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetClub(ctx, id)
}
