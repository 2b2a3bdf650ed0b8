package courts

import (
	"context"

	"padelfinder/internal/models"
)

// Store captures the persistence needs for court workflows.
type Store interface {
	ListCourts(ctx context.Context) ([]models.Court, error)
	GetCourt(ctx context.Context, id string) (*models.Court, error)
}

// Service exposes court listings and detail.
type Service interface {
	List(ctx context.Context) ([]models.Court, error)
	Get(ctx context.Context, id string) (*models.Court, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.Court, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListCourts(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*models.Court, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetCourt(ctx, id)
}
