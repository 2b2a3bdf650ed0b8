package sessions

import (
	"context"
	"time"

	"padelfinder/internal/models"
	"padelfinder/internal/session"
)

// Store captures the persistence needs for session workflows.
type Store interface {
	CreateSession(ctx context.Context, userID, email string, ttl time.Duration) (*models.Session, error)
	SessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// Verifier checks auth-provider tokens.
type Verifier interface {
	Verify(token string) (session.Identity, error)
}

// Service reacts to sign-in and sign-out and resolves session tokens.
type Service interface {
	SignIn(ctx context.Context, providerToken string) (*models.Session, error)
	SignOut(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

type service struct {
	store    Store
	verifier Verifier
	ttl      time.Duration
}

// New constructs a Service issuing sessions that live for ttl.
func New(store Store, verifier Verifier, ttl time.Duration) Service {
	return &service{store: store, verifier: verifier, ttl: ttl}
}

func (s *service) SignIn(ctx context.Context, providerToken string) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	identity, err := s.verifier.Verify(providerToken)
	if err != nil {
		return nil, err
	}
	return s.store.CreateSession(ctx, identity.UserID, identity.Email, s.ttl)
}

func (s *service) SignOut(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSession(ctx, token)
}

func (s *service) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SessionByToken(ctx, token)
}
