package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"padelfinder/internal/models"
)

// CreateSession opens a server-side session for a user verified by the auth
// provider and returns its opaque token.
func (s *Store) CreateSession(ctx context.Context, userID, email string, ttl time.Duration) (*models.Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	now := time.Now().UTC()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, email, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, session.Token, session.UserID, session.Email, session.ExpiresAt, session.CreatedAt); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return session, nil
}

// SessionByToken resolves a live session.
func (s *Store) SessionByToken(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	var session models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT token, user_id, email, expires_at, created_at
		FROM sessions
		WHERE token = $1 AND expires_at > NOW()
	`, token).Scan(&session.Token, &session.UserID, &session.Email, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	return &session, nil
}

// DeleteSession signs a session out. Unknown tokens are reported as ErrUnauthorized.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE token = $1
	`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return ErrUnauthorized
	}
	return nil
}
