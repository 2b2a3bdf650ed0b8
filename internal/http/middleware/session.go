package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"padelfinder/internal/logging"
	"padelfinder/internal/models"
	"padelfinder/internal/session"
	"padelfinder/internal/store"
)

// SessionResolver turns a bearer token into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

// Sessions places the caller's session in the request context when the
// request carries a valid bearer session token. Requests without one pass
// through anonymously; handlers that need a session check session.FromContext.
func Sessions(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := resolver.Resolve(r.Context(), token)
			switch {
			case err == nil:
				ctx := session.WithSession(r.Context(), *sess)
				ctx = logging.WithUserID(ctx, sess.UserID)
				r = r.WithContext(ctx)
			case errors.Is(err, store.ErrUnauthorized):
				// anonymous
			default:
				logging.WithContext(r.Context()).Error().Err(err).Msg("resolve session")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
