package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"padelfinder/internal/logging"
	"padelfinder/internal/session"
	"padelfinder/internal/store"
)

type signInRequest struct {
	IDToken string `json:"id_token"`
}

type signInResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	Redirect  string    `json:"redirect"`
}

// signInRedirect is where the client lands after signing in.
const signInRedirect = "/courts"

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.IDToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id_token is required"})
		return
	}

	sess, err := s.sessions.SignIn(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidToken) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("sign in")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to sign in"})
		return
	}

	writeJSON(w, http.StatusCreated, signInResponse{
		Token:     sess.Token,
		UserID:    sess.UserID,
		Email:     sess.Email,
		ExpiresAt: sess.ExpiresAt,
		Redirect:  signInRedirect,
	})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	if err := s.sessions.SignOut(r.Context(), token); err != nil {
		if errors.Is(err, store.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("sign out")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to sign out"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
