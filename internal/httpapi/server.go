package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"padelfinder/internal/app/bookings"
	"padelfinder/internal/app/clubs"
	"padelfinder/internal/http/middleware"
	"padelfinder/internal/maps"
	"padelfinder/internal/models"
	"padelfinder/internal/search"
)

// ClubService describes club discovery workflows.
type ClubService interface {
	Search(ctx context.Context, params clubs.SearchParams) ([]models.Club, error)
	Get(ctx context.Context, id string) (*models.Club, error)
}

// CourtService exposes court listings and detail.
type CourtService interface {
	List(ctx context.Context) ([]models.Court, error)
	Get(ctx context.Context, id string) (*models.Court, error)
}

// BookingService coordinates availability and booking submission.
type BookingService interface {
	Slots(ctx context.Context, courtID, date string) ([]models.Slot, error)
	Book(ctx context.Context, sess models.Session, req bookings.Request) (*models.Booking, error)
	ListMine(ctx context.Context, sess models.Session) ([]models.Booking, error)
}

// SessionService reacts to sign-in and sign-out.
type SessionService interface {
	SignIn(ctx context.Context, providerToken string) (*models.Session, error)
	SignOut(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

// GeoService resolves device coordinates and partial place names.
type GeoService interface {
	ReverseGeocodeCity(ctx context.Context, lat, lng float64) (string, error)
	Autocomplete(ctx context.Context, input string) ([]maps.Prediction, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	clubs     ClubService
	courts    CourtService
	bookings  BookingService
	sessions  SessionService
	geo       GeoService
	supersede *search.Supersede
}

// New configures a Server with the given services.
func New(
	clubs ClubService,
	courts CourtService,
	bookings BookingService,
	sessions SessionService,
	geo GeoService,
	supersede *search.Supersede,
) *Server {
	if supersede == nil {
		supersede = search.NewSupersede()
	}
	return &Server{
		clubs:     clubs,
		courts:    courts,
		bookings:  bookings,
		sessions:  sessions,
		geo:       geo,
		supersede: supersede,
	}
}

// Routes exposes the HTTP handlers for discovery, booking and sessions.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Discovery
	mux.HandleFunc("GET /api/v1/clubs", s.handleSearchClubs)
	mux.HandleFunc("GET /api/v1/clubs/{id}", s.handleGetClub)
	mux.HandleFunc("GET /api/v1/facilities", s.handleFacilities)
	mux.HandleFunc("GET /api/v1/search/compose", s.handleComposeSearch)
	mux.HandleFunc("GET /api/v1/search/times", s.handleSearchTimes)

	// Courts and booking
	mux.HandleFunc("GET /api/v1/courts", s.handleListCourts)
	mux.HandleFunc("GET /api/v1/courts/{id}", s.handleGetCourt)
	mux.HandleFunc("GET /api/v1/courts/{id}/slots", s.handleCourtSlots)
	mux.HandleFunc("POST /api/v1/courts/{id}/bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /api/v1/me/bookings", s.handleMyBookings)

	// Location
	mux.HandleFunc("GET /api/v1/geo/reverse", s.handleReverseGeocode)
	mux.HandleFunc("GET /api/v1/geo/autocomplete", s.handleAutocomplete)

	// Sessions
	mux.HandleFunc("POST /api/v1/auth/session", s.handleSignIn)
	mux.HandleFunc("DELETE /api/v1/auth/session", s.handleSignOut)

	return middleware.Sessions(s.sessions)(mux)
}

type errorResponse struct {
	Error string `json:"error"`
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
