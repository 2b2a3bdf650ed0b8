package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"padelfinder/internal/app/bookings"
	"padelfinder/internal/booking"
	"padelfinder/internal/logging"
	"padelfinder/internal/models"
	"padelfinder/internal/session"
	"padelfinder/internal/store"
)

func (s *Server) handleListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := s.courts.List(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("list courts")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load courts"})
		return
	}

	writeJSON(w, http.StatusOK, courts)
}

func (s *Server) handleGetCourt(w http.ResponseWriter, r *http.Request) {
	court, err := s.courts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrCourtNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "court not found"})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("get court")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load court"})
		return
	}

	writeJSON(w, http.StatusOK, court)
}

func (s *Server) handleCourtSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	slots, err := s.bookings.Slots(r.Context(), r.PathValue("id"), date)
	if err != nil {
		s.writeBookingError(w, r, err, "list slots")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Date  string        `json:"date,omitempty"`
		Slots []models.Slot `json:"slots"`
	}{Date: date, Slots: slots})
}

type bookingRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "sign in to book a court"})
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	created, err := s.bookings.Book(r.Context(), sess, bookings.Request{
		CourtID:  r.PathValue("id"),
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
	})
	if err != nil {
		s.writeBookingError(w, r, err, "create booking")
		return
	}
	if created == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "select a date and a time slot"})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	list, err := s.bookings.ListMine(r.Context(), sess)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("list bookings")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load bookings"})
		return
	}
	if list == nil {
		list = []models.Booking{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) writeBookingError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, store.ErrCourtNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "court not found"})
	case errors.Is(err, booking.ErrInvalidBooking):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrBookingConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "slot already booked"})
	default:
		logging.WithContext(r.Context()).Error().Err(err).Msg(action)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to book court"})
	}
}
