package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"padelfinder/internal/logging"
	"padelfinder/internal/maps"
)

func (s *Server) handleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "lat and lng must be valid coordinates"})
		return
	}

	city, err := s.geo.ReverseGeocodeCity(r.Context(), lat, lng)
	if err != nil {
		if errors.Is(err, maps.ErrNoCity) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no city found for location"})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("reverse geocode")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "location lookup failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"city": city})
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	input := strings.TrimSpace(r.URL.Query().Get("input"))
	if input == "" {
		writeJSON(w, http.StatusOK, []maps.Prediction{})
		return
	}

	predictions, err := s.geo.Autocomplete(r.Context(), input)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("autocomplete")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "autocomplete failed"})
		return
	}
	if predictions == nil {
		predictions = []maps.Prediction{}
	}

	writeJSON(w, http.StatusOK, predictions)
}
