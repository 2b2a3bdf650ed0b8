package httpapi

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"padelfinder/internal/app/clubs"
	"padelfinder/internal/facilities"
	"padelfinder/internal/filter"
	"padelfinder/internal/logging"
	"padelfinder/internal/models"
	"padelfinder/internal/search"
	"padelfinder/internal/session"
	"padelfinder/internal/store"
)

type clubSearchResponse struct {
	Clubs      []models.Club `json:"clubs"`
	Count      int           `json:"count"`
	Query      search.Query  `json:"query"`
	Href       string        `json:"href"`
	Filters    filter.Spec   `json:"filters"`
	Generation uint64        `json:"generation"`
	ClientGen  string        `json:"gen,omitempty"`
}

func (s *Server) handleSearchClubs(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	query, err := search.Parse(values)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	spec, err := filter.FromQuery(values)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := r.Context()
	key := searchKey(r)
	var gen uint64
	if key != "" {
		var done func()
		ctx, gen, done = s.supersede.Begin(ctx, key)
		defer done()
	}

	results, err := s.clubs.Search(ctx, clubs.SearchParams{
		Query:  query,
		Filter: spec,
		Origin: values.Get("origin"),
	})
	superseded := key != "" && !s.supersede.IsCurrent(key, gen)
	if superseded {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "search superseded by a newer request"})
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("search clubs")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load clubs"})
		return
	}

	writeJSON(w, http.StatusOK, clubSearchResponse{
		Clubs:      finiteDistances(results),
		Count:      len(results),
		Query:      query,
		Href:       query.Href(),
		Filters:    spec,
		Generation: gen,
		ClientGen:  values.Get("gen"),
	})
}

// searchKey identifies the caller whose previous search a new one replaces.
func searchKey(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Client-ID")); id != "" {
		return "client:" + id
	}
	if sess, ok := session.FromContext(r.Context()); ok {
		return "session:" + sess.Token
	}
	return ""
}

// finiteDistances clears distances JSON cannot represent.
func finiteDistances(clubs []models.Club) []models.Club {
	for i := range clubs {
		if d := clubs[i].Distance; d != nil && math.IsInf(*d, 0) {
			clubs[i].Distance = nil
		}
	}
	return clubs
}

func (s *Server) handleGetClub(w http.ResponseWriter, r *http.Request) {
	club, err := s.clubs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrClubNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "club not found"})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("get club")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load club"})
		return
	}

	writeJSON(w, http.StatusOK, club)
}

func (s *Server) handleFacilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Facilities []facilities.Option `json:"facilities"`
	}{Facilities: facilities.Options()})
}

func (s *Server) handleComposeSearch(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	query := search.Clear()
	if values.Get("clear") != "1" {
		var err error
		query, err = search.Parse(values)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, struct {
		Query search.Query `json:"query"`
		Href  string       `json:"href"`
	}{Query: query, Href: query.Href()})
}

func (s *Server) handleSearchTimes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Periods       []search.Period `json:"periods"`
		SpecificTimes []string        `json:"specific_times"`
	}{Periods: search.Periods, SpecificTimes: search.SpecificTimes()})
}
