package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"padelfinder/internal/models"
)

const courtsByClubQuery = `
		SELECT c.id, c.club_id, c.name, c.type, c.price_per_hour, c.rating, c.description, c.city,
		       c.created_at, c.updated_at,
		       COALESCE(array_agg(f.id::text ORDER BY f.name) FILTER (WHERE f.id IS NOT NULL), '{}'),
		       COALESCE(array_agg(f.name ORDER BY f.name) FILTER (WHERE f.id IS NOT NULL), '{}')
		FROM courts c
		LEFT JOIN court_facilities f ON f.court_id = c.id
		WHERE c.club_id = ANY($1)
		GROUP BY c.id
		ORDER BY c.name ASC
	`

const courtWithClubColumns = `
		SELECT c.id, c.club_id, c.name, c.type, c.price_per_hour, c.rating, c.description, c.city,
		       c.created_at, c.updated_at,
		       COALESCE(array_agg(f.id::text ORDER BY f.name) FILTER (WHERE f.id IS NOT NULL), '{}'),
		       COALESCE(array_agg(f.name ORDER BY f.name) FILTER (WHERE f.id IS NOT NULL), '{}'),
		       cl.id, cl.name, cl.city, cl.location
		FROM courts c
		JOIN clubs cl ON cl.id = c.club_id
		LEFT JOIN court_facilities f ON f.court_id = c.id
	`

const listCourtsQuery = courtWithClubColumns + `
		GROUP BY c.id, cl.id
		ORDER BY cl.name ASC, c.name ASC
	`

const getCourtQuery = courtWithClubColumns + `
		WHERE c.id = $1
		GROUP BY c.id, cl.id
	`

// ListCourts returns every court with its club and facilities.
func (s *Store) ListCourts(ctx context.Context) ([]models.Court, error) {
	rows, err := s.db.QueryContext(ctx, listCourtsQuery)
	if err != nil {
		return nil, fmt.Errorf("select courts: %w", err)
	}
	defer rows.Close()

	courts := []models.Court{}
	for rows.Next() {
		court, err := scanCourtWithClub(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, court)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courts: %w", err)
	}

	return courts, nil
}

// GetCourt returns a court with its club and facilities.
func (s *Store) GetCourt(ctx context.Context, id string) (*models.Court, error) {
	if !validID(id) {
		return nil, ErrCourtNotFound
	}

	court, err := scanCourtWithClub(s.db.QueryRowContext(ctx, getCourtQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &court, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourtWithClub(row rowScanner) (models.Court, error) {
	var (
		court        models.Court
		club         models.Club
		facilityIDs  []string
		facilityName []string
		location     sql.NullString
	)

	err := row.Scan(
		&court.ID, &court.ClubID, &court.Name, &court.Type, &court.PricePerHour, &court.Rating,
		&court.Description, &court.City, &court.CreatedAt, &court.UpdatedAt,
		pq.Array(&facilityIDs), pq.Array(&facilityName),
		&club.ID, &club.Name, &club.City, &location,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Court{}, err
		}
		return models.Court{}, fmt.Errorf("scan court: %w", err)
	}

	club.Location = nullableString(location)
	court.Club = &club
	court.Facilities = zipFacilities(court.ID, facilityIDs, facilityName)
	return court, nil
}

// courtsForClubs loads the courts of the given clubs, keyed by club id.
func (s *Store) courtsForClubs(ctx context.Context, clubIDs []string) (map[string][]models.Court, error) {
	byClub := make(map[string][]models.Court, len(clubIDs))
	if len(clubIDs) == 0 {
		return byClub, nil
	}

	rows, err := s.db.QueryContext(ctx, courtsByClubQuery, pq.Array(clubIDs))
	if err != nil {
		return nil, fmt.Errorf("select courts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			court        models.Court
			facilityIDs  []string
			facilityName []string
		)
		if err := rows.Scan(
			&court.ID, &court.ClubID, &court.Name, &court.Type, &court.PricePerHour, &court.Rating,
			&court.Description, &court.City, &court.CreatedAt, &court.UpdatedAt,
			pq.Array(&facilityIDs), pq.Array(&facilityName),
		); err != nil {
			return nil, fmt.Errorf("scan court: %w", err)
		}
		court.Facilities = zipFacilities(court.ID, facilityIDs, facilityName)
		byClub[court.ClubID] = append(byClub[court.ClubID], court)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courts: %w", err)
	}

	return byClub, nil
}

func zipFacilities(courtID string, ids, names []string) []models.Facility {
	facilities := make([]models.Facility, 0, len(names))
	for i, name := range names {
		f := models.Facility{CourtID: courtID, Name: name}
		if i < len(ids) {
			f.ID = ids[i]
		}
		facilities = append(facilities, f)
	}
	return facilities
}
