package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"padelfinder/internal/models"
)

const listClubsQuery = `
		SELECT id, name, city, location, created_at, updated_at
		FROM clubs
		ORDER BY name ASC
	`

const listClubsByCityQuery = `
		SELECT id, name, city, location, created_at, updated_at
		FROM clubs
		WHERE city ILIKE $1
		ORDER BY name ASC
	`

const getClubQuery = `
		SELECT id, name, city, location, created_at, updated_at
		FROM clubs
		WHERE id = $1
	`

// ListClubs returns clubs with their courts and court facilities. A non-empty
// city restricts the result to clubs whose city contains it, case-insensitively.
func (s *Store) ListClubs(ctx context.Context, city string) ([]models.Club, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if city = strings.TrimSpace(city); city != "" {
		rows, err = s.db.QueryContext(ctx, listClubsByCityQuery, "%"+escapeLike(city)+"%")
	} else {
		rows, err = s.db.QueryContext(ctx, listClubsQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	clubs := []models.Club{}
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate clubs: %w", err)
	}
	rows.Close()

	ids := make([]string, 0, len(clubs))
	for _, club := range clubs {
		ids = append(ids, club.ID)
	}

	courts, err := s.courtsForClubs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range clubs {
		clubs[i].Courts = nonNilCourts(courts[clubs[i].ID])
	}

	return clubs, nil
}

// GetClub returns a single club with its courts and facilities.
func (s *Store) GetClub(ctx context.Context, id string) (*models.Club, error) {
	if !validID(id) {
		return nil, ErrClubNotFound
	}

	club, err := scanClub(s.db.QueryRowContext(ctx, getClubQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	courts, err := s.courtsForClubs(ctx, []string{club.ID})
	if err != nil {
		return nil, err
	}
	club.Courts = nonNilCourts(courts[club.ID])

	return &club, nil
}

func scanClub(row rowScanner) (models.Club, error) {
	var (
		club     models.Club
		location sql.NullString
	)
	if err := row.Scan(&club.ID, &club.Name, &club.City, &location, &club.CreatedAt, &club.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Club{}, err
		}
		return models.Club{}, fmt.Errorf("scan club: %w", err)
	}
	club.Location = nullableString(location)
	return club, nil
}

func nonNilCourts(courts []models.Court) []models.Court {
	if courts == nil {
		return []models.Court{}
	}
	return courts
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
