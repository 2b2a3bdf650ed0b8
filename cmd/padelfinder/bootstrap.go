package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"padelfinder/internal/models"
)

type seedCourt struct {
	Name        string
	Type        models.CourtType
	Price       float64
	Rating      float64
	Description string
	Facilities  []string
}

type seedClub struct {
	Name     string
	City     string
	Location string
	Courts   []seedCourt
}

var demoClubs = []seedClub{
	{
		Name:     "Padel Club Amsterdam",
		City:     "Amsterdam",
		Location: "Jan van Galenstraat 335, Amsterdam",
		Courts: []seedCourt{
			{
				Name:        "Court 1",
				Type:        models.CourtTypeIndoor,
				Price:       40,
				Rating:      4.5,
				Description: "Panoramic glass indoor court",
				Facilities:  []string{"Changing Rooms", "Parking", "Restaurant", "Equipment Rental"},
			},
			{
				Name:        "Court 2",
				Type:        models.CourtTypeOutdoor,
				Price:       30,
				Rating:      4.0,
				Description: "Outdoor court with floodlights",
				Facilities:  []string{"Changing Rooms", "Bike Storage"},
			},
		},
	},
	{
		Name:     "Rotterdam Padel Center",
		City:     "Rotterdam",
		Location: "Kralingseweg 224, Rotterdam",
		Courts: []seedCourt{
			{
				Name:        "Center Court",
				Type:        models.CourtTypeIndoor,
				Price:       45,
				Rating:      4.8,
				Description: "Competition court with spectator seating",
				Facilities:  []string{"Changing Rooms", "Parking", "Padel Shop", "Wheelchair Access", "Charging Points"},
			},
			{
				Name:        "Court 4",
				Type:        models.CourtTypeOutdoor,
				Price:       25,
				Rating:      3.9,
				Description: "Outdoor court next to the park",
				Facilities:  []string{"Parking"},
			},
		},
	},
}

// bootstrapDemoData inserts the demo clubs when the clubs table exists and is empty.
func bootstrapDemoData(ctx context.Context, db *sql.DB) error {
	clubsTableExists, err := tableExists(ctx, db, "clubs")
	if err != nil {
		return fmt.Errorf("check clubs table: %w", err)
	}
	if !clubsTableExists {
		log.Warn().Msg("clubs table missing, run migrations before seeding")
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clubs`).Scan(&count); err != nil {
		return fmt.Errorf("count clubs: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, club := range demoClubs {
		clubID := uuid.NewString()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clubs (id, name, city, location)
			VALUES ($1, $2, $3, $4)
		`, clubID, club.Name, club.City, club.Location); err != nil {
			return fmt.Errorf("insert demo club %q: %w", club.Name, err)
		}

		for _, court := range club.Courts {
			courtID := uuid.NewString()
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO courts (id, club_id, name, type, price_per_hour, rating, description, city)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, courtID, clubID, court.Name, string(court.Type), court.Price, court.Rating, court.Description, club.City); err != nil {
				return fmt.Errorf("insert demo court %q: %w", court.Name, err)
			}

			for _, name := range court.Facilities {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO court_facilities (id, court_id, name)
					VALUES ($1, $2, $3)
				`, uuid.NewString(), courtID, name); err != nil {
					return fmt.Errorf("insert facility %q for %q: %w", name, court.Name, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	log.Info().Int("clubs", len(demoClubs)).Msg("seeded demo clubs")
	return nil
}

type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryRower, table string) (bool, error) {
	var name sql.NullString
	if err := q.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
