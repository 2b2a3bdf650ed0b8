package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"padelfinder/internal/models"
)

// InsertBooking stores a single booking row. The status column keeps its
// database default and is returned with the generated id.
func (s *Store) InsertBooking(ctx context.Context, b models.Booking) (*models.Booking, error) {
	if !validID(b.CourtID) {
		return nil, ErrCourtNotFound
	}

	created := b
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO bookings (id, court_id, user_id, date, time_slot)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at
	`, uuid.NewString(), b.CourtID, b.UserID, b.Date, b.TimeSlot).Scan(&created.ID, &created.Status, &created.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, ErrBookingConflict
		case isForeignKeyViolation(err):
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	return &created, nil
}

// ListBookingsByUser returns a user's bookings, soonest first.
func (s *Store) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, court_id, user_id, date::text, time_slot, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY date ASC, time_slot ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.CourtID, &b.UserID, &b.Date, &b.TimeSlot, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}
