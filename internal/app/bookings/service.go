package bookings

import (
	"context"
	"fmt"
	"time"

	"padelfinder/internal/booking"
	"padelfinder/internal/logging"
	"padelfinder/internal/models"
)

// Store captures the persistence needs for booking workflows.
type Store interface {
	GetCourt(ctx context.Context, id string) (*models.Court, error)
	InsertBooking(ctx context.Context, b models.Booking) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

// Publisher announces stored bookings.
type Publisher interface {
	BookingCreated(ctx context.Context, b models.Booking) error
}

// Request is a booking submission for one court.
type Request struct {
	CourtID  string
	Date     string
	TimeSlot string
}

// Service coordinates court availability and booking submission.
type Service interface {
	Slots(ctx context.Context, courtID, date string) ([]models.Slot, error)
	// Book submits req for the signed-in user. A request missing its date or
	// time slot inserts nothing and returns (nil, nil).
	Book(ctx context.Context, sess models.Session, req Request) (*models.Booking, error)
	ListMine(ctx context.Context, sess models.Session) ([]models.Booking, error)
}

type service struct {
	store     Store
	publisher Publisher
}

// New constructs a Service. publisher may be nil.
func New(store Store, publisher Publisher) Service {
	return &service{store: store, publisher: publisher}
}

func (s *service) Slots(ctx context.Context, courtID, date string) ([]models.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if date != "" {
		if _, err := time.Parse(booking.DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", booking.ErrInvalidBooking, date)
		}
	}
	if _, err := s.store.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}
	return booking.Slots(), nil
}

func (s *service) Book(ctx context.Context, sess models.Session, req Request) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetCourt(ctx, req.CourtID); err != nil {
		return nil, err
	}

	flow := booking.NewFlow(s.store, req.CourtID, sess.UserID)
	if err := flow.Open(); err != nil {
		return nil, err
	}
	if err := flow.SelectDate(req.Date); err != nil {
		return nil, err
	}
	if err := flow.SelectTime(req.TimeSlot); err != nil {
		return nil, err
	}

	created, submitted, err := flow.Submit(ctx)
	if err != nil {
		logging.WithContext(ctx).Warn().
			Err(err).
			Str("court_id", req.CourtID).
			Str("date", req.Date).
			Str("time_slot", req.TimeSlot).
			Msg("booking rejected")
		return nil, err
	}
	if !submitted {
		return nil, nil
	}

	if s.publisher != nil {
		if err := s.publisher.BookingCreated(ctx, *created); err != nil {
			logging.WithContext(ctx).Error().
				Err(err).
				Str("booking_id", created.ID).
				Msg("publish booking.created failed")
		}
	}

	return created, nil
}

func (s *service) ListMine(ctx context.Context, sess models.Session) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListBookingsByUser(ctx, sess.UserID)
}
