// Package booking drives a single court booking from date selection to the
// inserted booking record.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"padelfinder/internal/models"
)

// State is a step of the booking interaction.
type State string

const (
	StateIdle          State = "idle"
	StateSelectingDate State = "selecting_date"
	StateSelectingTime State = "selecting_time"
	StateSubmitting    State = "submitting"
	StateBooked        State = "booked"
	StateFailed        State = "failed"
)

// DateLayout is the ISO date format bookings are stored with.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidBooking is returned for malformed dates and slots.
	ErrInvalidBooking = errors.New("invalid booking")
	// ErrFlowFinished is returned when a finished flow is reused.
	ErrFlowFinished = errors.New("booking flow already finished")
)

// Inserter persists a booking. Status is left to the store's default.
type Inserter interface {
	InsertBooking(ctx context.Context, b models.Booking) (*models.Booking, error)
}

// Flow is one booking attempt for one court. It is not safe for concurrent use.
type Flow struct {
	inserter Inserter
	courtID  string
	userID   string

	state    State
	date     string
	timeSlot string
	booking  *models.Booking
	err      error
}

// NewFlow starts an idle flow for courtID on behalf of userID.
func NewFlow(inserter Inserter, courtID, userID string) *Flow {
	return &Flow{
		inserter: inserter,
		courtID:  courtID,
		userID:   userID,
		state:    StateIdle,
	}
}

// State returns the current step.
func (f *Flow) State() State { return f.state }

// Err returns the insert error of a failed flow.
func (f *Flow) Err() error { return f.err }

// Booking returns the confirmed booking of a booked flow.
func (f *Flow) Booking() *models.Booking { return f.booking }

// Open shows the calendar.
func (f *Flow) Open() error {
	if f.finished() {
		return ErrFlowFinished
	}
	if f.state == StateIdle {
		f.state = StateSelectingDate
	}
	return nil
}

// SelectDate records an ISO date. Any calendar date is accepted, past ones
// included. An empty date clears the selection.
func (f *Flow) SelectDate(date string) error {
	if f.finished() {
		return ErrFlowFinished
	}
	if date == "" {
		f.date = ""
		f.state = StateSelectingDate
		return nil
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidBooking, date)
	}

	f.date = date
	f.state = StateSelectingTime
	return nil
}

// SelectTime records an HH:MM slot label. An empty slot clears the selection.
func (f *Flow) SelectTime(slot string) error {
	if f.finished() {
		return ErrFlowFinished
	}
	if slot != "" && !ValidSlot(slot) {
		return fmt.Errorf("%w: time slot %q is not HH:MM", ErrInvalidBooking, slot)
	}
	f.timeSlot = slot
	if f.date != "" {
		f.state = StateSelectingTime
	}
	return nil
}

// Submit inserts the booking. Without both a date and a time slot it does
// nothing and reports submitted == false. A rejected insert moves the flow to
// StateFailed and is not retried.
func (f *Flow) Submit(ctx context.Context) (b *models.Booking, submitted bool, err error) {
	if f.finished() {
		return nil, false, ErrFlowFinished
	}
	if f.date == "" || f.timeSlot == "" {
		return nil, false, nil
	}

	f.state = StateSubmitting
	created, err := f.inserter.InsertBooking(ctx, models.Booking{
		CourtID:  f.courtID,
		UserID:   f.userID,
		Date:     f.date,
		TimeSlot: f.timeSlot,
	})
	if err != nil {
		f.state = StateFailed
		f.err = err
		return nil, true, err
	}

	f.state = StateBooked
	f.booking = created
	return created, true, nil
}

func (f *Flow) finished() bool {
	switch f.state {
	case StateSubmitting, StateBooked, StateFailed:
		return true
	}
	return false
}

// ValidSlot reports whether slot is an HH:MM time of day.
func ValidSlot(slot string) bool {
	if len(slot) != 5 {
		return false
	}
	_, err := time.Parse("15:04", slot)
	return err == nil
}
