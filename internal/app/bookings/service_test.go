package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padelfinder/internal/booking"
	"padelfinder/internal/models"
	"padelfinder/internal/store"
)

type fakeStore struct {
	courts    map[string]bool
	inserted  []models.Booking
	insertErr error
	mine      []models.Booking
}

func (f *fakeStore) GetCourt(_ context.Context, id string) (*models.Court, error) {
	if !f.courts[id] {
		return nil, store.ErrCourtNotFound
	}
	return &models.Court{ID: id}, nil
}

func (f *fakeStore) InsertBooking(_ context.Context, b models.Booking) (*models.Booking, error) {
	f.inserted = append(f.inserted, b)
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	b.ID = "booking-1"
	b.Status = models.BookingStatusAvailable
	return &b, nil
}

func (f *fakeStore) ListBookingsByUser(_ context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.mine {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakePublisher struct {
	published []models.Booking
	err       error
}

func (p *fakePublisher) BookingCreated(_ context.Context, b models.Booking) error {
	p.published = append(p.published, b)
	return p.err
}

var player = models.Session{Token: "tok", UserID: "user-1"}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(booking.DateLayout)
}

func TestBookInsertsAndPublishes(t *testing.T) {
	st := &fakeStore{courts: map[string]bool{"court-1": true}}
	pub := &fakePublisher{}
	svc := New(st, pub)

	date := futureDate()
	b, err := svc.Book(context.Background(), player, Request{CourtID: "court-1", Date: date, TimeSlot: "09:00"})
	require.NoError(t, err)
	require.NotNil(t, b)

	require.Len(t, st.inserted, 1)
	assert.Equal(t, models.Booking{CourtID: "court-1", UserID: "user-1", Date: date, TimeSlot: "09:00"}, st.inserted[0])
	require.Len(t, pub.published, 1)
	assert.Equal(t, "booking-1", pub.published[0].ID)
}

func TestBookPastDateInsertsOnce(t *testing.T) {
	st := &fakeStore{courts: map[string]bool{"court-1": true}}

	b, err := New(st, nil).Book(context.Background(), player, Request{CourtID: "court-1", Date: "2024-12-31", TimeSlot: "09:00"})
	require.NoError(t, err)
	require.NotNil(t, b)

	require.Len(t, st.inserted, 1)
	assert.Equal(t, models.Booking{CourtID: "court-1", UserID: "user-1", Date: "2024-12-31", TimeSlot: "09:00"}, st.inserted[0])
	assert.Equal(t, models.BookingStatusAvailable, b.Status)
}

func TestBookIncompleteIsNoop(t *testing.T) {
	st := &fakeStore{courts: map[string]bool{"court-1": true}}
	pub := &fakePublisher{}
	svc := New(st, pub)

	b, err := svc.Book(context.Background(), player, Request{CourtID: "court-1", TimeSlot: "09:00"})
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Empty(t, st.inserted)
	assert.Empty(t, pub.published)
}

func TestBookUnknownCourt(t *testing.T) {
	st := &fakeStore{}
	_, err := New(st, nil).Book(context.Background(), player, Request{CourtID: "nope", Date: futureDate(), TimeSlot: "09:00"})
	assert.ErrorIs(t, err, store.ErrCourtNotFound)
	assert.Empty(t, st.inserted)
}

func TestBookInvalidInput(t *testing.T) {
	st := &fakeStore{courts: map[string]bool{"court-1": true}}
	svc := New(st, nil)

	_, err := svc.Book(context.Background(), player, Request{CourtID: "court-1", Date: "tomorrow", TimeSlot: "09:00"})
	assert.ErrorIs(t, err, booking.ErrInvalidBooking)

	_, err = svc.Book(context.Background(), player, Request{CourtID: "court-1", Date: futureDate(), TimeSlot: "nine"})
	assert.ErrorIs(t, err, booking.ErrInvalidBooking)
	assert.Empty(t, st.inserted)
}

func TestBookInsertFailureNotPublished(t *testing.T) {
	st := &fakeStore{courts: map[string]bool{"court-1": true}, insertErr: store.ErrBookingConflict}
	pub := &fakePublisher{}

	_, err := New(st, pub).Book(context.Background(), player, Request{CourtID: "court-1", Date: futureDate(), TimeSlot: "10:00"})
	assert.ErrorIs(t, err, store.ErrBookingConflict)
	assert.Len(t, st.inserted, 1)
	assert.Empty(t, pub.published)
}

func TestBookPublishFailureStillSucceeds(t *testing.T) {
	st := &fakeStore{courts: map[string]bool{"court-1": true}}
	pub := &fakePublisher{err: errors.New("broker down")}

	b, err := New(st, pub).Book(context.Background(), player, Request{CourtID: "court-1", Date: futureDate(), TimeSlot: "11:00"})
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestSlots(t *testing.T) {
	st := &fakeStore{courts: map[string]bool{"court-1": true}}
	svc := New(st, nil)

	slots, err := svc.Slots(context.Background(), "court-1", "2024-12-31")
	require.NoError(t, err)
	assert.Len(t, slots, 13)

	_, err = svc.Slots(context.Background(), "court-1", "31-12-2024")
	assert.ErrorIs(t, err, booking.ErrInvalidBooking)

	_, err = svc.Slots(context.Background(), "missing", "")
	assert.ErrorIs(t, err, store.ErrCourtNotFound)
}

func TestListMine(t *testing.T) {
	st := &fakeStore{mine: []models.Booking{{ID: "1", UserID: "user-1"}, {ID: "2", UserID: "user-2"}}}
	got, err := New(st, nil).ListMine(context.Background(), player)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}
