package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padelfinder/internal/models"
)

type recordingInserter struct {
	inserted []models.Booking
	err      error
}

func (r *recordingInserter) InsertBooking(_ context.Context, b models.Booking) (*models.Booking, error) {
	r.inserted = append(r.inserted, b)
	if r.err != nil {
		return nil, r.err
	}
	created := b
	created.ID = "booking-1"
	created.Status = models.BookingStatusAvailable
	return &created, nil
}

func newTestFlow(inserter Inserter) *Flow {
	return NewFlow(inserter, "court-1", "user-1")
}

func TestSubmitInsertsOnce(t *testing.T) {
	inserter := &recordingInserter{}
	f := newTestFlow(inserter)

	require.NoError(t, f.Open())
	assert.Equal(t, StateSelectingDate, f.State())
	require.NoError(t, f.SelectDate("2024-12-31"))
	assert.Equal(t, StateSelectingTime, f.State())
	require.NoError(t, f.SelectTime("09:00"))

	b, submitted, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, submitted)
	assert.Equal(t, StateBooked, f.State())

	require.Len(t, inserter.inserted, 1)
	assert.Equal(t, models.Booking{CourtID: "court-1", UserID: "user-1", Date: "2024-12-31", TimeSlot: "09:00"}, inserter.inserted[0])
	assert.Equal(t, "booking-1", b.ID)
	assert.Equal(t, models.BookingStatusAvailable, b.Status)
	assert.Same(t, b, f.Booking())
}

func TestSubmitWithoutDateIsNoop(t *testing.T) {
	inserter := &recordingInserter{}
	f := newTestFlow(inserter)
	require.NoError(t, f.SelectTime("09:00"))

	b, submitted, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, submitted)
	assert.Nil(t, b)
	assert.Empty(t, inserter.inserted)
	assert.Equal(t, StateIdle, f.State())
}

func TestSubmitWithoutTimeIsNoop(t *testing.T) {
	inserter := &recordingInserter{}
	f := newTestFlow(inserter)
	require.NoError(t, f.SelectDate("2024-12-31"))

	_, submitted, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, submitted)
	assert.Empty(t, inserter.inserted)
	assert.Equal(t, StateSelectingTime, f.State())
}

func TestSubmitFailureIsTerminal(t *testing.T) {
	rejected := errors.New("insert rejected")
	inserter := &recordingInserter{err: rejected}
	f := newTestFlow(inserter)
	require.NoError(t, f.SelectDate("2024-12-31"))
	require.NoError(t, f.SelectTime("10:00"))

	_, submitted, err := f.Submit(context.Background())
	assert.True(t, submitted)
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, StateFailed, f.State())
	assert.ErrorIs(t, f.Err(), rejected)

	_, _, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFlowFinished)
	assert.Len(t, inserter.inserted, 1)
}

func TestSelectValidation(t *testing.T) {
	f := newTestFlow(&recordingInserter{})

	assert.ErrorIs(t, f.SelectDate("31-12-2024"), ErrInvalidBooking)
	assert.ErrorIs(t, f.SelectDate("2024-02-30"), ErrInvalidBooking)
	assert.NoError(t, f.SelectDate("2024-11-30"), "past dates are bookable")

	assert.ErrorIs(t, f.SelectTime("9:00"), ErrInvalidBooking)
	assert.ErrorIs(t, f.SelectTime("25:00"), ErrInvalidBooking)
	assert.NoError(t, f.SelectTime("21:00"))
}

func TestSlots(t *testing.T) {
	slots := Slots()
	require.Len(t, slots, 13)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:00", slots[0].EndTime)
	assert.Equal(t, "21:00", slots[12].StartTime)
	for _, s := range slots {
		assert.Equal(t, models.BookingStatusAvailable, s.Status)
		assert.True(t, ValidSlot(s.StartTime))
	}
}
