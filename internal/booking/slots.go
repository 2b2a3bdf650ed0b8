package booking

import (
	"fmt"

	"padelfinder/internal/models"
)

const (
	firstSlotHour = 9
	lastSlotHour  = 21
)

// Slots returns the hourly grid 09:00 through 21:00 for a day. Every slot is
// reported available; existing bookings are not consulted.
func Slots() []models.Slot {
	slots := make([]models.Slot, 0, lastSlotHour-firstSlotHour+1)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		slots = append(slots, models.Slot{
			StartTime: fmt.Sprintf("%02d:00", hour),
			EndTime:   fmt.Sprintf("%02d:00", hour+1),
			Status:    models.BookingStatusAvailable,
		})
	}
	return slots
}
