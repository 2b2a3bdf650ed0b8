package models

import "time"

// BookingStatus is the lifecycle marker stored with a booking row
type BookingStatus string

const (
	BookingStatusAvailable BookingStatus = "available"
	BookingStatusBooked    BookingStatus = "booked"
)

// Booking represents a reservation of a court time slot
type Booking struct {
	ID        string        `json:"id"`
	CourtID   string        `json:"court_id"`
	UserID    string        `json:"user_id,omitempty"`
	Date      string        `json:"date"`      // ISO date, e.g. 2024-12-31
	TimeSlot  string        `json:"time_slot"` // HH:MM
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Slot is one cell of a court's availability grid
type Slot struct {
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Status    BookingStatus `json:"status"`
}
