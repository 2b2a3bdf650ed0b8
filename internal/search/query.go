// Package search composes canonical search navigations and guards against
// stale search results.
package search

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Path is the search page every composed query navigates to.
const Path = "/search"

// DateLayout is the ISO date format used in search queries.
const DateLayout = "2006-01-02"

// ErrInvalidQuery wraps malformed search parameters.
var ErrInvalidQuery = errors.New("invalid search query")

// TimeSlot is either a specific start time ("18:00") or a period
// ("16:00-22:00"). The zero value means no time was chosen.
type TimeSlot struct {
	Start string
	End   string // empty for a specific time
}

// Period is a named time range offered by the time picker.
type Period struct {
	Name string   `json:"name"`
	Slot TimeSlot `json:"slot"`
}

// Periods lists the named ranges.
var Periods = []Period{
	{Name: "Morning", Slot: TimeSlot{Start: "09:00", End: "12:00"}},
	{Name: "Afternoon", Slot: TimeSlot{Start: "12:00", End: "16:00"}},
	{Name: "Evening", Slot: TimeSlot{Start: "16:00", End: "22:00"}},
}

// SpecificTimes lists the hourly start times 09:00 through 20:00.
func SpecificTimes() []string {
	times := make([]string, 0, 12)
	for hour := 9; hour <= 20; hour++ {
		times = append(times, fmt.Sprintf("%02d:00", hour))
	}
	return times
}

// ParseTimeSlot reads "HH:MM" or "HH:MM-HH:MM". An empty string is the zero slot.
func ParseTimeSlot(raw string) (TimeSlot, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TimeSlot{}, nil
	}

	start, end, isPeriod := strings.Cut(raw, "-")
	if !validClock(start) {
		return TimeSlot{}, fmt.Errorf("%w: timeSlot %q", ErrInvalidQuery, raw)
	}
	if !isPeriod {
		return TimeSlot{Start: start}, nil
	}
	if !validClock(end) || end <= start {
		return TimeSlot{}, fmt.Errorf("%w: timeSlot %q", ErrInvalidQuery, raw)
	}
	return TimeSlot{Start: start, End: end}, nil
}

func validClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsZero reports whether no time was chosen.
func (t TimeSlot) IsZero() bool { return t.Start == "" }

// IsPeriod reports whether the slot is a range rather than a start time.
func (t TimeSlot) IsPeriod() bool { return t.End != "" }

// String renders the slot in its query form.
func (t TimeSlot) String() string {
	if t.End == "" {
		return t.Start
	}
	return t.Start + "-" + t.End
}

func (t TimeSlot) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeSlot) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeSlot(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Query is the location, date and time a user searches for. Each part is optional.
type Query struct {
	Location string   `json:"location,omitempty"`
	Date     string   `json:"date,omitempty"`
	TimeSlot TimeSlot `json:"timeSlot"`
}

// IsZero reports whether nothing was chosen.
func (q Query) IsZero() bool {
	return q.Location == "" && q.Date == "" && q.TimeSlot.IsZero()
}

// Encode returns the query parameters, omitting unset parts.
func (q Query) Encode() url.Values {
	values := url.Values{}
	if q.Location != "" {
		values.Set("location", q.Location)
	}
	if q.Date != "" {
		values.Set("date", q.Date)
	}
	if !q.TimeSlot.IsZero() {
		values.Set("timeSlot", q.TimeSlot.String())
	}
	return values
}

// Href returns the navigation target for the query.
func (q Query) Href() string {
	encoded := q.Encode().Encode()
	if encoded == "" {
		return Path
	}
	return Path + "?" + encoded
}

// Clear returns the empty query, navigating to the bare search page.
func Clear() Query {
	return Query{}
}

// Parse reads location, date and timeSlot. Empty values are left unset.
func Parse(values url.Values) (Query, error) {
	q := Query{Location: strings.TrimSpace(values.Get("location"))}

	if date := strings.TrimSpace(values.Get("date")); date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return Query{}, fmt.Errorf("%w: date %q", ErrInvalidQuery, date)
		}
		q.Date = date
	}

	slot, err := ParseTimeSlot(values.Get("timeSlot"))
	if err != nil {
		return Query{}, err
	}
	q.TimeSlot = slot

	return q, nil
}
