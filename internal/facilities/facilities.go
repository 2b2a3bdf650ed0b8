// Package facilities maps facility filter identifiers to the display names
// stored with each court.
package facilities

// Option is a selectable facility filter.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var options = []Option{
	{ID: "changing_rooms", Name: "Changing Rooms"},
	{ID: "parking", Name: "Parking"},
	{ID: "restaurant", Name: "Restaurant"},
	{ID: "equipment_rental", Name: "Equipment Rental"},
	{ID: "padel_shop", Name: "Padel Shop"},
	{ID: "bike_storage", Name: "Bike Storage"},
	{ID: "wheelchair_access", Name: "Wheelchair Access"},
	{ID: "charging_points", Name: "Charging Points"},
}

var byID = func() map[string]string {
	m := make(map[string]string, len(options))
	for _, o := range options {
		m[o.ID] = o.Name
	}
	return m
}()

// Resolve returns the display name for a filter id. ok is false for ids
// outside the vocabulary; a criterion on such an id matches no court.
func Resolve(filterID string) (displayName string, ok bool) {
	displayName, ok = byID[filterID]
	return displayName, ok
}

// Options lists the vocabulary in sidebar order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
