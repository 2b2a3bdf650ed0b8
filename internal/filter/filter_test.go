package filter

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padelfinder/internal/distance"
	"padelfinder/internal/models"
)

func court(price, rating float64, facilityNames ...string) models.Court {
	c := models.Court{PricePerHour: price, Rating: rating}
	for _, name := range facilityNames {
		c.Facilities = append(c.Facilities, models.Facility{Name: name})
	}
	return c
}

func floatPtr(v float64) *float64 { return &v }

func ids(clubs []models.Club) []string {
	out := make([]string, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, c.ID)
	}
	return out
}

func sampleClubs() []models.Club {
	return []models.Club{
		{ID: "A", Courts: []models.Court{court(30, 4.5, "Parking")}},
		{ID: "B", Courts: []models.Court{court(80, 3.0)}},
	}
}

func TestApplyNoCriteriaReturnsInput(t *testing.T) {
	clubs := append(sampleClubs(), models.Club{ID: "C"})
	assert.Equal(t, clubs, Apply(clubs, Spec{}))
}

func TestApplyEndToEnd(t *testing.T) {
	spec := Spec{
		Price:      &Range{Min: 0, Max: 50},
		MinRating:  floatPtr(4),
		Facilities: []string{"parking"},
	}
	assert.Equal(t, []string{"A"}, ids(Apply(sampleClubs(), spec)))
}

func TestApplyRatingExcludesLowRatedClubs(t *testing.T) {
	clubs := []models.Club{
		{ID: "low", Courts: []models.Court{court(20, 2), court(20, 3.9)}},
		{ID: "mixed", Courts: []models.Court{court(20, 2), court(20, 4)}},
	}
	assert.Equal(t, []string{"mixed"}, ids(Apply(clubs, Spec{MinRating: floatPtr(4)})))
}

func TestApplyFacilitiesNeedOneCourtWithAll(t *testing.T) {
	clubs := []models.Club{
		{ID: "split", Courts: []models.Court{court(20, 4, "Parking"), court(20, 4, "Restaurant")}},
		{ID: "both", Courts: []models.Court{court(20, 4, "Parking", "Restaurant")}},
	}
	spec := Spec{Facilities: []string{"parking", "restaurant"}}
	assert.Equal(t, []string{"both"}, ids(Apply(clubs, spec)))
}

func TestApplyUnknownFacilityMatchesNothing(t *testing.T) {
	spec := Spec{Facilities: []string{"parking", "sauna"}}
	assert.Empty(t, Apply(sampleClubs(), spec))
}

func TestApplyPriceBoundsInclusive(t *testing.T) {
	spec := Spec{Price: &Range{Min: 30, Max: 80}}
	assert.Equal(t, []string{"A", "B"}, ids(Apply(sampleClubs(), spec)))

	spec = Spec{Price: &Range{Min: 31, Max: 79}}
	assert.Empty(t, Apply(sampleClubs(), spec))
}

func TestApplyClubsWithoutCourts(t *testing.T) {
	clubs := []models.Club{{ID: "empty"}}
	assert.Equal(t, []string{"empty"}, ids(Apply(clubs, Spec{MaxDistanceKm: floatPtr(10)})))
	assert.Empty(t, Apply(clubs, Spec{MinRating: floatPtr(1)}))
	assert.Empty(t, Apply(clubs, Spec{Price: &Range{Min: 0, Max: 100}}))
}

func TestApplyDistance(t *testing.T) {
	clubs := []models.Club{
		{ID: "near", Distance: floatPtr(5)},
		{ID: "edge", Distance: floatPtr(10)},
		{ID: "far", Distance: floatPtr(25)},
		{ID: "unreachable", Distance: floatPtr(distance.Infinite)},
		{ID: "unknown"},
	}
	got := Apply(clubs, Spec{MaxDistanceKm: floatPtr(10)})
	assert.Equal(t, []string{"near", "edge", "unknown"}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	clubs := sampleClubs()
	_ = Apply(clubs, Spec{MinRating: floatPtr(4)})
	assert.Equal(t, sampleClubs(), clubs)
}

func TestFromSentinels(t *testing.T) {
	spec := FromSentinels(0, 100, 0, 0, nil)
	assert.False(t, spec.Active())

	spec = FromSentinels(0, 50, 4, 15, []string{"parking"})
	require.NotNil(t, spec.Price)
	assert.Equal(t, Range{Min: 0, Max: 50}, *spec.Price)
	assert.Equal(t, 4.0, *spec.MinRating)
	assert.Equal(t, 15.0, *spec.MaxDistanceKm)
	assert.Equal(t, []string{"parking"}, spec.Facilities)
}

func TestFromQueryExplicitBoundaries(t *testing.T) {
	values := url.Values{
		"minPrice":   {"0"},
		"maxPrice":   {"100"},
		"rating":     {"0"},
		"facilities": {"parking,restaurant", "bike_storage"},
	}
	spec, err := FromQuery(values)
	require.NoError(t, err)

	require.NotNil(t, spec.Price, "explicit [0,100] is a real range")
	assert.Equal(t, Range{Min: 0, Max: 100}, *spec.Price)
	require.NotNil(t, spec.MinRating)
	assert.Nil(t, spec.MaxDistanceKm)
	assert.Equal(t, []string{"parking", "restaurant", "bike_storage"}, spec.Facilities)
}

func TestFromQueryLegacy(t *testing.T) {
	values := url.Values{"minPrice": {"0"}, "maxPrice": {"100"}, "rating": {"0"}, "legacy": {"1"}}
	spec, err := FromQuery(values)
	require.NoError(t, err)
	assert.False(t, spec.Active())
}

func TestFromQueryInvalid(t *testing.T) {
	for _, values := range []url.Values{
		{"minPrice": {"cheap"}},
		{"minPrice": {"60"}, "maxPrice": {"50"}},
		{"maxDistance": {"-1"}},
		{"rating": {"NaN"}},
	} {
		_, err := FromQuery(values)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "values %v: %v", values, err)
	}
}

func TestFromQueryOpenEndedPrice(t *testing.T) {
	spec, err := FromQuery(url.Values{"minPrice": {"40"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, ids(Apply(sampleClubs(), spec)))
}

func TestRangeJSONOmitsOpenMax(t *testing.T) {
	spec, err := FromQuery(url.Values{"minPrice": {"40"}})
	require.NoError(t, err)

	body, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":{"min":40}}`, string(body))

	body, err = json.Marshal(Range{Min: 10, Max: 60})
	require.NoError(t, err)
	assert.JSONEq(t, `{"min":10,"max":60}`, string(body))
}
