package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := ParseDate(v)
	require.NoError(t, err)
	return d
}

func validRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		Destinations:   []string{"Paris"},
		StartDate:      date(t, "2025-06-01"),
		EndDate:        date(t, "2025-06-06"),
		Travelers:      2,
		Style:          StyleCultural,
		Budget:         BudgetMid,
		Accommodations: []Accommodation{AccommodationHotels},
		Interests:      []Interest{InterestMuseums, InterestFood},
		Mobility:       MobilityWalking,
	}
}

func TestParseDestinations(t *testing.T) {
	assert.Equal(t, []string{"Tokyo", "Kyoto", "Osaka"}, ParseDestinations("Tokyo, Kyoto, , Osaka, tokyo"))
	assert.Empty(t, ParseDestinations(" , ,"))
	assert.Empty(t, ParseDestinations(""))
}

func TestNormalizeDestinationsKeepsFirstSpelling(t *testing.T) {
	got := NormalizeDestinations([]string{" Tokyo, Japan ", "KYOTO", "tokyo, japan", "", "Kyoto"})
	assert.Equal(t, []string{"Tokyo, Japan", "KYOTO"}, got)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-04-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/04/2025")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestDeriveFloorsDaysPerDestination(t *testing.T) {
	r := validRequest(t)
	r.Destinations = []string{"Tokyo", "Kyoto", "Osaka"}
	r.EndDate = date(t, "2025-06-11")

	d := r.Derive()
	assert.Equal(t, 10, d.DurationDays)
	assert.True(t, d.MultiDestination)
	assert.Equal(t, 3, d.DaysPerDestination)
}

func TestDeriveSingleDestination(t *testing.T) {
	d := validRequest(t).Derive()
	assert.Equal(t, Derived{DurationDays: 5, MultiDestination: false, DaysPerDestination: 5}, d)
}

func TestDurationIgnoresTimeOfDay(t *testing.T) {
	r := validRequest(t)
	r.StartDate = time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
	r.EndDate = time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, r.DurationDays())
}

func TestActionable(t *testing.T) {
	r := validRequest(t)
	assert.True(t, r.Actionable())

	r.EndDate = r.StartDate
	assert.False(t, r.Actionable())

	r = validRequest(t)
	r.Destinations = nil
	assert.False(t, r.Actionable())
}

func TestValidate(t *testing.T) {
	require.NoError(t, validRequest(t).Validate())

	cases := map[string]func(r *Request){
		"no destinations":    func(r *Request) { r.Destinations = nil },
		"missing dates":      func(r *Request) { r.StartDate = time.Time{} },
		"end before start":   func(r *Request) { r.EndDate = r.StartDate.AddDate(0, 0, -1) },
		"zero travelers":     func(r *Request) { r.Travelers = 0 },
		"too many travelers": func(r *Request) { r.Travelers = MaxTravelers + 1 },
		"unknown style":      func(r *Request) { r.Style = "Pilgrimage" },
		"unknown budget":     func(r *Request) { r.Budget = "Free" },
		"no accommodations":  func(r *Request) { r.Accommodations = nil },
		"bad accommodation":  func(r *Request) { r.Accommodations = []Accommodation{"Castle"} },
		"no interests":       func(r *Request) { r.Interests = nil },
		"bad interest":       func(r *Request) { r.Interests = []Interest{"Chess"} },
		"unknown mobility":   func(r *Request) { r.Mobility = "Teleport" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := validRequest(t)
			mutate(&r)
			assert.ErrorIs(t, r.Validate(), ErrInvalidRequest)
		})
	}
}

func TestValidateSameDayIsNotActionable(t *testing.T) {
	r := validRequest(t)
	r.EndDate = r.StartDate
	err := r.Validate()
	assert.ErrorIs(t, err, ErrNotActionable)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
}

func TestNormalizeDropsDuplicateSetMembers(t *testing.T) {
	r := validRequest(t)
	r.Interests = []Interest{InterestArt, InterestArt, InterestNature}
	r.Accommodations = []Accommodation{AccommodationCamping, AccommodationCamping}
	r.SpecialRequirements = "  vegetarian  "

	n := r.Normalize()
	assert.Equal(t, []Interest{InterestArt, InterestNature}, n.Interests)
	assert.Equal(t, []Accommodation{AccommodationCamping}, n.Accommodations)
	assert.Equal(t, "vegetarian", n.SpecialRequirements)
}

func TestBudgetRankOrdering(t *testing.T) {
	assert.Less(t, BudgetLow.Rank(), BudgetMid.Rank())
	assert.Less(t, BudgetPremium.Rank(), BudgetLuxury.Rank())
	assert.Equal(t, -1, BudgetTier("Free").Rank())
}

func TestOptionsListsEveryEnumeration(t *testing.T) {
	o := Options()
	assert.Len(t, o.TravelStyles, 8)
	assert.Len(t, o.BudgetTiers, 4)
	assert.Len(t, o.Accommodations, 6)
	assert.Len(t, o.Interests, 9)
	assert.Len(t, o.Mobility, 4)
	assert.Equal(t, MinTravelers, o.MinTravelers)
	assert.Equal(t, MaxTravelers, o.MaxTravelers)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "Tokyo_Kyoto_Osaka_plus1more_12days_itinerary.txt",
		ExportFilename([]string{"Tokyo", "Kyoto", "Osaka", "Hiroshima"}, 12))
	assert.Equal(t, "Tokyo_Japan_5days_itinerary.txt", ExportFilename([]string{"Tokyo, Japan"}, 5))
	assert.Equal(t, "New_York_Boston_7days_itinerary.txt", ExportFilename([]string{"New York", "Boston"}, 7))

	r := validRequest(t)
	assert.Equal(t, "Paris_5days_itinerary.txt", r.ExportFilename())
}
