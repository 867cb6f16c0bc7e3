package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knownAirports(codes ...string) func(string) bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return func(code string) bool { return set[code] }
}

func validParams() SearchParams {
	return SearchParams{
		Origin:        "JED",
		Destination:   "RUH",
		DepartureDate: "2024-01-20",
		Passengers:    2,
		TripType:      TripOneWay,
		Class:         "economy",
	}
}

func TestValidateAcceptsValidParams(t *testing.T) {
	p := validParams()

	err := p.Validate(knownAirports("JED", "RUH"))

	assert.NoError(t, err)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SearchParams)
		want   ValidationError
	}{
		{"missing origin", func(p *SearchParams) { p.Origin = "" }, ErrMissingOrigin},
		{"missing destination", func(p *SearchParams) { p.Destination = "" }, ErrMissingDestination},
		{"same airport", func(p *SearchParams) { p.Destination = "JED" }, ErrSameAirport},
		{"missing departure date", func(p *SearchParams) { p.DepartureDate = "" }, ErrMissingDepartureDate},
		{"unknown origin", func(p *SearchParams) { p.Origin = "XXX" }, ErrUnknownOrigin},
		{"unknown destination", func(p *SearchParams) { p.Destination = "XXX" }, ErrUnknownDestination},
		{"bad trip type", func(p *SearchParams) { p.TripType = "multi-city" }, ErrInvalidTripType},
		{"round trip without return", func(p *SearchParams) { p.TripType = TripRoundTrip }, ErrMissingReturnDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			err := p.Validate(knownAirports("JED", "RUH"))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	p := SearchParams{
		Origin:        "JED",
		Destination:   "RUH",
		DepartureDate: "2024-01-20",
	}

	err := p.Validate(nil)

	require.NoError(t, err)
	assert.Equal(t, 1, p.Passengers)
	assert.Equal(t, "economy", p.Class)
	assert.Equal(t, TripOneWay, p.TripType)
}

func TestValidateClampsPassengers(t *testing.T) {
	p := validParams()
	p.Passengers = 15

	err := p.Validate(nil)

	require.NoError(t, err)
	assert.Equal(t, MaxPassengers, p.Passengers)
}

func TestDefaultCriteriaBounds(t *testing.T) {
	c := DefaultCriteria()

	assert.Equal(t, [2]int{0, MaxPrice}, c.PriceRange)
	assert.Equal(t, [2]float64{0, MaxDurationHours}, c.Duration)
	assert.Empty(t, c.Stops)
	assert.Empty(t, c.Airlines)
	assert.Empty(t, c.DepartureTime)
}

func TestNormalizeResetsInvertedRanges(t *testing.T) {
	c := FilterCriteria{
		PriceRange: [2]int{800, 200},
		Duration:   [2]float64{10, 2},
	}

	c.Normalize()

	assert.Equal(t, [2]int{0, MaxPrice}, c.PriceRange)
	assert.Equal(t, [2]float64{0, MaxDurationHours}, c.Duration)
}

func TestNormalizeFillsZeroRanges(t *testing.T) {
	var c FilterCriteria

	c.Normalize()

	assert.Equal(t, DefaultCriteria(), c)
}

func TestNormalizeKeepsValidRanges(t *testing.T) {
	c := FilterCriteria{
		PriceRange: [2]int{100, 900},
		Duration:   [2]float64{1, 6},
	}

	c.Normalize()

	assert.Equal(t, [2]int{100, 900}, c.PriceRange)
	assert.Equal(t, [2]float64{1, 6}, c.Duration)
}
