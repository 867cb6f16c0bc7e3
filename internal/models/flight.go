package models

import "time"

// FlightOffer is the normalized, client-facing flight record. One offer from
// the provider maps to exactly one FlightOffer; every optional field carries
// an explicit fallback value instead of being omitted.
type FlightOffer struct {
	ID             string `json:"id"`
	Airline        string `json:"airline"`
	AirlineCode    string `json:"airlineCode"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Departure      string `json:"departure"`
	Arrival        string `json:"arrival"`
	Duration       string `json:"duration"`
	Stops          int    `json:"stops"`
	Price          int    `json:"price"`
	PriceFormatted string `json:"priceFormatted,omitempty"`
	Currency       string `json:"currency"`
	FlightNumber   string `json:"flightNumber"`
	Aircraft       string `json:"aircraft"`
	Logo           string `json:"logo"`
	BookingLink    string `json:"bookingLink,omitempty"`
	SeatsAvailable int    `json:"seatsAvailable"`
}

// StopCounts holds the per-bucket counts shown next to the stops filter.
// TwoPlus counts flights with two or more stops even though the stops filter
// itself matches exact values only.
type StopCounts struct {
	Direct  int `json:"direct"`
	OneStop int `json:"oneStop"`
	TwoPlus int `json:"twoPlus"`
}

var flightTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseFlightTime parses the timestamp shapes the provider emits. Offsets are
// honored when present; offset-less strings are interpreted in the local zone,
// which is also the zone departure-time buckets are evaluated in.
func ParseFlightTime(s string) (time.Time, error) {
	var lastErr error
	for _, format := range flightTimeFormats {
		t, err := time.ParseInLocation(format, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
