package models

const (
	// MaxPrice and MaxDurationHours are the upper bounds of the default
	// filter ranges; the default criteria admit every flight.
	MaxPrice         = 5000
	MaxDurationHours = 24

	MaxPassengers = 9
)

// Trip types accepted on a search.
const (
	TripOneWay    = "one-way"
	TripRoundTrip = "round-trip"
)

// Departure-time buckets. A flight belongs to exactly one bucket, decided by
// the local hour of its departure timestamp.
const (
	BucketMorning   = "morning"   // [06:00, 12:00)
	BucketAfternoon = "afternoon" // [12:00, 18:00)
	BucketEvening   = "evening"   // [18:00, 24:00)
	BucketNight     = "night"     // [00:00, 06:00)
)

// SearchParams is the immutable snapshot of the search form at submit time.
type SearchParams struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Passengers    int    `json:"passengers"`
	TripType      string `json:"tripType"`
	Class         string `json:"class"`
}

// Validate checks the snapshot and fills defaults. knownAirport reports
// whether an IATA code exists in the airport catalog; free-text codes are
// rejected before anything reaches the network layer.
func (p *SearchParams) Validate(knownAirport func(code string) bool) error {
	if p.Origin == "" {
		return ErrMissingOrigin
	}
	if p.Destination == "" {
		return ErrMissingDestination
	}
	if p.Origin == p.Destination {
		return ErrSameAirport
	}
	if p.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if knownAirport != nil {
		if !knownAirport(p.Origin) {
			return ErrUnknownOrigin
		}
		if !knownAirport(p.Destination) {
			return ErrUnknownDestination
		}
	}
	if p.Passengers < 1 {
		p.Passengers = 1
	}
	if p.Passengers > MaxPassengers {
		p.Passengers = MaxPassengers
	}
	if p.Class == "" {
		p.Class = "economy"
	}
	switch p.TripType {
	case TripOneWay, TripRoundTrip:
	case "":
		p.TripType = TripOneWay
	default:
		return ErrInvalidTripType
	}
	if p.TripType == TripRoundTrip && p.ReturnDate == "" {
		return ErrMissingReturnDate
	}
	return nil
}

// FilterCriteria is the current set of filter constraints. Empty sets pass
// everything within their dimension; the two ranges are always applied.
type FilterCriteria struct {
	Stops         []int      `json:"stops"`
	PriceRange    [2]int     `json:"priceRange"`
	Airlines      []string   `json:"airlines"`
	Duration      [2]float64 `json:"duration"`
	DepartureTime []string   `json:"departureTime"`
}

// DefaultCriteria returns criteria that admit every flight.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		PriceRange: [2]int{0, MaxPrice},
		Duration:   [2]float64{0, MaxDurationHours},
	}
}

// Normalize restores the range invariants min <= max. An edit that would
// invert a range resets that range to its bounds rather than being applied.
func (c *FilterCriteria) Normalize() {
	if c.PriceRange == [2]int{0, 0} {
		c.PriceRange = [2]int{0, MaxPrice}
	}
	if c.PriceRange[0] > c.PriceRange[1] {
		c.PriceRange = [2]int{0, MaxPrice}
	}
	if c.Duration == [2]float64{0, 0} {
		c.Duration = [2]float64{0, MaxDurationHours}
	}
	if c.Duration[0] > c.Duration[1] {
		c.Duration = [2]float64{0, MaxDurationHours}
	}
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrSameAirport          ValidationError = "origin and destination cannot be the same"
	ErrMissingDepartureDate ValidationError = "departureDate is required"
	ErrMissingReturnDate    ValidationError = "returnDate is required for round trips"
	ErrUnknownOrigin        ValidationError = "origin is not a known airport"
	ErrUnknownDestination   ValidationError = "destination is not a known airport"
	ErrInvalidTripType      ValidationError = "tripType must be one-way or round-trip"
)
