package amadeus

// Wire types for the flight-offers API. Fields mirror the provider's JSON;
// the normalizer owns all defaulting, so everything here stays optional.

type Offer struct {
	ID                    string      `json:"id"`
	NumberOfBookableSeats int         `json:"numberOfBookableSeats"`
	Itineraries           []Itinerary `json:"itineraries"`
	Price                 Price       `json:"price"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
	Aircraft    Aircraft `json:"aircraft"`
	Operating   *Carrier `json:"operating,omitempty"`
	Duration    string   `json:"duration"`
}

type Endpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type Carrier struct {
	CarrierCode string `json:"carrierCode"`
}

type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

type Location struct {
	IataCode string  `json:"iataCode"`
	Name     string  `json:"name"`
	Address  Address `json:"address"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}
