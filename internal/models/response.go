package models

import "encoding/json"

// Status is the orchestrator state. A search transitions
// ready -> loading -> success|error.
type Status string

const (
	StatusReady   Status = "ready"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// SearchCriteria echoes the submitted search back to the client.
type SearchCriteria struct {
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	DepartureDate string          `json:"departureDate"`
	ReturnDate    string          `json:"returnDate,omitempty"`
	Passengers    int             `json:"passengers"`
	TripType      string          `json:"tripType"`
	Class         string          `json:"class"`
	Filters       *FilterCriteria `json:"filters,omitempty"`
	SortBy        string          `json:"sortBy,omitempty"`
}

type SearchMetadata struct {
	SearchID      string `json:"searchId"`
	Status        Status `json:"status"`
	UsingFallback bool   `json:"usingFallback"`
	CacheHit      bool   `json:"cacheHit"`
	TotalResults  int    `json:"totalResults"`
	SearchTimeMs  int64  `json:"searchTimeMs"`
}

// TrendPoint is one sample of the 24-hour price trend.
type TrendPoint struct {
	Time      string `json:"time"`
	Price     int    `json:"price"`
	AvgPrice  int    `json:"avgPrice"`
	LowPrice  int    `json:"lowPrice"`
	HighPrice int    `json:"highPrice"`
}

// PriceStats summarizes the displayed collection.
type PriceStats struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Avg     int `json:"avg"`
	Current int `json:"current"`
}

type SearchResponse struct {
	SearchCriteria SearchCriteria `json:"searchCriteria"`
	Metadata       SearchMetadata `json:"metadata"`
	Flights        []FlightOffer  `json:"flights"`
	StopCounts     StopCounts     `json:"stopCounts"`
	// Analytics is the provider's price-metrics series, passed through
	// unmodified when available. PriceTrend is the synthesized series used
	// when it is not.
	Analytics  json.RawMessage `json:"analytics,omitempty"`
	PriceTrend []TrendPoint    `json:"priceTrend,omitempty"`
	PriceStats *PriceStats     `json:"priceStats,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
