// Package airports provides the static airport catalog, keyword search over
// it, and a debounced suggester that merges remote lookup results with the
// catalog for offline resilience.
package airports

import (
	"context"
	"strings"

	"github.com/skyfare/skyfare/internal/amadeus"
)

// Airport is one catalog or lookup entry.
type Airport struct {
	IataCode string  `json:"iataCode"`
	Name     string  `json:"name"`
	Address  Address `json:"address"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}

// MaxSuggestions caps every suggestion list.
const MaxSuggestions = 10

var catalog = []Airport{
	// Saudi Arabia
	{"JED", "King Abdulaziz International Airport", Address{"Jeddah", "Saudi Arabia"}},
	{"RUH", "King Khalid International Airport", Address{"Riyadh", "Saudi Arabia"}},
	{"MED", "Prince Mohammad bin Abdulaziz Airport", Address{"Medina", "Saudi Arabia"}},
	{"DMM", "King Fahd International Airport", Address{"Dammam", "Saudi Arabia"}},
	{"AHB", "Abha International Airport", Address{"Abha", "Saudi Arabia"}},
	{"TIF", "Taif International Airport", Address{"Taif", "Saudi Arabia"}},
	{"ELQ", "Prince Nayef bin Abdulaziz Airport", Address{"Buraidah", "Saudi Arabia"}},
	{"URY", "Gurayat Airport", Address{"Gurayat", "Saudi Arabia"}},
	{"HOF", "Al-Ahsa International Airport", Address{"Al-Ahsa", "Saudi Arabia"}},
	{"AJF", "Al-Jawf Airport", Address{"Al-Jawf", "Saudi Arabia"}},
	{"EAM", "Najran Airport", Address{"Najran", "Saudi Arabia"}},
	{"TUU", "Tabuk Airport", Address{"Tabuk", "Saudi Arabia"}},
	{"RAH", "Rafha Airport", Address{"Rafha", "Saudi Arabia"}},
	{"RAE", "Arar Airport", Address{"Arar", "Saudi Arabia"}},
	{"SHW", "Sharurah Airport", Address{"Sharurah", "Saudi Arabia"}},
	{"ABT", "Al-Baha Airport", Address{"Al-Baha", "Saudi Arabia"}},
	{"AQI", "Al Qaisumah Airport", Address{"Al Qaisumah", "Saudi Arabia"}},

	// UAE
	{"DXB", "Dubai International Airport", Address{"Dubai", "United Arab Emirates"}},
	{"AUH", "Abu Dhabi International Airport", Address{"Abu Dhabi", "United Arab Emirates"}},
	{"SHJ", "Sharjah International Airport", Address{"Sharjah", "United Arab Emirates"}},
	{"DWC", "Al Maktoum International Airport", Address{"Dubai", "United Arab Emirates"}},
	{"RKT", "Ras Al Khaimah International Airport", Address{"Ras Al Khaimah", "United Arab Emirates"}},
	{"FJR", "Fujairah International Airport", Address{"Fujairah", "United Arab Emirates"}},

	// Egypt
	{"CAI", "Cairo International Airport", Address{"Cairo", "Egypt"}},
	{"HRG", "Hurghada International Airport", Address{"Hurghada", "Egypt"}},
	{"SSH", "Sharm El Sheikh International Airport", Address{"Sharm El Sheikh", "Egypt"}},
	{"LXR", "Luxor International Airport", Address{"Luxor", "Egypt"}},
	{"ALY", "Alexandria International Airport", Address{"Alexandria", "Egypt"}},

	// Major international
	{"LHR", "Heathrow Airport", Address{"London", "United Kingdom"}},
	{"CDG", "Charles de Gaulle Airport", Address{"Paris", "France"}},
	{"FRA", "Frankfurt Airport", Address{"Frankfurt", "Germany"}},
	{"AMS", "Amsterdam Airport Schiphol", Address{"Amsterdam", "Netherlands"}},
	{"IST", "Istanbul Airport", Address{"Istanbul", "Turkey"}},
	{"JFK", "John F. Kennedy International Airport", Address{"New York", "USA"}},
	{"LAX", "Los Angeles International Airport", Address{"Los Angeles", "USA"}},
	{"ORD", "O'Hare International Airport", Address{"Chicago", "USA"}},
	{"HKG", "Hong Kong International Airport", Address{"Hong Kong", "China"}},
	{"SIN", "Singapore Changi Airport", Address{"Singapore", "Singapore"}},
	{"NRT", "Narita International Airport", Address{"Tokyo", "Japan"}},
	{"SYD", "Sydney Airport", Address{"Sydney", "Australia"}},
	{"YYZ", "Toronto Pearson International Airport", Address{"Toronto", "Canada"}},
}

// Known reports whether an IATA code exists in the catalog. Search params are
// validated against this before any network call.
func Known(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Lookup finds a catalog entry by IATA code.
func Lookup(code string) (Airport, bool) {
	code = strings.ToUpper(code)
	for _, a := range catalog {
		if a.IataCode == code {
			return a, true
		}
	}
	return Airport{}, false
}

// Popular returns the top catalog entries shown before the user has typed
// anything useful.
func Popular() []Airport {
	n := 5
	if len(catalog) < n {
		n = len(catalog)
	}
	out := make([]Airport, n)
	copy(out, catalog[:n])
	return out
}

// SearchLocal filters the catalog by keyword against code, name, city and
// country, case-insensitive, capped at MaxSuggestions.
func SearchLocal(keyword string) []Airport {
	return searchIn(catalog, keyword)
}

func searchIn(list []Airport, keyword string) []Airport {
	kw := strings.ToLower(keyword)
	result := make([]Airport, 0, MaxSuggestions)
	for _, a := range list {
		if matchesKeyword(a, kw) {
			result = append(result, a)
			if len(result) == MaxSuggestions {
				break
			}
		}
	}
	return result
}

func matchesKeyword(a Airport, kw string) bool {
	return strings.Contains(strings.ToLower(a.IataCode), kw) ||
		strings.Contains(strings.ToLower(a.Name), kw) ||
		strings.Contains(strings.ToLower(a.Address.CityName), kw) ||
		strings.Contains(strings.ToLower(a.Address.CountryName), kw)
}

// Merge combines the catalog with remote lookup results. Local entries win on
// code collision.
func Merge(remote []Airport) []Airport {
	merged := make([]Airport, len(catalog), len(catalog)+len(remote))
	copy(merged, catalog)
	for _, r := range remote {
		if _, ok := Lookup(r.IataCode); !ok {
			merged = append(merged, r)
		}
	}
	return merged
}

// AmadeusSource adapts the provider client to the LocationSearcher interface.
type AmadeusSource struct {
	Client *amadeus.Client
}

func (s *AmadeusSource) SearchAirports(ctx context.Context, keyword string, limit int) ([]Airport, error) {
	locations, err := s.Client.SearchLocations(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}
	return FromLocations(locations), nil
}

// FromLocations converts provider lookup records to catalog entries.
func FromLocations(locations []amadeus.Location) []Airport {
	out := make([]Airport, 0, len(locations))
	for _, l := range locations {
		out = append(out, Airport{
			IataCode: l.IataCode,
			Name:     l.Name,
			Address: Address{
				CityName:    l.Address.CityName,
				CountryName: l.Address.CountryName,
			},
		})
	}
	return out
}
