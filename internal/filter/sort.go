package filter

import (
	"sort"

	"github.com/skyfare/skyfare/internal/duration"
	"github.com/skyfare/skyfare/internal/models"
)

// Sort keys.
const (
	SortByPrice     = "price"
	SortByDuration  = "duration"
	SortByDeparture = "departure"
)

// Sort orders flights ascending by the given key and returns a new slice;
// the input is left untouched. Ties keep their input order. An unknown key
// returns the copy unsorted.
func Sort(flights []models.FlightOffer, sortBy string) []models.FlightOffer {
	sorted := make([]models.FlightOffer, len(flights))
	copy(sorted, flights)

	switch sortBy {
	case SortByPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})

	case SortByDuration:
		sort.SliceStable(sorted, func(i, j int) bool {
			di := duration.Parse(sorted[i].Duration).TotalMinutes()
			dj := duration.Parse(sorted[j].Duration).TotalMinutes()
			return di < dj
		})

	case SortByDeparture:
		sort.SliceStable(sorted, func(i, j int) bool {
			ti, erri := models.ParseFlightTime(sorted[i].Departure)
			tj, errj := models.ParseFlightTime(sorted[j].Departure)
			if erri != nil || errj != nil {
				return erri == nil && errj != nil
			}
			return ti.Before(tj)
		})
	}

	return sorted
}
