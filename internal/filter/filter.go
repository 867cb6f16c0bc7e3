// Package filter applies the client's filter criteria and sort keys to a
// flight collection. Filtering is a stable subsequence operation: predicates
// are conjunctive across dimensions and disjunctive within one, and the input
// order is never disturbed.
package filter

import (
	"github.com/skyfare/skyfare/internal/duration"
	"github.com/skyfare/skyfare/internal/models"
)

// Apply returns the flights matching criteria, preserving relative order.
func Apply(flights []models.FlightOffer, criteria models.FilterCriteria) []models.FlightOffer {
	result := make([]models.FlightOffer, 0, len(flights))
	for _, f := range flights {
		if matches(f, criteria) {
			result = append(result, f)
		}
	}
	return result
}

func matches(f models.FlightOffer, c models.FilterCriteria) bool {
	if len(c.Stops) > 0 && !containsInt(c.Stops, f.Stops) {
		return false
	}

	if f.Price < c.PriceRange[0] || f.Price > c.PriceRange[1] {
		return false
	}

	if len(c.Airlines) > 0 && !containsString(c.Airlines, f.Airline) {
		return false
	}

	if len(c.DepartureTime) > 0 {
		bucket, ok := departureBucket(f.Departure)
		if !ok || !containsString(c.DepartureTime, bucket) {
			return false
		}
	}

	// Re-parse the display string rather than trusting a cached numeric
	// field; collections can arrive from different sources. An unparseable
	// duration counts as zero hours.
	hours := duration.Parse(f.Duration).TotalHours
	if hours < c.Duration[0] || hours > c.Duration[1] {
		return false
	}

	return true
}

// departureBucket classifies a departure timestamp by its local hour.
func departureBucket(departure string) (string, bool) {
	t, err := models.ParseFlightTime(departure)
	if err != nil {
		return "", false
	}
	switch hour := t.Hour(); {
	case hour >= 6 && hour < 12:
		return models.BucketMorning, true
	case hour >= 12 && hour < 18:
		return models.BucketAfternoon, true
	case hour >= 18:
		return models.BucketEvening, true
	default:
		return models.BucketNight, true
	}
}

// CountByStops computes the sidebar counts. The two-plus bucket counts
// stops >= 2; the stops filter itself matches exact values only.
func CountByStops(flights []models.FlightOffer) models.StopCounts {
	var counts models.StopCounts
	for _, f := range flights {
		switch {
		case f.Stops == 0:
			counts.Direct++
		case f.Stops == 1:
			counts.OneStop++
		default:
			counts.TwoPlus++
		}
	}
	return counts
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
