// Package duration normalizes the heterogeneous duration strings that flight
// offers arrive with: ISO-8601 ("PT2H30M"), "2h 30m", "2:30", and plain
// decimal hours. Parsing never fails; anything unrecognized collapses to the
// zero duration.
package duration

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Duration is a parsed flight duration.
type Duration struct {
	Hours      int     `json:"hours"`
	Minutes    int     `json:"minutes"`
	TotalHours float64 `json:"totalHours"`
	Formatted  string  `json:"formatted"`
}

var (
	isoHours   = regexp.MustCompile(`(\d+)H`)
	isoMinutes = regexp.MustCompile(`(\d+)M`)
	hmHours    = regexp.MustCompile(`(\d+)\s*h`)
	hmMinutes  = regexp.MustCompile(`(\d+)\s*m`)
)

// Parse interprets s using a fixed precedence: ISO-8601 "PT" form, then
// "2h 30m", then "2:30", then decimal hours. Unrecognized or empty input
// yields the zero duration {0, 0, 0, "0h 0m"}; Parse is pure and never
// returns an error.
func Parse(s string) Duration {
	hours, minutes := 0, 0

	switch {
	case strings.Contains(s, "PT"):
		hours = firstInt(isoHours, s)
		minutes = firstInt(isoMinutes, s)

	case strings.Contains(s, "h") || strings.Contains(s, "m"):
		hours = firstInt(hmHours, s)
		minutes = firstInt(hmMinutes, s)

	case strings.Contains(s, ":"):
		parts := strings.Split(s, ":")
		if len(parts) >= 2 {
			hours = atoiOrZero(parts[0])
			minutes = atoiOrZero(parts[1])
		}

	default:
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && v >= 0 {
			hours = int(math.Floor(v))
			minutes = int(math.Round((v - float64(hours)) * 60))
		}
	}

	if hours < 0 {
		hours = 0
	}
	if minutes < 0 {
		minutes = 0
	}

	return Duration{
		Hours:      hours,
		Minutes:    minutes,
		TotalHours: float64(hours) + float64(minutes)/60,
		Formatted:  Format(hours, minutes),
	}
}

// Format renders the canonical "{h}h {m}m" form.
func Format(hours, minutes int) string {
	return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
}

// TotalMinutes returns the duration in whole minutes.
func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

func firstInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return atoiOrZero(m[1])
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
