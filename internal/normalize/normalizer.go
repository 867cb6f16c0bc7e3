// Package normalize maps the provider's nested offer/itinerary/segment
// structure onto flat FlightOffer records. Missing optional fields resolve to
// documented fallback values; only an offer without a usable itinerary is
// dropped.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/skyfare/skyfare/internal/amadeus"
	"github.com/skyfare/skyfare/internal/models"
	"github.com/skyfare/skyfare/pkg/currency"
)

// Offers normalizes a bulk response. Offers without a usable itinerary are
// dropped, not defaulted.
func Offers(offers []amadeus.Offer, params models.SearchParams) []models.FlightOffer {
	result := make([]models.FlightOffer, 0, len(offers))
	for i, o := range offers {
		if f := Offer(o, i, params); f != nil {
			result = append(result, *f)
		}
	}
	return result
}

// Offer normalizes a single provider offer. It returns nil when the offer has
// no itinerary or no segments; in every other case it returns a well-formed
// record, falling back per field.
func Offer(o amadeus.Offer, index int, params models.SearchParams) *models.FlightOffer {
	if len(o.Itineraries) == 0 {
		return nil
	}
	itinerary := o.Itineraries[0]
	segments := itinerary.Segments
	if len(segments) == 0 {
		return nil
	}
	first := segments[0]
	last := segments[len(segments)-1]

	airlineCode := carrierCode(first)

	id := o.ID
	if id == "" {
		id = fmt.Sprintf("flight-%d", index)
	}

	origin := first.Departure.IataCode
	if origin == "" {
		origin = params.Origin
	}
	destination := last.Arrival.IataCode
	if destination == "" {
		destination = params.Destination
	}

	price := parsePrice(o.Price.Total)

	curr := o.Price.Currency
	if curr == "" {
		curr = "SAR"
	}

	aircraft := first.Aircraft.Code
	if aircraft == "" {
		aircraft = "Unknown"
	}

	depDate := first.Departure.At
	if depDate == "" {
		depDate = params.DepartureDate
	}

	return &models.FlightOffer{
		ID:             id,
		Airline:        AirlineName(airlineCode),
		AirlineCode:    airlineCode,
		Origin:         origin,
		Destination:    destination,
		Departure:      first.Departure.At,
		Arrival:        last.Arrival.At,
		Duration:       convertDuration(itinerary.Duration),
		Stops:          stops(len(segments)),
		Price:          price,
		PriceFormatted: currency.FormatSAR(float64(price)),
		Currency:       curr,
		FlightNumber:   first.Number,
		Aircraft:       aircraft,
		Logo:           AirlineLogo(airlineCode),
		BookingLink: BookingLink(BookingParams{
			AirlineCode:   airlineCode,
			Origin:        origin,
			Destination:   destination,
			DepartureDate: depDate,
			ReturnDate:    params.ReturnDate,
			Passengers:    params.Passengers,
			TravelClass:   params.Class,
		}),
		SeatsAvailable: o.NumberOfBookableSeats,
	}
}

// carrierCode prefers the operating carrier over the marketing one.
func carrierCode(seg amadeus.Segment) string {
	if seg.Operating != nil && seg.Operating.CarrierCode != "" {
		return seg.Operating.CarrierCode
	}
	if seg.CarrierCode != "" {
		return seg.CarrierCode
	}
	return "NA"
}

func stops(segmentCount int) int {
	if segmentCount < 1 {
		return 0
	}
	return segmentCount - 1
}

func parsePrice(total string) int {
	v, err := strconv.ParseFloat(total, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(math.Round(v))
}

var isoDuration = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// convertDuration renders the itinerary's ISO-8601 duration as a display
// string: "2h 30m", "2h", or "30m".
func convertDuration(iso string) string {
	if iso == "" {
		return "Unknown"
	}
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return "Unknown"
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatTime renders an ISO timestamp as "HH:MM" for single-record display.
// Anything unparseable degrades to a placeholder instead of failing.
func FormatTime(iso string) string {
	if iso == "" {
		return "--:--"
	}
	t, err := models.ParseFlightTime(iso)
	if err != nil {
		return "--:--"
	}
	return t.Format("15:04")
}

// FormatDate renders an ISO timestamp as a short date, "---" on failure.
func FormatDate(iso string) string {
	if iso == "" {
		return "---"
	}
	t, err := models.ParseFlightTime(iso)
	if err != nil {
		return "---"
	}
	return t.Format("Mon, 2 Jan")
}
