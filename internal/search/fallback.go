package search

import (
	"fmt"
	"math/rand"

	"github.com/skyfare/skyfare/internal/models"
	"github.com/skyfare/skyfare/internal/normalize"
	"github.com/skyfare/skyfare/pkg/currency"
)

// FallbackCount is the size of the synthesized collection served when the
// provider is unreachable.
const FallbackCount = 8

var fallbackCarriers = []struct {
	name      string
	code      string
	basePrice int
}{
	{"Saudia", "SV", 450},
	{"Flynas", "XY", 380},
	{"Emirates", "EK", 620},
	{"Qatar Airways", "QR", 510},
	{"Etihad Airways", "EY", 510},
}

var fallbackDurations = []string{"1h 30m", "2h 15m", "3h 00m"}

// GenerateFallback synthesizes a deterministic-shape mock collection for
// params: fixed airline rotation, departure hours, durations and stops, with
// only the prices randomized. The records carry the same shape as live ones
// so the view always has renderable content.
func GenerateFallback(params models.SearchParams, rng *rand.Rand) []models.FlightOffer {
	origin := params.Origin
	if origin == "" {
		origin = "JED"
	}
	destination := params.Destination
	if destination == "" {
		destination = "RUH"
	}
	date := params.DepartureDate
	if date == "" {
		date = "2024-01-20"
	}

	flights := make([]models.FlightOffer, 0, FallbackCount)
	for i := 0; i < FallbackCount; i++ {
		carrier := fallbackCarriers[i%len(fallbackCarriers)]
		price := int(float64(carrier.basePrice) * (0.9 + rng.Float64()*0.4))

		stops := 0
		if i%4 == 0 {
			stops = 1
		}

		aircraft := "Airbus A320"
		if i%2 == 0 {
			aircraft = "Boeing 777"
		}

		flights = append(flights, models.FlightOffer{
			ID:             fmt.Sprintf("mock-%d", i+1),
			Airline:        carrier.name,
			AirlineCode:    carrier.code,
			Origin:         origin,
			Destination:    destination,
			Departure:      fmt.Sprintf("%sT%02d:00:00", date, 8+i),
			Arrival:        fmt.Sprintf("%sT%02d:30:00", date, 9+i),
			Duration:       fallbackDurations[i%len(fallbackDurations)],
			Stops:          stops,
			Price:          price,
			PriceFormatted: currency.FormatSAR(float64(price)),
			Currency:       "SAR",
			FlightNumber:   fmt.Sprintf("%s%d", carrier.code, 1000+i),
			Aircraft:       aircraft,
			Logo:           normalize.AirlineLogo(carrier.code),
			BookingLink: normalize.BookingLink(normalize.BookingParams{
				AirlineCode:   carrier.code,
				Origin:        origin,
				Destination:   destination,
				DepartureDate: date,
				ReturnDate:    params.ReturnDate,
				Passengers:    params.Passengers,
				TravelClass:   params.Class,
			}),
			SeatsAvailable: rng.Intn(20) + 10,
		})
	}

	return flights
}
