package normalize

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// BookingParams parameterize a booking URL for one flight.
type BookingParams struct {
	AirlineCode   string
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Passengers    int
	TravelClass   string
}

// BookingLink builds a carrier-specific booking URL. Carriers without a
// stable deep link get their booking landing page; unknown carriers fall back
// to an aggregator search URL. Pure string templating, no validation.
func BookingLink(p BookingParams) string {
	if p.Passengers < 1 {
		p.Passengers = 1
	}

	dep := truncateDate(p.DepartureDate)
	ret := truncateDate(p.ReturnDate)

	switch p.AirlineCode {
	case "F3":
		q := url.Values{
			"origin":      {p.Origin},
			"destination": {p.Destination},
			"departure":   {dep},
			"adults":      {strconv.Itoa(p.Passengers)},
		}
		if ret != "" {
			q.Set("type", "round")
			q.Set("return", ret)
		} else {
			q.Set("type", "oneway")
		}
		return "https://www.flyadeal.com/ar/search-flight?" + q.Encode()
	case "SV":
		return "https://www.saudia.com/booking/flights"
	case "XY":
		return "https://www.flynas.com/en/book-flight"
	case "EK":
		return "https://www.emirates.com/sa/english/book/"
	case "QR":
		return "https://www.qatarairways.com/en/book.html"
	case "EY":
		return "https://www.etihad.com/en/book"
	default:
		link := fmt.Sprintf("https://www.skyscanner.net/transport/flights/%s/%s/%s",
			p.Origin, p.Destination, dep)
		if ret != "" {
			link += "/" + ret
		}
		return fmt.Sprintf("%s/?adults=%d&cabinclass=%s&airlines=%s",
			link, p.Passengers, cabinClass(p.TravelClass), url.QueryEscape(p.AirlineCode))
	}
}

func cabinClass(travelClass string) string {
	switch strings.ToUpper(travelClass) {
	case "BUSINESS":
		return "business"
	case "FIRST":
		return "first"
	default:
		return "economy"
	}
}

// truncateDate keeps the date part of an ISO timestamp, avoiding timezone
// shifts from a full parse.
func truncateDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
