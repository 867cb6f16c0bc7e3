package normalize

// DefaultLogo is the placeholder shown for carriers without a known logo.
const DefaultLogo = "https://cdn-icons-png.flaticon.com/512/825/825517.png"

var airlineNames = map[string]string{
	"SV": "Saudia",
	"XY": "Flynas",
	"F3": "Flyadeal",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"EY": "Etihad Airways",
}

var airlineLogos = map[string]string{
	"SV": "https://upload.wikimedia.org/wikipedia/commons/thumb/4/49/Saudia_logo.svg/800px-Saudia_logo.svg.png",
	"XY": "https://upload.wikimedia.org/wikipedia/en/thumb/1/1e/Flynas_logo.svg/800px-Flynas_logo.svg.png",
	"F3": "https://upload.wikimedia.org/wikipedia/commons/thumb/5/5d/Flyadeal_logo.svg/800px-Flyadeal_logo.svg.png",
}

// AirlineName returns the display name for an IATA carrier code. Unknown
// codes are displayed as-is.
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code
}

// AirlineLogo returns the logo URL for a carrier code, or the placeholder.
func AirlineLogo(code string) string {
	if logo, ok := airlineLogos[code]; ok {
		return logo
	}
	return DefaultLogo
}
