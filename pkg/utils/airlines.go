package utils

import "fmt"

// airlineNames maps two-letter carrier codes to display names.
// Simplified list, extend as routes need it.
var airlineNames = map[string]string{
	"AA": "American Airlines",
	"UA": "United Airlines",
	"DL": "Delta Air Lines",
	"AR": "Aerolíneas Argentinas",
	"LA": "LATAM Airlines",
	"CM": "Copa Airlines",
	"AV": "Avianca",
	"G3": "Gol",
	"JJ": "LATAM Brasil",
	"IB": "Iberia",
	"AF": "Air France",
	"KL": "KLM",
	"LH": "Lufthansa",
	"BA": "British Airways",
	"TP": "TAP Portugal",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"TK": "Turkish Airlines",
}

// AirlineName resolves a carrier code to a display name, falling back
// to a synthetic label for codes not in the table
func AirlineName(carrierCode string) string {
	if name, ok := airlineNames[carrierCode]; ok {
		return name
	}
	return fmt.Sprintf("Airline %s", carrierCode)
}
