package utils

import (
	"encoding/json"
	"regexp"
	"strconv"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/pkg/logger"
)

// OfferParser converts raw Amadeus offer payloads into canonical
// FlightOffer values. Parsing is deterministic and side-effect free.
//
// Policy for offers whose itinerary has an empty segment list: accept
// with defaults (stops 0, unknown airline, no times). Price and
// itinerary presence are the only fatal checks.
type OfferParser struct {
	logger logger.Logger
}

// NewOfferParser creates a new offer parser
func NewOfferParser(logger logger.Logger) *OfferParser {
	return &OfferParser{
		logger: logger,
	}
}

// amadeusTimeLayout is what the search endpoint puts in departure.at /
// arrival.at, a local timestamp with no zone designator
const amadeusTimeLayout = "2006-01-02T15:04:05"

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// Normalize validates a raw offer and converts it to a FlightOffer.
// Returns a ValidationError when the price is missing, non-numeric or
// not positive, or when the itinerary list is empty. Everything else
// degrades to a default instead of rejecting.
func (p *OfferParser) Normalize(raw entity.RawOffer) (*entity.FlightOffer, error) {
	price, ok := extractPrice(raw)
	if !ok {
		p.logger.Debug("Rejecting offer", "reason", "price missing or not numeric")
		return nil, &entity.ValidationError{Field: "price", Reason: "missing or not numeric"}
	}
	if price <= 0 {
		p.logger.Debug("Rejecting offer", "reason", "price not positive", "price", price)
		return nil, &entity.ValidationError{Field: "price", Reason: "must be positive"}
	}

	currency := "USD"
	if priceBlock, ok := raw["price"].(map[string]interface{}); ok {
		if c, ok := priceBlock["currency"].(string); ok && c != "" {
			currency = c
		}
	}

	itineraries, _ := raw["itineraries"].([]interface{})
	if len(itineraries) == 0 {
		return nil, &entity.ValidationError{Field: "itineraries", Reason: "missing"}
	}

	primary, _ := itineraries[0].(map[string]interface{})

	offer := &entity.FlightOffer{
		Price:    price,
		Currency: currency,
		Airline:  "Unknown",
		Raw:      raw,
	}

	if id, ok := raw["id"].(string); ok {
		offer.ID = id
	}
	if seats, ok := asFloat(raw["numberOfBookableSeats"]); ok && seats > 0 {
		offer.BookableSeats = int(seats)
	}

	if primary != nil {
		if d, ok := primary["duration"].(string); ok {
			offer.DurationMinutes = ParseISODuration(d)
		}

		segments, _ := primary["segments"].([]interface{})
		if len(segments) > 0 {
			offer.Stops = len(segments) - 1

			first, _ := segments[0].(map[string]interface{})
			last, _ := segments[len(segments)-1].(map[string]interface{})

			if first != nil {
				if code, ok := first["carrierCode"].(string); ok && code != "" {
					offer.AirlineCode = code
					offer.Airline = AirlineName(code)
				}
				offer.DepartureTime = segmentTime(first, "departure")
			}
			if last != nil {
				offer.ArrivalTime = segmentTime(last, "arrival")
			}
		}
	}

	return offer, nil
}

// ParseISODuration converts an ISO-8601 duration of the form PT<H>H<M>M
// (either component optional) into total minutes. A malformed or empty
// token yields 0; bad durations are not worth rejecting an offer over.
func ParseISODuration(duration string) int {
	match := durationPattern.FindStringSubmatch(duration)
	if match == nil || (match[1] == "" && match[2] == "") {
		return 0
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])

	return hours*60 + minutes
}

// extractPrice pulls price.total out of the nested price block. The
// API sends the total as a string, but tolerate plain numbers too.
func extractPrice(raw entity.RawOffer) (float64, bool) {
	priceBlock, ok := raw["price"].(map[string]interface{})
	if !ok {
		return 0, false
	}
	return asFloat(priceBlock["total"])
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// segmentTime reads segment[key].at, returning nil when absent or
// unparseable. Times are never fabricated.
func segmentTime(segment map[string]interface{}, key string) *time.Time {
	endpoint, ok := segment[key].(map[string]interface{})
	if !ok {
		return nil
	}
	at, ok := endpoint["at"].(string)
	if !ok || at == "" {
		return nil
	}

	t, err := time.Parse(amadeusTimeLayout, at)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, at); err != nil {
			return nil
		}
	}
	return &t
}
