package utils

import (
	"testing"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *OfferParser {
	return NewOfferParser(logger.NewNop())
}

func rawOfferWithSegments(price string, segments []interface{}) entity.RawOffer {
	return entity.RawOffer{
		"id": "1",
		"price": map[string]interface{}{
			"total":    price,
			"currency": "USD",
		},
		"itineraries": []interface{}{
			map[string]interface{}{
				"duration": "PT10H30M",
				"segments": segments,
			},
		},
	}
}

func segment(carrier, departAt, arriveAt string) map[string]interface{} {
	s := map[string]interface{}{
		"carrierCode": carrier,
	}
	if departAt != "" {
		s["departure"] = map[string]interface{}{"at": departAt}
	}
	if arriveAt != "" {
		s["arrival"] = map[string]interface{}{"at": arriveAt}
	}
	return s
}

func TestNormalize_ValidOffer(t *testing.T) {
	parser := newTestParser()

	raw := rawOfferWithSegments("450.50", []interface{}{
		segment("AA", "2026-09-29T09:00:00", "2026-09-29T13:15:00"),
		segment("AA", "2026-09-29T15:00:00", "2026-09-29T19:30:00"),
	})
	raw["numberOfBookableSeats"] = float64(4)

	offer, err := parser.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "1", offer.ID)
	assert.Equal(t, 450.50, offer.Price)
	assert.Equal(t, "USD", offer.Currency)
	assert.Equal(t, "American Airlines", offer.Airline)
	assert.Equal(t, "AA", offer.AirlineCode)
	assert.Equal(t, 630, offer.DurationMinutes)
	assert.Equal(t, 1, offer.Stops)
	assert.Equal(t, 4, offer.BookableSeats)

	require.NotNil(t, offer.DepartureTime)
	require.NotNil(t, offer.ArrivalTime)
	assert.Equal(t, time.Date(2026, 9, 29, 9, 0, 0, 0, time.UTC), *offer.DepartureTime)
	assert.Equal(t, time.Date(2026, 9, 29, 19, 30, 0, 0, time.UTC), *offer.ArrivalTime)
}

func TestNormalize_RejectsBadPrices(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		name  string
		price map[string]interface{}
	}{
		{"zero price", map[string]interface{}{"total": "0"}},
		{"negative price", map[string]interface{}{"total": "-12.50"}},
		{"non-numeric price", map[string]interface{}{"total": "free"}},
		{"missing total", map[string]interface{}{"currency": "USD"}},
		{"missing price block", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := entity.RawOffer{
				"itineraries": []interface{}{
					map[string]interface{}{"segments": []interface{}{segment("AA", "", "")}},
				},
			}
			if tt.price != nil {
				raw["price"] = tt.price
			}

			offer, err := parser.Normalize(raw)
			assert.Nil(t, offer)

			var validationErr *entity.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "price", validationErr.Field)
		})
	}
}

func TestNormalize_RejectsMissingItineraries(t *testing.T) {
	parser := newTestParser()

	for _, raw := range []entity.RawOffer{
		{"price": map[string]interface{}{"total": "100.00"}},
		{"price": map[string]interface{}{"total": "100.00"}, "itineraries": []interface{}{}},
	} {
		offer, err := parser.Normalize(raw)
		assert.Nil(t, offer)

		var validationErr *entity.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "itineraries", validationErr.Field)
	}
}

func TestNormalize_StopsFromSegmentCount(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		segments int
		stops    int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
	}

	for _, tt := range tests {
		segments := make([]interface{}, 0, tt.segments)
		for i := 0; i < tt.segments; i++ {
			segments = append(segments, segment("LA", "", ""))
		}

		offer, err := parser.Normalize(rawOfferWithSegments("200.00", segments))
		require.NoError(t, err)
		assert.Equal(t, tt.stops, offer.Stops, "segments=%d", tt.segments)
	}
}

// An itinerary with no segments is still a valid offer: price and
// itinerary are present, everything else falls back to defaults.
func TestNormalize_EmptySegmentsAcceptedWithDefaults(t *testing.T) {
	parser := newTestParser()

	offer, err := parser.Normalize(rawOfferWithSegments("320.00", []interface{}{}))
	require.NoError(t, err)

	assert.Equal(t, 0, offer.Stops)
	assert.Equal(t, "Unknown", offer.Airline)
	assert.Empty(t, offer.AirlineCode)
	assert.Nil(t, offer.DepartureTime)
	assert.Nil(t, offer.ArrivalTime)
}

func TestNormalize_CurrencyDefaultsToUSD(t *testing.T) {
	parser := newTestParser()

	raw := entity.RawOffer{
		"price": map[string]interface{}{"total": "99.99"},
		"itineraries": []interface{}{
			map[string]interface{}{"segments": []interface{}{segment("IB", "", "")}},
		},
	}

	offer, err := parser.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "USD", offer.Currency)
	assert.Equal(t, "Iberia", offer.Airline)
}

func TestNormalize_UnknownCarrierGetsSyntheticName(t *testing.T) {
	parser := newTestParser()

	offer, err := parser.Normalize(rawOfferWithSegments("150.00", []interface{}{
		segment("ZZ", "", ""),
	}))
	require.NoError(t, err)
	assert.Equal(t, "Airline ZZ", offer.Airline)
	assert.Equal(t, "ZZ", offer.AirlineCode)
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		duration string
		minutes  int
	}{
		{"PT10H30M", 630},
		{"PT45M", 45},
		{"PT2H", 120},
		{"PT0H0M", 0},
		{"", 0},
		{"PT", 0},
		{"10H30M", 0},
		{"P1DT2H", 0},
		{"nonsense", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.minutes, ParseISODuration(tt.duration), "duration=%q", tt.duration)
	}
}

// A malformed duration is non-fatal; the offer survives with 0 minutes
func TestNormalize_MalformedDurationDefaultsToZero(t *testing.T) {
	parser := newTestParser()

	raw := rawOfferWithSegments("100.00", []interface{}{segment("KL", "", "")})
	raw["itineraries"].([]interface{})[0].(map[string]interface{})["duration"] = "bogus"

	offer, err := parser.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, offer.DurationMinutes)
}
