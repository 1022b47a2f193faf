package entity

import (
	"time"
)

// RawOffer is one offer exactly as the provider returned it. It stays
// untyped until the parser converts it into a FlightOffer.
type RawOffer map[string]interface{}

// FlightOffer is the canonical, validated form of a provider offer
type FlightOffer struct {
	ID              string
	Price           float64
	Currency        string
	Airline         string
	AirlineCode     string
	DurationMinutes int
	Stops           int
	DepartureTime   *time.Time
	ArrivalTime     *time.Time
	BookableSeats   int
	Raw             RawOffer
}
