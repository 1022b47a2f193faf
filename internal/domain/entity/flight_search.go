package entity

import (
	"time"
)

// SearchQuery describes one route/date query against the provider
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Adults        int
	MaxResults    int
}

// RouteLabel renders the query as "EZE-MIA" for logs and summaries
func (q SearchQuery) RouteLabel() string {
	return q.Origin + "-" + q.Destination
}

// FlightSearch is one stored observation: a normalized offer plus the
// query context it was seen under. Rows are append-only; the same
// provider offer id seen in two runs becomes two rows on purpose, that
// is what makes the price time series.
type FlightSearch struct {
	ID              uint
	SearchTimestamp time.Time
	Origin          string
	Destination     string
	DepartureDate   time.Time
	ReturnDate      *time.Time
	Adults          int
	Price           float64
	Currency        string
	Airline         string
	FlightData      []byte
	CreatedAt       time.Time
}

// PriceStatistics aggregates one route over a time window, one entry
// per currency seen on the route
type PriceStatistics struct {
	Currency string  `json:"currency"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	AvgPrice float64 `json:"avgPrice"`
	Count    int64   `json:"count"`
}

// Route is an (origin, destination) pair observed historically
type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}
