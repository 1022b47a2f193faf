package repository

import (
	"context"

	"flightscan-service/internal/domain/entity"
)

// Airport is provider reference data for one IATA location code
type Airport struct {
	IataCode string
	Name     string
	CityCode string
	Country  string
}

// FlightProviderRepository defines the interface for the upstream
// flight-offer provider. SearchFlights returns normalized offers in
// provider order; zero results is an empty slice, not an error.
type FlightProviderRepository interface {
	SearchFlights(ctx context.Context, query entity.SearchQuery) ([]*entity.FlightOffer, error)
	GetFlightDetails(ctx context.Context, offerID string) (entity.RawOffer, error)
	LookupAirport(ctx context.Context, iataCode string) (*Airport, error)
}
