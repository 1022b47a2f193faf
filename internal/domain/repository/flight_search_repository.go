package repository

import (
	"context"
	"time"

	"flightscan-service/internal/domain/entity"
)

// FlightSearchRepository defines the interface for the stored-search table.
// Inserts are append-only; a successful Insert is visible to every
// subsequent read on the same handle.
type FlightSearchRepository interface {
	Insert(ctx context.Context, query entity.SearchQuery, offer *entity.FlightOffer) (uint, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.FlightSearch, error)
	FindByRoute(ctx context.Context, origin, destination string, since time.Time, limit int) ([]*entity.FlightSearch, error)
	PriceStatistics(ctx context.Context, origin, destination string, since time.Time) ([]*entity.PriceStatistics, error)
	DistinctRoutes(ctx context.Context) ([]*entity.Route, error)
	PruneOlderThan(ctx context.Context, days int) (int64, error)
}
