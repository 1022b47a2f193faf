package repository

import (
	"context"
	"encoding/json"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightSearchRepository implements the FlightSearchRepository interface
type GormFlightSearchRepository struct {
	db *gorm.DB
}

// NewGormFlightSearchRepository creates a new GORM flight search repository
func NewGormFlightSearchRepository(db *gorm.DB) repository.FlightSearchRepository {
	return &GormFlightSearchRepository{
		db: db,
	}
}

// FlightSearches GORM model for database mapping
type FlightSearches struct {
	ID              uint       `gorm:"primaryKey"`
	SearchTimestamp time.Time  `gorm:"column:search_timestamp;autoCreateTime;index:idx_search_timestamp"`
	Origin          string     `gorm:"column:origin;type:varchar(3);not null;index:idx_origin_dest,priority:1"`
	Destination     string     `gorm:"column:destination;type:varchar(3);not null;index:idx_origin_dest,priority:2"`
	DepartureDate   time.Time  `gorm:"column:departure_date;type:date;not null;index:idx_departure_date"`
	ReturnDate      *time.Time `gorm:"column:return_date;type:date"`
	Adults          int        `gorm:"column:adults;default:1"`
	Price           float64    `gorm:"column:price;type:decimal(10,2);not null"`
	Currency        string     `gorm:"column:currency;type:varchar(3);default:USD"`
	Airline         string     `gorm:"column:airline;type:varchar(50)"`
	FlightData      []byte     `gorm:"column:flight_data;type:jsonb"`
	CreatedAt       time.Time
}

// TableName overrides the default table name
func (FlightSearches) TableName() string {
	return "flight_searches"
}

// Insert appends one observation. Rows are never updated in place; the
// same offer seen again in a later run gets a fresh row and id.
func (r *GormFlightSearchRepository) Insert(ctx context.Context, query entity.SearchQuery, offer *entity.FlightOffer) (uint, error) {
	flightData, err := json.Marshal(offer.Raw)
	if err != nil {
		return 0, &entity.PersistenceError{Operation: "insert", Err: err}
	}

	row := FlightSearches{
		Origin:        query.Origin,
		Destination:   query.Destination,
		DepartureDate: query.DepartureDate,
		ReturnDate:    query.ReturnDate,
		Adults:        query.Adults,
		Price:         offer.Price,
		Currency:      offer.Currency,
		Airline:       offer.Airline,
		FlightData:    flightData,
	}

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return 0, &entity.PersistenceError{Operation: "insert", Err: result.Error}
	}

	return row.ID, nil
}

// FindRecent returns the newest observations first
func (r *GormFlightSearchRepository) FindRecent(ctx context.Context, limit int) ([]*entity.FlightSearch, error) {
	var rows []FlightSearches
	result := r.db.WithContext(ctx).
		Order("search_timestamp DESC").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, &entity.PersistenceError{Operation: "find recent", Err: result.Error}
	}

	return toEntities(rows), nil
}

// FindByRoute returns observations for one route since a timestamp,
// newest first. Callers wanting ascending order for charts reverse it
// themselves.
func (r *GormFlightSearchRepository) FindByRoute(ctx context.Context, origin, destination string, since time.Time, limit int) ([]*entity.FlightSearch, error) {
	var rows []FlightSearches
	result := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ? AND search_timestamp >= ?", origin, destination, since).
		Order("search_timestamp DESC").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, &entity.PersistenceError{Operation: "find by route", Err: result.Error}
	}

	return toEntities(rows), nil
}

// PriceStatistics aggregates min/max/avg/count for a route since a
// timestamp, one entry per currency. An empty window yields an empty
// result, never an error.
func (r *GormFlightSearchRepository) PriceStatistics(ctx context.Context, origin, destination string, since time.Time) ([]*entity.PriceStatistics, error) {
	var stats []*entity.PriceStatistics
	result := r.db.WithContext(ctx).
		Model(&FlightSearches{}).
		Select("currency, MIN(price) AS min_price, MAX(price) AS max_price, AVG(price) AS avg_price, COUNT(*) AS count").
		Where("origin = ? AND destination = ? AND search_timestamp >= ?", origin, destination, since).
		Group("currency").
		Scan(&stats)
	if result.Error != nil {
		return nil, &entity.PersistenceError{Operation: "price statistics", Err: result.Error}
	}

	if stats == nil {
		stats = []*entity.PriceStatistics{}
	}
	return stats, nil
}

// DistinctRoutes lists every (origin, destination) pair ever observed
func (r *GormFlightSearchRepository) DistinctRoutes(ctx context.Context) ([]*entity.Route, error) {
	var routes []*entity.Route
	result := r.db.WithContext(ctx).
		Model(&FlightSearches{}).
		Distinct("origin", "destination").
		Order("origin, destination").
		Scan(&routes)
	if result.Error != nil {
		return nil, &entity.PersistenceError{Operation: "distinct routes", Err: result.Error}
	}

	if routes == nil {
		routes = []*entity.Route{}
	}
	return routes, nil
}

// PruneOlderThan bulk-deletes observations older than the given number
// of days and returns how many rows went away
func (r *GormFlightSearchRepository) PruneOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	result := r.db.WithContext(ctx).
		Where("search_timestamp < ?", cutoff).
		Delete(&FlightSearches{})
	if result.Error != nil {
		return 0, &entity.PersistenceError{Operation: "prune", Err: result.Error}
	}

	return result.RowsAffected, nil
}

func toEntities(rows []FlightSearches) []*entity.FlightSearch {
	searches := make([]*entity.FlightSearch, 0, len(rows))
	for _, row := range rows {
		searches = append(searches, &entity.FlightSearch{
			ID:              row.ID,
			SearchTimestamp: row.SearchTimestamp,
			Origin:          row.Origin,
			Destination:     row.Destination,
			DepartureDate:   row.DepartureDate,
			ReturnDate:      row.ReturnDate,
			Adults:          row.Adults,
			Price:           row.Price,
			Currency:        row.Currency,
			Airline:         row.Airline,
			FlightData:      row.FlightData,
			CreatedAt:       row.CreatedAt,
		})
	}
	return searches
}
