package repository

import (
	"context"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAuditRepository implements AuditRepository, keeping the raw
// provider payloads alongside the canonical rows for later inspection
type MongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates a new raw-offer audit repository
func NewMongoAuditRepository(db *mongo.Database) repository.AuditRepository {
	collection := db.Collection("raw_offers")

	// Index on observedAt for retention queries
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.M{"observedAt": 1},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoAuditRepository{
		collection: collection,
	}
}

// SaveRawOffer stores one raw offer with its query context
func (r *MongoAuditRepository) SaveRawOffer(ctx context.Context, query entity.SearchQuery, raw entity.RawOffer) error {
	doc := bson.M{
		"origin":        query.Origin,
		"destination":   query.Destination,
		"departureDate": query.DepartureDate.Format("2006-01-02"),
		"offer":         raw,
		"observedAt":    time.Now(),
	}

	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
