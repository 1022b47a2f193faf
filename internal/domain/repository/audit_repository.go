package repository

import (
	"context"

	"flightscan-service/internal/domain/entity"
)

// AuditRepository defines the interface for the optional raw-offer
// audit sink. Failures here never affect the ingestion result.
type AuditRepository interface {
	SaveRawOffer(ctx context.Context, query entity.SearchQuery, raw entity.RawOffer) error
}
