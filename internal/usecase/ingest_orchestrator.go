package usecase

import (
	"context"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/internal/domain/repository"
	"flightscan-service/pkg/logger"
	"flightscan-service/pkg/metrics"

	"github.com/pkg/errors"
)

// minQueryDelay is the floor on the pause between provider queries.
// Queries run sequentially on purpose so this pause means something
// against the provider's rate limits.
const minQueryDelay = 500 * time.Millisecond

// IngestOrchestrator drives route queries through the provider and
// writes the results through the store. This is the entry point the
// scheduler or the UI action invokes.
type IngestOrchestrator struct {
	providerRepo repository.FlightProviderRepository
	searchRepo   repository.FlightSearchRepository
	auditRepo    repository.AuditRepository
	metrics      *metrics.Metrics
	logger       logger.Logger
	queryDelay   time.Duration
	sleep        func(time.Duration)
}

// NewIngestOrchestrator creates a new ingest orchestrator. auditRepo
// may be nil when no audit sink is configured.
func NewIngestOrchestrator(
	providerRepo repository.FlightProviderRepository,
	searchRepo repository.FlightSearchRepository,
	auditRepo repository.AuditRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	queryDelay time.Duration,
) *IngestOrchestrator {
	if queryDelay < minQueryDelay {
		queryDelay = minQueryDelay
	}

	return &IngestOrchestrator{
		providerRepo: providerRepo,
		searchRepo:   searchRepo,
		auditRepo:    auditRepo,
		metrics:      m,
		logger:       logger,
		queryDelay:   queryDelay,
		sleep:        time.Sleep,
	}
}

// RunIngestion processes the queries in order. A failed query is
// recorded in the summary and the run moves on; a failed insert skips
// that one offer. The summary always comes back, even when everything
// failed.
func (o *IngestOrchestrator) RunIngestion(ctx context.Context, queries []entity.SearchQuery) *entity.IngestionSummary {
	summary := &entity.IngestionSummary{
		Attempted: len(queries),
	}

	for i, query := range queries {
		if i > 0 {
			o.sleep(o.queryDelay)
		}

		o.logger.Info("Running query",
			"route", query.RouteLabel(),
			"departureDate", query.DepartureDate.Format("2006-01-02"),
			"position", i+1,
			"total", len(queries))

		start := time.Now()
		offers, err := o.providerRepo.SearchFlights(ctx, query)
		o.metrics.SearchesTotal.Inc()
		o.metrics.UpstreamLatency.Observe(time.Since(start).Seconds())

		if err != nil {
			o.recordQueryError(summary, query, err)
			continue
		}

		if len(offers) == 0 {
			o.logger.Warn("No offers found", "route", query.RouteLabel())
			continue
		}

		summary.SavedCount += o.saveOffers(ctx, query, offers)
	}

	o.logger.Info("Ingestion run finished",
		"attempted", summary.Attempted,
		"saved", summary.SavedCount,
		"failedQueries", len(summary.Errors))

	return summary
}

// saveOffers persists one query's offers, skipping individual failures
func (o *IngestOrchestrator) saveOffers(ctx context.Context, query entity.SearchQuery, offers []*entity.FlightOffer) int {
	saved := 0
	for _, offer := range offers {
		id, err := o.searchRepo.Insert(ctx, query, offer)
		if err != nil {
			o.metrics.ErrorsCount.WithLabelValues("insert").Inc()
			o.logger.Error("Failed to save offer",
				"route", query.RouteLabel(),
				"offerId", offer.ID,
				"error", err)
			continue
		}
		saved++
		o.metrics.OffersSaved.Inc()

		if o.auditRepo != nil {
			if err := o.auditRepo.SaveRawOffer(ctx, query, offer.Raw); err != nil {
				// Audit is best effort, the canonical row is already in
				o.logger.Warn("Failed to write audit blob",
					"rowId", id,
					"error", err)
			}
		}
	}

	o.logger.Info("Offers saved",
		"route", query.RouteLabel(),
		"saved", saved,
		"received", len(offers))

	return saved
}

func (o *IngestOrchestrator) recordQueryError(summary *entity.IngestionSummary, query entity.SearchQuery, err error) {
	operation := "search"
	var timeoutErr *entity.TimeoutError
	if errors.As(err, &timeoutErr) {
		operation = "timeout"
	}
	o.metrics.ErrorsCount.WithLabelValues(operation).Inc()

	o.logger.Error("Query failed",
		"route", query.RouteLabel(),
		"kind", operation,
		"error", err)

	summary.Errors = append(summary.Errors, entity.QueryError{
		Query: query,
		Err:   err,
	})
}
