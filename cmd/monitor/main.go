package main

import (
	"context"
	"flag"
	"time"

	"flightscan-service/internal/domain/entity"
	domainRepo "flightscan-service/internal/domain/repository"
	"flightscan-service/internal/infrastructure/config"
	"flightscan-service/internal/infrastructure/oauth"
	"flightscan-service/internal/infrastructure/persistence"
	"flightscan-service/internal/interface/repository"
	"flightscan-service/internal/usecase"
	"flightscan-service/pkg/logger"
	"flightscan-service/pkg/metrics"
	"flightscan-service/pkg/utils"
)

// monitoredRoute is one route the scheduled run keeps an eye on
type monitoredRoute struct {
	origin      string
	destination string
	daysAhead   int
	adults      int
	description string
}

// defaultRoutes returns the routes monitored on every scheduled run.
// Departure is daysAhead out, return a week after that.
func defaultRoutes() []monitoredRoute {
	return []monitoredRoute{
		{origin: "EZE", destination: "MIA", daysAhead: 30, adults: 1, description: "Buenos Aires → Miami"},
		{origin: "EZE", destination: "MAD", daysAhead: 45, adults: 1, description: "Buenos Aires → Madrid"},
		{origin: "AEP", destination: "SCL", daysAhead: 20, adults: 1, description: "Buenos Aires Aeroparque → Santiago"},
		{origin: "EZE", destination: "NYC", daysAhead: 35, adults: 1, description: "Buenos Aires → Nueva York"},
	}
}

func buildQueries(routes []monitoredRoute, maxResults int) []entity.SearchQuery {
	queries := make([]entity.SearchQuery, 0, len(routes))
	for _, route := range routes {
		departure := time.Now().AddDate(0, 0, route.daysAhead)
		returnDate := departure.AddDate(0, 0, 7)

		queries = append(queries, entity.SearchQuery{
			Origin:        route.origin,
			Destination:   route.destination,
			DepartureDate: departure,
			ReturnDate:    &returnDate,
			Adults:        route.adults,
			MaxResults:    maxResults,
		})
	}
	return queries
}

func main() {
	pruneDays := flag.Int("prune-days", 0, "delete observations older than this many days after the run (0 disables)")
	maxResults := flag.Int("max-results", 10, "maximum offers requested per query")
	flag.Parse()

	// Create logger
	log := logger.NewLogger()
	log.Info("Starting flight monitor run")

	// Load configuration; a missing required value is fatal
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to PostgreSQL
	log.Info("Connecting to PostgreSQL", "host", cfg.DBHost, "database", cfg.DBName)
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	searchRepo := repository.NewGormFlightSearchRepository(gormDB)

	// Optional Mongo audit sink
	var auditRepo domainRepo.AuditRepository
	if cfg.AuditEnabled() {
		log.Info("Connecting to MongoDB audit sink")
		mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		defer mongoClient.Disconnect(ctx)
		auditRepo = repository.NewMongoAuditRepository(persistence.GetDatabase(mongoClient, cfg.MongoDB))
	}

	// Amadeus client stack
	m := metrics.NewMetrics("flightscan")
	amadeusOAuth := oauth.NewAmadeusOAuth(cfg.AmadeusAPIKey, cfg.AmadeusAPISecret, cfg.AmadeusBaseURL, cfg.RequestTimeout, log)
	offerParser := utils.NewOfferParser(log)
	providerRepo := repository.NewAmadeusRepository(amadeusOAuth, offerParser, m, cfg.AmadeusBaseURL, cfg.RequestTimeout, log)

	orchestrator := usecase.NewIngestOrchestrator(providerRepo, searchRepo, auditRepo, m, log, cfg.QueryDelay)

	routes := defaultRoutes()
	queries := buildQueries(routes, *maxResults)
	log.Info("Routes configured", "count", len(routes))

	summary := orchestrator.RunIngestion(ctx, queries)

	for _, queryErr := range summary.Errors {
		log.Warn("Query ended with error",
			"route", queryErr.Query.RouteLabel(),
			"error", queryErr.Err)
	}

	if *pruneDays > 0 {
		deleted, err := searchRepo.PruneOlderThan(ctx, *pruneDays)
		if err != nil {
			log.Error("Retention prune failed", "error", err)
		} else {
			log.Info("Retention prune completed", "days", *pruneDays, "deleted", deleted)
		}
	}

	// Per-query failures are reported above, not via the exit status.
	// A non-zero exit is reserved for config/connection problems.
	log.Info("Monitor run completed",
		"attempted", summary.Attempted,
		"saved", summary.SavedCount,
		"failedQueries", len(summary.Errors))
}
