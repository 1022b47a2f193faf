package main

import (
	"flightscan-service/internal/infrastructure/config"
	"flightscan-service/internal/infrastructure/persistence"
	"flightscan-service/internal/interface/repository"
	"flightscan-service/pkg/logger"
)

// Bootstraps the flight_searches schema and reports the current row
// count, so a fresh database is ready before the first monitor run.
func main() {
	log := logger.NewLogger()
	log.Info("Initializing Flightscan database")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	log.Info("Connecting to PostgreSQL", "host", cfg.DBHost, "database", cfg.DBName)
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	if err := gormDB.AutoMigrate(&repository.FlightSearches{}); err != nil {
		log.Fatal("Failed to migrate schema", "error", err)
	}

	var count int64
	if err := gormDB.Model(&repository.FlightSearches{}).Count(&count).Error; err != nil {
		log.Fatal("Failed to count existing rows", "error", err)
	}

	log.Info("Database ready", "table", "flight_searches", "existingRows", count)
}
