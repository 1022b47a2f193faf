package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightscan-service/internal/infrastructure/config"
	"flightscan-service/internal/infrastructure/persistence"
	"flightscan-service/internal/interface/repository"
	"flightscan-service/internal/interface/web"
	"flightscan-service/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flightscan report server")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Connect to PostgreSQL
	log.Info("Connecting to PostgreSQL", "host", cfg.DBHost, "database", cfg.DBName)
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	searchRepo := repository.NewGormFlightSearchRepository(gormDB)
	reportHandler := web.NewReportHandler(searchRepo, log)

	// Set up HTTP server for reports and metrics
	mux := http.NewServeMux()
	reportHandler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("Flightscan report server stopped")
}
