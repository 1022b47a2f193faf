package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/internal/domain/repository"
	"flightscan-service/pkg/logger"
)

// ReportHandler serves the read side of the pipeline: recent
// observations, route history, statistics and the route list that the
// dashboard renders. Empty data comes back as empty JSON, never as an
// error.
type ReportHandler struct {
	searchRepo repository.FlightSearchRepository
	logger     logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(searchRepo repository.FlightSearchRepository, logger logger.Logger) *ReportHandler {
	return &ReportHandler{
		searchRepo: searchRepo,
		logger:     logger,
	}
}

// Register mounts the report routes on the mux
func (h *ReportHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/searches/recent", h.handleRecent)
	mux.HandleFunc("/api/v1/routes", h.handleRoutes)
	mux.HandleFunc("/api/v1/routes/history", h.handleHistory)
	mux.HandleFunc("/api/v1/routes/statistics", h.handleStatistics)
}

type searchResponse struct {
	ID              uint    `json:"id"`
	SearchTimestamp string  `json:"searchTimestamp"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureDate   string  `json:"departureDate"`
	ReturnDate      *string `json:"returnDate,omitempty"`
	Adults          int     `json:"adults"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	Airline         string  `json:"airline"`
}

func (h *ReportHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", 20)

	searches, err := h.searchRepo.FindRecent(r.Context(), limit)
	if err != nil {
		h.fail(w, "recent searches", err)
		return
	}

	writeJSON(w, toSearchResponses(searches))
}

func (h *ReportHandler) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.searchRepo.DistinctRoutes(r.Context())
	if err != nil {
		h.fail(w, "route list", err)
		return
	}

	writeJSON(w, routes)
}

func (h *ReportHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	origin, destination, ok := routeParams(w, r)
	if !ok {
		return
	}
	since := time.Now().AddDate(0, 0, -intParam(r, "days", 30))
	limit := intParam(r, "limit", 100)

	searches, err := h.searchRepo.FindByRoute(r.Context(), origin, destination, since, limit)
	if err != nil {
		h.fail(w, "route history", err)
		return
	}

	writeJSON(w, toSearchResponses(searches))
}

func (h *ReportHandler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	origin, destination, ok := routeParams(w, r)
	if !ok {
		return
	}
	since := time.Now().AddDate(0, 0, -intParam(r, "days", 30))

	stats, err := h.searchRepo.PriceStatistics(r.Context(), origin, destination, since)
	if err != nil {
		h.fail(w, "price statistics", err)
		return
	}

	writeJSON(w, stats)
}

// fail is for read-path store failures, which block the whole report
func (h *ReportHandler) fail(w http.ResponseWriter, operation string, err error) {
	h.logger.Error("Report query failed", "operation", operation, "error", err)
	http.Error(w, "query failed", http.StatusInternalServerError)
}

func routeParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	if origin == "" || destination == "" {
		http.Error(w, "origin and destination are required", http.StatusBadRequest)
		return "", "", false
	}
	return origin, destination, true
}

func intParam(r *http.Request, key string, defaultValue int) int {
	if value, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func toSearchResponses(searches []*entity.FlightSearch) []searchResponse {
	responses := make([]searchResponse, 0, len(searches))
	for _, s := range searches {
		resp := searchResponse{
			ID:              s.ID,
			SearchTimestamp: s.SearchTimestamp.Format(time.RFC3339),
			Origin:          s.Origin,
			Destination:     s.Destination,
			DepartureDate:   s.DepartureDate.Format("2006-01-02"),
			Adults:          s.Adults,
			Price:           s.Price,
			Currency:        s.Currency,
			Airline:         s.Airline,
		}
		if s.ReturnDate != nil {
			returnDate := s.ReturnDate.Format("2006-01-02")
			resp.ReturnDate = &returnDate
		}
		responses = append(responses, resp)
	}
	return responses
}
