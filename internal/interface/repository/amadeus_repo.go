package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/internal/domain/repository"
	"flightscan-service/internal/infrastructure/oauth"
	"flightscan-service/pkg/logger"
	"flightscan-service/pkg/metrics"
	"flightscan-service/pkg/utils"

	"github.com/pkg/errors"
)

// AmadeusRepository talks to the Amadeus flight-offers API. Every call
// goes through the OAuth handler first; no token is cached here.
type AmadeusRepository struct {
	logger  logger.Logger
	oauth   *oauth.AmadeusOAuth
	parser  *utils.OfferParser
	metrics *metrics.Metrics
	baseURL string
	client  *http.Client
}

// NewAmadeusRepository creates a new Amadeus repository
func NewAmadeusRepository(oauthHandler *oauth.AmadeusOAuth, parser *utils.OfferParser, m *metrics.Metrics, baseURL string, timeout time.Duration, logger logger.Logger) repository.FlightProviderRepository {
	return &AmadeusRepository{
		logger:  logger,
		oauth:   oauthHandler,
		parser:  parser,
		metrics: m,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SearchFlights runs one offer search and returns normalized offers in
// provider order. Offers that fail normalization are dropped, never
// stored. Zero results is an empty slice, not an error.
func (r *AmadeusRepository) SearchFlights(ctx context.Context, query entity.SearchQuery) ([]*entity.FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.DepartureDate.Format("2006-01-02"))
	params.Set("adults", strconv.Itoa(query.Adults))
	params.Set("max", strconv.Itoa(query.MaxResults))
	params.Set("currencyCode", "USD")
	if query.ReturnDate != nil {
		params.Set("returnDate", query.ReturnDate.Format("2006-01-02"))
	}

	var response struct {
		Data []entity.RawOffer `json:"data"`
	}
	if err := r.getJSON(ctx, "flight search", "/v2/shopping/flight-offers", params, &response); err != nil {
		return nil, err
	}

	offers := make([]*entity.FlightOffer, 0, len(response.Data))
	rejected := 0
	for _, raw := range response.Data {
		offer, err := r.parser.Normalize(raw)
		if err != nil {
			rejected++
			r.metrics.OffersRejected.Inc()
			r.logger.Warn("Dropping offer that failed normalization",
				"route", query.RouteLabel(),
				"error", err)
			continue
		}
		offers = append(offers, offer)
	}

	r.logger.Info("Flight search completed",
		"route", query.RouteLabel(),
		"offers", len(offers),
		"rejected", rejected)

	return offers, nil
}

// GetFlightDetails fetches the full payload for one offer id
func (r *AmadeusRepository) GetFlightDetails(ctx context.Context, offerID string) (entity.RawOffer, error) {
	var response struct {
		Data entity.RawOffer `json:"data"`
	}
	path := "/v2/shopping/flight-offers/" + url.PathEscape(offerID)
	if err := r.getJSON(ctx, "flight details", path, nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// LookupAirport fetches reference data for an IATA location code.
// Returns nil without error when the provider knows nothing about it.
func (r *AmadeusRepository) LookupAirport(ctx context.Context, iataCode string) (*repository.Airport, error) {
	params := url.Values{}
	params.Set("subType", "AIRPORT")
	params.Set("keyword", iataCode)

	var response struct {
		Data []struct {
			IataCode string `json:"iataCode"`
			Name     string `json:"name"`
			Address  struct {
				CityCode    string `json:"cityCode"`
				CountryName string `json:"countryName"`
			} `json:"address"`
		} `json:"data"`
	}
	if err := r.getJSON(ctx, "airport lookup", "/v1/reference-data/locations", params, &response); err != nil {
		return nil, err
	}

	for _, loc := range response.Data {
		if loc.IataCode == iataCode {
			return &repository.Airport{
				IataCode: loc.IataCode,
				Name:     loc.Name,
				CityCode: loc.Address.CityCode,
				Country:  loc.Address.CountryName,
			}, nil
		}
	}

	return nil, nil
}

// getJSON performs one authenticated GET against the provider and
// decodes the body into out
func (r *AmadeusRepository) getJSON(ctx context.Context, operation, path string, params url.Values, out interface{}) error {
	token, err := r.oauth.GetValidToken(ctx)
	if err != nil {
		return err
	}

	endpoint := r.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s request", operation)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &entity.TimeoutError{Operation: operation, Err: err}
		}
		return &entity.UpstreamError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		r.logger.Error("Amadeus returned non-success status",
			"operation", operation,
			"status", resp.StatusCode,
			"body", fmt.Sprintf("%v", errorBody))
		return &entity.UpstreamError{Operation: operation, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &entity.UpstreamError{Operation: operation, Err: errors.Wrap(err, "decoding response")}
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
