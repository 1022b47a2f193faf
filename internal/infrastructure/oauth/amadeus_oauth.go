package oauth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenSafetyMargin is how long before actual expiry a held token is
// already treated as stale and refreshed proactively
const tokenSafetyMargin = 60 * time.Second

// AmadeusOAuth owns the bearer credential for the Amadeus API. Callers
// never see the token/expiry pair directly; they go through
// GetValidToken, which is the only place a refresh can happen.
type AmadeusOAuth struct {
	conf   *clientcredentials.Config
	client *http.Client
	logger logger.Logger

	mu    sync.Mutex
	token *oauth2.Token
	now   func() time.Time
}

// NewAmadeusOAuth creates a new Amadeus OAuth handler
func NewAmadeusOAuth(clientID, clientSecret, baseURL string, timeout time.Duration, logger logger.Logger) *AmadeusOAuth {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &AmadeusOAuth{
		conf:   conf,
		client: &http.Client{Timeout: timeout},
		logger: logger,
		now:    time.Now,
	}
}

// GetValidToken returns the held access token, exchanging client
// credentials for a fresh one when none is held or the remaining
// lifetime is inside the safety margin. The held token is replaced
// wholesale, never patched.
func (o *AmadeusOAuth) GetValidToken(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.token != nil && o.now().Before(o.token.Expiry.Add(-tokenSafetyMargin)) {
		return o.token.AccessToken, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, o.client)
	token, err := o.conf.Token(ctx)
	if err != nil {
		return "", &entity.AuthError{Reason: "token exchange failed", Err: err}
	}
	if token.AccessToken == "" {
		return "", &entity.AuthError{Reason: "token response missing access_token"}
	}

	o.token = token
	o.logger.Info("Amadeus token refreshed", "expiresAt", token.Expiry.Format(time.RFC3339))

	return token.AccessToken, nil
}
