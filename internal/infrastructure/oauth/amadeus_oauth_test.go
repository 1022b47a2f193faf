package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightscan-service/internal/domain/entity"
	"flightscan-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenServer struct {
	*httptest.Server
	exchanges int
	status    int
	body      map[string]interface{}
}

func newTokenServer(t *testing.T) *tokenServer {
	ts := &tokenServer{
		status: http.StatusOK,
		body: map[string]interface{}{
			"access_token": "token-1",
			"token_type":   "Bearer",
			"expires_in":   1799,
		},
	}

	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/security/oauth2/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "test-key", r.PostForm.Get("client_id"))
		assert.Equal(t, "test-secret", r.PostForm.Get("client_secret"))

		ts.exchanges++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ts.status)
		json.NewEncoder(w).Encode(ts.body)
	}))

	return ts
}

func newTestOAuth(serverURL string) *AmadeusOAuth {
	return NewAmadeusOAuth("test-key", "test-secret", serverURL, 5*time.Second, logger.NewNop())
}

func TestGetValidToken_ReusesTokenWithinLifetime(t *testing.T) {
	server := newTokenServer(t)
	defer server.Close()

	o := newTestOAuth(server.URL)

	first, err := o.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", first)

	second, err := o.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1, server.exchanges, "second call must not hit the network")
}

func TestGetValidToken_RefreshesInsideSafetyMargin(t *testing.T) {
	server := newTokenServer(t)
	defer server.Close()

	o := newTestOAuth(server.URL)

	_, err := o.GetValidToken(context.Background())
	require.NoError(t, err)

	// Push the held token to 30s of remaining life, inside the 60s margin
	o.token.Expiry = time.Now().Add(30 * time.Second)
	server.body["access_token"] = "token-2"

	refreshed, err := o.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", refreshed)
	assert.Equal(t, 2, server.exchanges, "expiring token must trigger exactly one refresh")
}

func TestGetValidToken_NonSuccessStatusIsAuthError(t *testing.T) {
	server := newTokenServer(t)
	defer server.Close()
	server.status = http.StatusUnauthorized
	server.body = map[string]interface{}{"error": "invalid_client"}

	o := newTestOAuth(server.URL)

	token, err := o.GetValidToken(context.Background())
	assert.Empty(t, token)

	var authErr *entity.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestGetValidToken_MissingTokenFieldIsAuthError(t *testing.T) {
	server := newTokenServer(t)
	defer server.Close()
	server.body = map[string]interface{}{"expires_in": 1799}

	o := newTestOAuth(server.URL)

	token, err := o.GetValidToken(context.Background())
	assert.Empty(t, token)

	var authErr *entity.AuthError
	require.ErrorAs(t, err, &authErr)
}
