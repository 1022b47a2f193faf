package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_NAME", "flights")
	t.Setenv("DB_USER", "flights")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("AMADEUS_API_KEY", "key")
	t.Setenv("AMADEUS_API_SECRET", "secret")
}

func TestLoadConfig_AllRequiredPresent(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PORT", "5433")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.DBHost)
	assert.Equal(t, 5433, cfg.DBPort)
	assert.Equal(t, "https://test.api.amadeus.com", cfg.AmadeusBaseURL)
	assert.Contains(t, cfg.PostgresDSN(), "host=db.example.com port=5433 dbname=flights")
	assert.False(t, cfg.AuditEnabled())
}

func TestLoadConfig_MissingRequiredValueFails(t *testing.T) {
	for _, missing := range []string{"DB_HOST", "DB_NAME", "DB_USER", "DB_PASSWORD", "AMADEUS_API_KEY", "AMADEUS_API_SECRET"} {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoadConfig_AuditEnabledWhenMongoConfigured(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGODB_DSN", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.AuditEnabled())
	assert.Equal(t, "flightscan", cfg.MongoDB)
}
