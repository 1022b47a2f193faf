// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// Amadeus
	AmadeusAPIKey    string
	AmadeusAPISecret string
	AmadeusBaseURL   string
	RequestTimeout   time.Duration

	// Ingestion
	QueryDelay time.Duration

	// MongoDB audit sink (optional)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnvAsInt("DB_PORT", 5432),
		DBName:     getEnv("DB_NAME", ""),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBSSLMode:  getEnv("DB_SSLMODE", "require"),

		AmadeusAPIKey:    getEnv("AMADEUS_API_KEY", ""),
		AmadeusAPISecret: getEnv("AMADEUS_API_SECRET", ""),
		AmadeusBaseURL:   getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		RequestTimeout:   time.Duration(getEnvAsInt("REQUEST_TIMEOUT", 15)) * time.Second,

		QueryDelay: time.Duration(getEnvAsInt("QUERY_DELAY_SECONDS", 5)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "flightscan"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that every required value is present. A missing value
// is a startup failure, not something to limp along without.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"DB_HOST", c.DBHost},
		{"DB_NAME", c.DBName},
		{"DB_USER", c.DBUser},
		{"DB_PASSWORD", c.DBPassword},
		{"AMADEUS_API_KEY", c.AmadeusAPIKey},
		{"AMADEUS_API_SECRET", c.AmadeusAPISecret},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required configuration: %s", r.key)
		}
	}

	return nil
}

// PostgresDSN builds the connection string for gorm's postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode)
}

// AuditEnabled reports whether the optional Mongo audit sink is configured
func (c *Config) AuditEnabled() bool {
	return c.MongoURI != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
