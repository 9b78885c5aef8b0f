// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendBadger = "badger"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion       string
	LogLevel         string
	MetricsNamespace string

	// Server
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Postgres reference tables (m_timezone_list, m_airlines). Optional.
	PostgresDSN string

	// AeroAPI
	AeroAPIKey     string
	AeroAPIBaseURL string

	// Google Custom Search
	GoogleAPIKey         string
	GoogleSearchEngineID string

	// External calls
	ExternalTimeout time.Duration

	// Photo enrichment
	PhotoCacheTTL        time.Duration
	PhotoRefreshInterval time.Duration
	PhotoRetryInterval   time.Duration

	// Cache
	CacheBackend string
	BadgerDir    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		AppVersion:       getEnv("APP_VERSION", "1.0.0"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "hangar"),

		Port:            getEnv("PORT", "8080"),
		ReadTimeout:     time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:    time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "hangar"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		AeroAPIKey:     getEnv("AEROAPI_KEY", ""),
		AeroAPIBaseURL: getEnv("AEROAPI_BASE_URL", ""),

		GoogleAPIKey:         getEnv("GOOGLE_API_KEY", ""),
		GoogleSearchEngineID: getEnv("GOOGLE_SEARCH_ENGINE_ID", ""),

		ExternalTimeout: getEnvAsDuration("EXTERNAL_TIMEOUT", 10*time.Second),

		PhotoCacheTTL:        getEnvAsDuration("PHOTO_CACHE_TTL", 24*time.Hour),
		PhotoRefreshInterval: getEnvAsDuration("PHOTO_REFRESH_INTERVAL", 7*24*time.Hour),
		PhotoRetryInterval:   getEnvAsDuration("PHOTO_RETRY_INTERVAL", time.Hour),

		CacheBackend: strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
		BadgerDir:    getEnv("BADGER_DIR", ""),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendBadger:
	default:
		return fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheBackendMemory, CacheBackendBadger, c.CacheBackend)
	}
	if c.AeroAPIKey == "" {
		return fmt.Errorf("AEROAPI_KEY is required")
	}
	return nil
}

// PhotoSearchEnabled reports whether Google Custom Search credentials are configured.
func (c *Config) PhotoSearchEnabled() bool {
	return c.GoogleAPIKey != "" && c.GoogleSearchEngineID != ""
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

// getEnvAsDuration accepts Go durations ("90s", "24h") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
