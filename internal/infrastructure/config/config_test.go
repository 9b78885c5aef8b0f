package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AEROAPI_KEY", "key")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("EXTERNAL_TIMEOUT", "")
	t.Setenv("PHOTO_CACHE_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, 10*time.Second, cfg.ExternalTimeout)
	assert.Equal(t, 24*time.Hour, cfg.PhotoCacheTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.PhotoRefreshInterval)
	assert.Equal(t, time.Hour, cfg.PhotoRetryInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AEROAPI_KEY", "key")
	t.Setenv("CACHE_BACKEND", "Badger")
	t.Setenv("BADGER_DIR", "/var/lib/hangar/cache")
	t.Setenv("EXTERNAL_TIMEOUT", "5s")
	t.Setenv("PHOTO_RETRY_INTERVAL", "120")
	t.Setenv("READ_TIMEOUT", "7")
	t.Setenv("GOOGLE_API_KEY", "g")
	t.Setenv("GOOGLE_SEARCH_ENGINE_ID", "cx")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CacheBackendBadger, cfg.CacheBackend)
	assert.Equal(t, "/var/lib/hangar/cache", cfg.BadgerDir)
	assert.Equal(t, 5*time.Second, cfg.ExternalTimeout)
	assert.Equal(t, 2*time.Minute, cfg.PhotoRetryInterval)
	assert.Equal(t, 7*time.Second, cfg.ReadTimeout)
	assert.True(t, cfg.PhotoSearchEnabled())
}

func TestLoadConfigRejectsUnknownCacheBackend(t *testing.T) {
	t.Setenv("AEROAPI_KEY", "key")
	t.Setenv("CACHE_BACKEND", "redis")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRequiresAeroAPIKey(t *testing.T) {
	t.Setenv("AEROAPI_KEY", "")
	t.Setenv("CACHE_BACKEND", "memory")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetEnvAsDurationFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
