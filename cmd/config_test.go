package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dispatch/internal/adapters/out/nominatim"
	"dispatch/internal/core/application/geocoding"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(mapEnv(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, nominatim.DefaultBaseURL, cfg.GeocoderBaseURL)
	assert.Equal(t, nominatim.DefaultTimeout, cfg.GeocoderTimeout)
	assert.Equal(t, geocoding.DefaultConcurrency, cfg.GeocodeConcurrency)
	assert.Equal(t, geocoding.DefaultPause, cfg.GeocodePause)
	assert.Equal(t, services.DefaultMatchingConfig(), cfg.Matching)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.RefreshSchedule)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(mapEnv(map[string]string{
		"HTTP_PORT":                   "9000",
		"DB_HOST":                     "db",
		"DB_NAME":                     "dispatch",
		"GEOCODER_TIMEOUT":            "3s",
		"GEOCODER_RATE_PER_SEC":       "1",
		"GEOCODE_CONCURRENCY":         "2",
		"GEOCODE_PAUSE":               "250ms",
		"GEOCODE_CACHE_TTL":           "24h",
		"MATCHING_LOAD_PENALTY_KM":    "1.5",
		"ASSIGNMENT_REFRESH_SCHEDULE": "@every 5m",
		"LOG_LEVEL":                   "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 3*time.Second, cfg.GeocoderTimeout)
	assert.InDelta(t, 1.0, cfg.GeocoderRatePerSec, 1e-9)
	assert.Equal(t, 2, cfg.GeocodeConcurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.GeocodePause)
	assert.Equal(t, 24*time.Hour, cfg.GeocodeCacheTTL)
	assert.InDelta(t, 1.5, cfg.Matching.LoadPenaltyKm, 1e-9)
	assert.InDelta(t, services.DefaultCityWeight, cfg.Matching.CityWeight, 1e-9)
	assert.Equal(t, "@every 5m", cfg.RefreshSchedule)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Contains(t, cfg.DSN(), "host=db")
	assert.Contains(t, cfg.DSN(), "dbname=dispatch")
}

func TestLoadConfig_ReportsEveryInvalidValue(t *testing.T) {
	_, err := LoadConfig(mapEnv(map[string]string{
		"GEOCODE_CONCURRENCY":      "many",
		"GEOCODE_PAUSE":            "soon",
		"MATCHING_FUZZY_THRESHOLD": "1.5",
	}))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "GEOCODE_CONCURRENCY")
	assert.Contains(t, err.Error(), "GEOCODE_PAUSE")
	assert.Contains(t, err.Error(), "fuzzy_threshold")
}

func TestLoadConfig_RejectsZeroConcurrency(t *testing.T) {
	_, err := LoadConfig(mapEnv(map[string]string{"GEOCODE_CONCURRENCY": "0"}))
	assert.Error(t, err)
}

func TestLoadConfig_MatchingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matching.yaml")
	require.NoError(t, os.WriteFile(path, []byte("load_penalty_km: 2\nfuzzy_threshold: 0.4\n"), 0o600))

	cfg, err := LoadConfig(mapEnv(map[string]string{
		"MATCHING_CONFIG_PATH":     path,
		"MATCHING_FUZZY_THRESHOLD": "0.3",
	}))
	require.NoError(t, err)

	assert.InDelta(t, 2.0, cfg.Matching.LoadPenaltyKm, 1e-9)
	assert.InDelta(t, 0.3, cfg.Matching.FuzzyThreshold, 1e-9, "env overrides the file")
	assert.InDelta(t, services.DefaultAddressWeight, cfg.Matching.AddressWeight, 1e-9, "missing keys keep defaults")
}

func TestLoadConfig_MissingMatchingFile(t *testing.T) {
	_, err := LoadConfig(mapEnv(map[string]string{
		"MATCHING_CONFIG_PATH": filepath.Join(t.TempDir(), "absent.yaml"),
	}))
	assert.ErrorContains(t, err, "read matching config")
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnv_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DISPATCH_TEST_DOTENV=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("DISPATCH_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("DISPATCH_TEST_DOTENV"))
}
