package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/adapters/out/nominatim"
	"dispatch/internal/core/application/geocoding"
	"dispatch/internal/core/domain/services"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of the service, read from the
// environment and an optional .env file.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisURL enables the shared geocode cache tier when set.
	RedisURL string

	GeocoderBaseURL    string
	GeocoderUserAgent  string
	GeocoderTimeout    time.Duration
	GeocoderRatePerSec float64
	GeocodeConcurrency int
	GeocodePause       time.Duration
	GeocodeCacheTTL    time.Duration

	// ExportPath is the file written by the export command; empty writes to stdout.
	ExportPath string

	RefreshSchedule string
	ExportSchedule  string

	Matching services.MatchingConfig
	LogLevel slog.Level
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadDotEnv loads path into the process environment when the file exists.
// Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// LoadConfig builds a Config from getenv, applying defaults for unset keys.
// The matching constants come from MATCHING_CONFIG_PATH (YAML) when set, then
// individual MATCHING_* variables override single values.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort:           env.str("HTTP_PORT", "8080"),
		DBHost:             env.str("DB_HOST", "localhost"),
		DBPort:             env.str("DB_PORT", "5432"),
		DBUser:             env.str("DB_USER", "postgres"),
		DBPassword:         env.str("DB_PASSWORD", ""),
		DBName:             env.str("DB_NAME", "postgres"),
		DBSslMode:          env.str("DB_SSLMODE", "disable"),
		RedisURL:           env.str("REDIS_URL", ""),
		GeocoderBaseURL:    env.str("GEOCODER_BASE_URL", nominatim.DefaultBaseURL),
		GeocoderUserAgent:  env.str("GEOCODER_USER_AGENT", "dispatch/1.0"),
		GeocoderTimeout:    env.duration("GEOCODER_TIMEOUT", nominatim.DefaultTimeout),
		GeocoderRatePerSec: env.float("GEOCODER_RATE_PER_SEC", 0),
		GeocodeConcurrency: env.int("GEOCODE_CONCURRENCY", geocoding.DefaultConcurrency),
		GeocodePause:       env.duration("GEOCODE_PAUSE", geocoding.DefaultPause),
		GeocodeCacheTTL:    env.duration("GEOCODE_CACHE_TTL", 0),
		ExportPath:         env.str("EXPORT_PATH", ""),
		RefreshSchedule:    env.str("ASSIGNMENT_REFRESH_SCHEDULE", ""),
		ExportSchedule:     env.str("ASSIGNMENT_EXPORT_SCHEDULE", ""),
		LogLevel:           env.level("LOG_LEVEL", slog.LevelInfo),
	}

	matching := services.DefaultMatchingConfig()
	if path := env.str("MATCHING_CONFIG_PATH", ""); path != "" {
		if err := loadMatchingFile(path, &matching); err != nil {
			env.errs = append(env.errs, err)
		}
	}
	matching.LoadPenaltyKm = env.float("MATCHING_LOAD_PENALTY_KM", matching.LoadPenaltyKm)
	matching.CityWeight = env.float("MATCHING_CITY_WEIGHT", matching.CityWeight)
	matching.AddressWeight = env.float("MATCHING_ADDRESS_WEIGHT", matching.AddressWeight)
	matching.FuzzyThreshold = env.float("MATCHING_FUZZY_THRESHOLD", matching.FuzzyThreshold)
	cfg.Matching = matching

	if cfg.GeocodeConcurrency < 1 {
		env.errs = append(env.errs, fmt.Errorf("GEOCODE_CONCURRENCY must be at least 1, got %d", cfg.GeocodeConcurrency))
	}
	if err := cfg.Matching.Validate(); err != nil {
		env.errs = append(env.errs, err)
	}

	if err := errors.Join(env.errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadMatchingFile(path string, into *services.MatchingConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read matching config: %w", err)
	}
	if err := yaml.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("parse matching config %s: %w", path, err)
	}
	return nil
}

// envReader collects parse errors so all bad keys are reported at once.
type envReader struct {
	getenv func(string) string
	errs   []error
}

func (e *envReader) str(key, def string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *envReader) int(key string, def int) int {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (e *envReader) float(key string, def float64) float64 {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (e *envReader) level(key string, def slog.Level) slog.Level {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return l
}
