// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Settings backends.
const (
	SettingsBackendMemory   = "memory"
	SettingsBackendRedis    = "redis"
	SettingsBackendPostgres = "postgres"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"75s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// GitHub profile API
	GitHubAPIURL  string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	GitHubTimeout time.Duration `env:"GITHUB_TIMEOUT" envDefault:"60s"`

	// Settings storage: memory, redis or postgres
	SettingsBackend string `env:"SETTINGS_BACKEND" envDefault:"memory"`
	RedisURL        string `env:"REDIS_URL"`
	DatabaseURL     string `env:"DATABASE_URL"`

	// Places search (Elasticsearch). Empty URL disables the places API.
	ElasticsearchURL string  `env:"ELASTICSEARCH_URL"`
	PlacesIndex      string  `env:"PLACES_INDEX" envDefault:"places"`
	MapCenterLat     float64 `env:"MAP_CENTER_LAT" envDefault:"48.137154"`
	MapCenterLon     float64 `env:"MAP_CENTER_LON" envDefault:"11.576124"`
	MapSearchRadius  float64 `env:"MAP_SEARCH_RADIUS" envDefault:"0"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PlacesEnabled reports whether a places index is configured.
func (c *Config) PlacesEnabled() bool {
	return c.ElasticsearchURL != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.SettingsBackend {
	case SettingsBackendMemory:
	case SettingsBackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when SETTINGS_BACKEND=redis"))
		}
	case SettingsBackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when SETTINGS_BACKEND=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("SETTINGS_BACKEND must be memory, redis or postgres, got %q", c.SettingsBackend))
	}

	if c.GitHubTimeout <= 0 {
		errs = append(errs, errors.New("GITHUB_TIMEOUT must be positive"))
	}
	if c.MapCenterLat < -90 || c.MapCenterLat > 90 {
		errs = append(errs, fmt.Errorf("MAP_CENTER_LAT out of range: %v", c.MapCenterLat))
	}
	if c.MapCenterLon < -180 || c.MapCenterLon > 180 {
		errs = append(errs, fmt.Errorf("MAP_CENTER_LON out of range: %v", c.MapCenterLon))
	}
	if c.MapSearchRadius < 0 {
		errs = append(errs, errors.New("MAP_SEARCH_RADIUS must not be negative"))
	}

	return errors.Join(errs...)
}

// Load reads an optional .env file, parses environment variables and
// validates the result. Variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
