// Package config defines the global configuration for the HuntCast service.
// Configuration is loaded once at process initialization and is immutable
// thereafter. It follows 12-Factor principles by strictly separating code
// from configuration.
//
// Process-level settings (ports, URLs, credentials) come from the
// environment, with an optional .env file for local development. The scoring
// parameter set -- numeric bands, point tables, weights, and thresholds the
// engine tunes against -- lives in scoring.go and may be overridden by a
// YAML file named via SCORING_CONFIG_PATH.
//
// Any missing required value or invalid format causes the application to
// fail immediately on startup.
package config

import (
	"time"

	"huntcast/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used to prevent accidental logging of sensitive values.
type SecretString = types.SecretString

// Config is the top-level configuration struct for the HuntCast service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"huntcast"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain Configurations
	Server        ServerConfig
	Database      DatabaseConfig
	Weather       WeatherConfig
	Scoring       ScoringFileConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

// DatabaseConfig holds the optional Postgres reference-data connection.
// When URL is empty, the embedded species catalog is used instead.
type DatabaseConfig struct {
	URL SecretString `envconfig:"DATABASE_URL"`

	MaxConns        int           `envconfig:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `envconfig:"DB_MIN_CONNS" default:"1"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	AcquireTimeout  time.Duration `envconfig:"DB_ACQUIRE_TIMEOUT" default:"2s"`
}

// WeatherConfig holds the upstream weather provider settings. The default
// coordinates point at Colebrook, NH, the region the embedded catalog covers.
type WeatherConfig struct {
	BaseURL   string        `envconfig:"WEATHER_BASE_URL" default:"https://api.open-meteo.com" validate:"required,url"`
	Latitude  float64       `envconfig:"WEATHER_LATITUDE" default:"44.894" validate:"gte=-90,lte=90"`
	Longitude float64       `envconfig:"WEATHER_LONGITUDE" default:"-71.496" validate:"gte=-180,lte=180"`
	Timeout   time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s"`
	CacheTTL  time.Duration `envconfig:"WEATHER_CACHE_TTL" default:"15m"`
	UserAgent string        `envconfig:"WEATHER_USER_AGENT" default:"HuntCast/1.0"`

	MaxRetries int `envconfig:"WEATHER_MAX_RETRIES" default:"3"`
}

// ScoringFileConfig names the optional YAML override for the scoring
// parameter set. An empty path means the built-in defaults are used.
type ScoringFileConfig struct {
	Path string `envconfig:"SCORING_CONFIG_PATH"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	MetricNamespace string `envconfig:"METRIC_NAMESPACE" default:"huntcast"`
}
