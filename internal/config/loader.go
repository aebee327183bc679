// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Enforce UTC timezone to prevent drift bugs in temporal scoring.
//  2. Load .env file via godotenv (non-fatal if absent).
//  3. Use envconfig to process struct tags and populate the Config struct.
//  4. Validate the struct using go-playground/validator.
//  5. Load the scoring parameter set (built-in defaults, optionally
//     overridden by the YAML file named in SCORING_CONFIG_PATH) and validate
//     its invariants.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"huntcast/internal/types"
)

// ConfigError is a diagnostic error type returned by LoadConfig to aid
// debugging. Startup treats any ConfigError as fatal: the engine must not
// serve requests with a partial or invalid configuration.
type ConfigError struct {
	Code    types.ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadConfig loads and validates the process configuration plus the scoring
// parameter set. It returns both, or a *ConfigError describing the first
// failure encountered.
func LoadConfig() (*Config, *ScoringParams, error) {
	// Step 1: Enforce UTC timezone. Lunar-phase and banding math assumes a
	// stable reference frame.
	time.Local = time.UTC

	// Step 2: Load .env file (non-fatal if absent). godotenv does NOT
	// override existing environment variables.
	_ = godotenv.Load()

	// Step 3: Process envconfig tags. The empty prefix means tag values are
	// read directly (e.g., envconfig:"APP_ENV" reads APP_ENV).
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, nil, &ConfigError{
			Code:    types.ErrCodeConfigLoad,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	// Step 4: Validate the populated struct.
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, nil, &ConfigError{
			Code:    types.ErrCodeConfigInvalid,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	// Step 5: Load and validate the scoring parameter set.
	params, err := LoadScoringParams(cfg.Scoring.Path)
	if err != nil {
		return nil, nil, err
	}

	return &cfg, params, nil
}
