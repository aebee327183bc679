package types

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Complete error code constants.
// All handlers MUST use these constants instead of hardcoded strings.
const (
	// Validation (400) -- the InvalidContext family. The offending field is
	// always named in the error details.
	ErrCodeValidationTemperature  ErrorCode = "validation_invalid_temperature"
	ErrCodeValidationWindSpeed    ErrorCode = "validation_invalid_wind_speed"
	ErrCodeValidationPressure     ErrorCode = "validation_invalid_pressure"
	ErrCodeValidationHumidity     ErrorCode = "validation_invalid_humidity"
	ErrCodeValidationVisibility   ErrorCode = "validation_invalid_visibility"
	ErrCodeValidationSkyCondition ErrorCode = "validation_invalid_sky_condition"
	ErrCodeValidationLocation     ErrorCode = "validation_invalid_location"
	ErrCodeValidationTimestamp    ErrorCode = "validation_invalid_timestamp"
	ErrCodeValidationMissingField ErrorCode = "validation_missing_required_field"
	ErrCodeValidationOutlookDays  ErrorCode = "validation_invalid_outlook_days"

	// Not Found (404)
	ErrCodeUnknownSpecies ErrorCode = "not_found_species"

	// Configuration (startup-fatal, never served)
	ErrCodeConfigInvalid ErrorCode = "config_invalid"
	ErrCodeConfigLoad    ErrorCode = "config_load_failed"

	// Internal/Upstream (500/502)
	ErrCodeInternalUnexpected  ErrorCode = "internal_unexpected_error"
	ErrCodeInternalDB          ErrorCode = "internal_database_error"
	ErrCodeUpstreamWeather     ErrorCode = "upstream_weather_unavailable"
	ErrCodeUpstreamRateLimited ErrorCode = "upstream_rate_limited"
	ErrCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
)

// HTTPStatus maps an ErrorCode to its corresponding HTTP status code.
// Returns 500 for unrecognized error codes as a safe default.
func (c ErrorCode) HTTPStatus() int {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "validation_"):
		return http.StatusBadRequest // 400
	case strings.HasPrefix(s, "not_found_"):
		return http.StatusNotFound // 404
	case s == string(ErrCodeUpstreamRateLimited):
		return http.StatusTooManyRequests // 429
	case strings.HasPrefix(s, "upstream_"):
		return http.StatusBadGateway // 502
	case strings.HasPrefix(s, "config_"), strings.HasPrefix(s, "internal_"):
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// AppError is the standard application error type. All domain and handler
// errors are expressed as AppError to enable consistent error formatting,
// HTTP status mapping, and error chain support.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code corresponding to this error's code.
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error with the provided details merged in.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: merged,
	}
}

// NewAppError creates a new AppError with the given code, message, and
// optional underlying error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewAppErrorWithDetails creates a new AppError with structured details.
func NewAppErrorWithDetails(code ErrorCode, message string, err error, details map[string]any) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}

// UnknownSpeciesError builds the typed failure for a species that is not in
// the profile catalog. The engine never substitutes a default profile.
func UnknownSpeciesError(species string) *AppError {
	return NewAppErrorWithDetails(
		ErrCodeUnknownSpecies,
		fmt.Sprintf("species %q is not in the profile catalog", species),
		nil,
		map[string]any{"species": species},
	)
}

// InvalidContextError builds the typed failure for a physically nonsensical
// input field, naming the field and the offending value.
func InvalidContextError(code ErrorCode, field string, value any, reason string) *AppError {
	return NewAppErrorWithDetails(
		code,
		fmt.Sprintf("invalid %s: %s", field, reason),
		nil,
		map[string]any{"field": field, "value": value},
	)
}
