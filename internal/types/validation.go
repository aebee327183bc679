package types

import (
	"strings"
	"time"
)

// Validation constraint constants. These are physical plausibility bounds,
// not tuning parameters: a snapshot outside them is rejected as
// InvalidContext rather than scored.
const (
	MinTemperatureF = -60.0
	MaxTemperatureF = 130.0
	MinWindMPH      = 0.0
	MaxWindMPH      = 200.0
	MinPressureInHg = 25.0
	MaxPressureInHg = 32.5
	MinHumidityPct  = 0.0
	MaxHumidityPct  = 100.0
	MaxLocationLen  = 200
)

// FieldBounds defines the canonical plausibility range for a snapshot field.
type FieldBounds struct {
	Field string     `json:"field"`
	Unit  string     `json:"unit"`
	Range [2]float64 `json:"valid_range"`
}

// SnapshotBounds defines the authoritative input constraints for the engine.
// All entry points MUST validate against these ranges before scoring.
var SnapshotBounds = map[string]FieldBounds{
	"temperature_f":  {Field: "temperature_f", Unit: "fahrenheit", Range: [2]float64{MinTemperatureF, MaxTemperatureF}},
	"wind_speed_mph": {Field: "wind_speed_mph", Unit: "mph", Range: [2]float64{MinWindMPH, MaxWindMPH}},
	"pressure_inhg":  {Field: "pressure_inhg", Unit: "inHg", Range: [2]float64{MinPressureInHg, MaxPressureInHg}},
	"humidity_pct":   {Field: "humidity_pct", Unit: "percent", Range: [2]float64{MinHumidityPct, MaxHumidityPct}},
}

// ValidateSnapshot checks a WeatherSnapshot against the physical bounds and
// the fixed sky vocabulary. It returns the first violation as an AppError
// naming the offending field, or nil if the snapshot is plausible.
func ValidateSnapshot(w WeatherSnapshot) *AppError {
	if w.TemperatureF < MinTemperatureF || w.TemperatureF > MaxTemperatureF {
		return InvalidContextError(ErrCodeValidationTemperature, "temperature_f", w.TemperatureF, "outside physically plausible range")
	}
	if w.WindSpeedMPH < MinWindMPH || w.WindSpeedMPH > MaxWindMPH {
		return InvalidContextError(ErrCodeValidationWindSpeed, "wind_speed_mph", w.WindSpeedMPH, "must be non-negative and plausible")
	}
	if w.PressureInHg < MinPressureInHg || w.PressureInHg > MaxPressureInHg {
		return InvalidContextError(ErrCodeValidationPressure, "pressure_inhg", w.PressureInHg, "outside physically plausible range")
	}
	if !w.Sky.Valid() {
		return InvalidContextError(ErrCodeValidationSkyCondition, "sky", string(w.Sky), "not in the fixed sky-condition vocabulary")
	}
	if w.HumidityPct != nil && (*w.HumidityPct < MinHumidityPct || *w.HumidityPct > MaxHumidityPct) {
		return InvalidContextError(ErrCodeValidationHumidity, "humidity_pct", *w.HumidityPct, "must be within 0-100")
	}
	if w.VisibilityMi != nil && *w.VisibilityMi < 0 {
		return InvalidContextError(ErrCodeValidationVisibility, "visibility_mi", *w.VisibilityMi, "must be non-negative")
	}
	return nil
}

// ValidateContext checks the full scoring context: the weather snapshot, the
// location string, and the timestamp. Species membership is checked by the
// profile catalog, not here.
func ValidateContext(ctx ScoringContext) *AppError {
	if err := ValidateSnapshot(ctx.Weather); err != nil {
		return err
	}
	loc := strings.TrimSpace(ctx.Location)
	if loc == "" {
		return InvalidContextError(ErrCodeValidationLocation, "location", ctx.Location, "must not be empty")
	}
	if len(loc) > MaxLocationLen {
		return InvalidContextError(ErrCodeValidationLocation, "location", ctx.Location, "exceeds maximum length")
	}
	if ctx.At.IsZero() {
		return InvalidContextError(ErrCodeValidationTimestamp, "at", time.Time{}, "must be set")
	}
	return nil
}
