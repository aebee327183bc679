// Package types defines the shared domain model for the HuntCast platform:
// species behavior profiles, weather snapshots, scoring contexts, and the
// structured reports produced by the conditions engine. It also provides the
// application-wide error taxonomy and request-scoped context helpers.
//
// This package has no dependencies on other internal packages so that every
// layer (engine, API, storage, CLI) can share these definitions without
// import cycles.
package types

import (
	"time"
)

// FeedingPattern describes when a species is primarily active.
type FeedingPattern string

const (
	FeedingCrepuscular FeedingPattern = "crepuscular"
	FeedingDiurnal     FeedingPattern = "diurnal"
	FeedingNocturnal   FeedingPattern = "nocturnal"
)

// SkyCondition is the fixed vocabulary of sky states the engine understands.
// Provider adapters are responsible for mapping upstream condition codes into
// this vocabulary before a snapshot reaches the engine.
type SkyCondition string

const (
	SkyClear        SkyCondition = "clear"
	SkyPartlyCloudy SkyCondition = "partly-cloudy"
	SkyOvercast     SkyCondition = "overcast"
	SkyLightRain    SkyCondition = "light-rain"
	SkyHeavyRain    SkyCondition = "heavy-rain"
	SkySnow         SkyCondition = "snow"
	SkyFog          SkyCondition = "fog"
)

// SkyConditions lists every valid SkyCondition value, in display order.
var SkyConditions = []SkyCondition{
	SkyClear, SkyPartlyCloudy, SkyOvercast,
	SkyLightRain, SkyHeavyRain, SkySnow, SkyFog,
}

// Valid reports whether s is a member of the fixed sky vocabulary.
func (s SkyCondition) Valid() bool {
	for _, v := range SkyConditions {
		if s == v {
			return true
		}
	}
	return false
}

// MoonPhase is one of the eight phases of the synodic lunar cycle.
type MoonPhase string

const (
	MoonNew            MoonPhase = "new"
	MoonWaxingCrescent MoonPhase = "waxing-crescent"
	MoonFirstQuarter   MoonPhase = "first-quarter"
	MoonWaxingGibbous  MoonPhase = "waxing-gibbous"
	MoonFull           MoonPhase = "full"
	MoonWaningGibbous  MoonPhase = "waning-gibbous"
	MoonLastQuarter    MoonPhase = "last-quarter"
	MoonWaningCrescent MoonPhase = "waning-crescent"
)

// MoonPhases lists the eight phases in cycle order, starting at the new moon.
var MoonPhases = []MoonPhase{
	MoonNew, MoonWaxingCrescent, MoonFirstQuarter, MoonWaxingGibbous,
	MoonFull, MoonWaningGibbous, MoonLastQuarter, MoonWaningCrescent,
}

// ConfidenceLabel is the coarse categorical summary of a success probability.
type ConfidenceLabel string

const (
	ConfidenceVeryLow ConfidenceLabel = "Very Low"
	ConfidenceLow     ConfidenceLabel = "Low"
	ConfidenceMedium  ConfidenceLabel = "Medium"
	ConfidenceHigh    ConfidenceLabel = "High"
)

// HourWindow is an inclusive hour-of-day interval [Start, End] in local time.
type HourWindow struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether hour falls inside the window (inclusive bounds).
func (w HourWindow) Contains(hour int) bool {
	return hour >= w.Start && hour <= w.End
}

// MonthRange is an inclusive month-of-year interval that may wrap the year
// boundary (e.g., Start=December, End=January).
type MonthRange struct {
	Start time.Month `json:"start" yaml:"start"`
	End   time.Month `json:"end" yaml:"end"`
}

// Contains reports whether m falls inside the range, handling year wrap.
func (r MonthRange) Contains(m time.Month) bool {
	if r.Start <= r.End {
		return m >= r.Start && m <= r.End
	}
	return m >= r.Start || m <= r.End
}

// SpeciesProfile is the immutable behavioral reference record for one
// species. Profiles are loaded once at startup and shared read-only by all
// evaluations.
type SpeciesProfile struct {
	Name string `json:"name"`

	// Optimal ambient temperature band, degrees Fahrenheit.
	TempOptimalMinF float64 `json:"temp_optimal_min_f"`
	TempOptimalMaxF float64 `json:"temp_optimal_max_f"`

	// Wind speed ceiling (mph) above which the species visibly alters
	// behavior. Sub-score banding is derived from fractions of this value.
	WindToleranceMPH float64 `json:"wind_tolerance_mph"`

	// Peak activity windows, hour-of-day. May be empty for species with no
	// documented peaks; the temporal evaluator then uses the off-peak
	// baseline for all hours.
	PeakWindows []HourWindow `json:"peak_windows"`

	// Rut or breeding window.
	Rut MonthRange `json:"rut"`

	Feeding FeedingPattern `json:"feeding_pattern"`

	// Barometric pressure sensitivity coefficient in [0,1].
	PressureSensitivity float64 `json:"pressure_sensitivity"`

	// Animals per square mile in the region the catalog covers.
	PopulationDensity float64 `json:"population_density"`

	// Historical fraction of hunters that harvest this species per season.
	// Acts as the prior for the success probability blend.
	HarvestRate float64 `json:"harvest_rate"`
}

// WeatherSnapshot is a point-in-time weather observation. The engine assumes
// every field was explicitly supplied by the caller; no defaults are filled
// in here.
type WeatherSnapshot struct {
	TemperatureF float64      `json:"temperature_f"`
	WindSpeedMPH float64      `json:"wind_speed_mph"`
	Sky          SkyCondition `json:"sky"`
	PressureInHg float64      `json:"pressure_inhg"`

	// Optional observations. Nil means not reported, which is valid.
	HumidityPct  *float64 `json:"humidity_pct,omitempty"`
	VisibilityMi *float64 `json:"visibility_mi,omitempty"`
}

// ScoringContext bundles everything a single evaluation needs. It is built
// per call, never mutated, and never persisted.
type ScoringContext struct {
	Species  string          `json:"species"`
	Location string          `json:"location"`
	Weather  WeatherSnapshot `json:"weather"`
	At       time.Time       `json:"at"`
}

// ScoreBreakdown carries the engine's intermediate and combined scores.
// All sub-scores are normalized to [0,1]; the success probability is clamped
// to [0.05, 0.95].
type ScoreBreakdown struct {
	Weather  float64 `json:"weather"`
	Temporal float64 `json:"temporal"`
	Spatial  float64 `json:"spatial"`

	// Components of the temporal sub-score.
	TimeOfDay float64   `json:"time_of_day"`
	Seasonal  float64   `json:"seasonal"`
	Lunar     float64   `json:"lunar"`
	Phase     MoonPhase `json:"moon_phase"`

	SuccessProbability float64         `json:"success_probability"`
	Confidence         ConfidenceLabel `json:"confidence"`
}

// ConditionsReport is the final output of one evaluation. The three string
// lists preserve rule-evaluation order; empty categories are encoded as
// empty lists, never omitted.
type ConditionsReport struct {
	Species     string    `json:"species"`
	Location    string    `json:"location"`
	GeneratedAt time.Time `json:"generated_at"`

	Breakdown ScoreBreakdown `json:"breakdown"`

	Recommendations []string `json:"recommendations"`
	Risks           []string `json:"risks"`
	Opportunities   []string `json:"opportunities"`
}
