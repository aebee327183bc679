// Package engine implements the conditions scoring engine: the deterministic
// pipeline that turns a weather snapshot plus temporal and spatial signals
// into a bounded success-probability estimate, a confidence label, and a set
// of recommendation, risk, and opportunity statements.
//
// The engine is a pure, stateless computation. It performs no I/O, holds no
// mutable state between calls, and may be shared by unlimited concurrent
// callers. Identical inputs always produce identical reports.
package engine

import (
	"fmt"

	"huntcast/internal/config"
	"huntcast/internal/profile"
	"huntcast/internal/types"
)

// Engine evaluates hunting conditions for a scoring context. Construct once
// at startup with a validated parameter set and catalog.
type Engine struct {
	params  *config.ScoringParams
	catalog *profile.Catalog
}

// New creates an Engine. Both arguments are required and assumed to be
// validated by their loaders.
func New(params *config.ScoringParams, catalog *profile.Catalog) (*Engine, error) {
	if params == nil {
		return nil, fmt.Errorf("scoring params must not be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("profile catalog must not be nil")
	}
	return &Engine{params: params, catalog: catalog}, nil
}

// Catalog returns the engine's species catalog, for reference endpoints.
func (e *Engine) Catalog() *profile.Catalog {
	return e.catalog
}

// Evaluate validates the context, runs the three signal evaluators, and
// combines their sub-scores into a ScoreBreakdown. It fails with a
// not-found error for species outside the catalog and a validation error
// for physically nonsensical input; it never coerces or defaults.
func (e *Engine) Evaluate(sc types.ScoringContext) (types.ScoreBreakdown, error) {
	breakdown, _, _, err := e.evaluate(sc)
	return breakdown, err
}

// Analyze is Evaluate plus the narrative pass: the full report for one call.
func (e *Engine) Analyze(sc types.ScoringContext) (*types.ConditionsReport, error) {
	breakdown, sp, tags, err := e.evaluate(sc)
	if err != nil {
		return nil, err
	}

	report := &types.ConditionsReport{
		Species:     sp.Name,
		Location:    sc.Location,
		GeneratedAt: sc.At,
		Breakdown:   breakdown,
	}
	narrate(e.params, sp, sc, breakdown, tags, report)
	return report, nil
}

// evaluate is the shared core of Evaluate and Analyze.
func (e *Engine) evaluate(sc types.ScoringContext) (types.ScoreBreakdown, types.SpeciesProfile, []WeatherTag, error) {
	if err := types.ValidateContext(sc); err != nil {
		return types.ScoreBreakdown{}, types.SpeciesProfile{}, nil, err
	}

	sp, err := e.catalog.Profile(sc.Species)
	if err != nil {
		return types.ScoreBreakdown{}, types.SpeciesProfile{}, nil, err
	}

	weatherScore, tags := evalWeather(e.params, sp, sc.Weather)
	temporal := evalTemporal(e.params, sp, sc.At)
	spatialScore := evalSpatial(e.params, e.catalog, sp.Name, sc.Location)

	breakdown := types.ScoreBreakdown{
		Weather:   weatherScore,
		Temporal:  temporal.combined(),
		Spatial:   spatialScore,
		TimeOfDay: temporal.timeOfDay,
		Seasonal:  temporal.seasonal,
		Lunar:     temporal.lunar,
		Phase:     temporal.phase,
	}

	breakdown.SuccessProbability = e.successProbability(sp, breakdown)
	breakdown.Confidence = e.confidence(breakdown.SuccessProbability)

	return breakdown, sp, tags, nil
}

// successProbability blends the weighted conditions score with the species'
// historical harvest rate. The harvest rate is the prior; the conditions
// score, centered on the configured midpoint and scaled by the gain, shifts
// it up or down. The result is clamped to [floor, ceiling] so the engine
// never reports certainty in either direction.
func (e *Engine) successProbability(sp types.SpeciesProfile, b types.ScoreBreakdown) float64 {
	a := e.params.Aggregation

	weighted := a.WeatherWeight*b.Weather +
		a.TemporalWeight*b.Temporal +
		a.SpatialWeight*b.Spatial

	p := sp.HarvestRate + a.Gain*(weighted-a.Midpoint)

	if p < a.Floor {
		return a.Floor
	}
	if p > a.Ceiling {
		return a.Ceiling
	}
	return p
}

// confidence maps a probability to its label. Cut points are inclusive at
// the lower bound, so the labels partition [floor, ceiling] without gaps.
func (e *Engine) confidence(p float64) types.ConfidenceLabel {
	c := e.params.Confidence
	switch {
	case p >= c.High:
		return types.ConfidenceHigh
	case p >= c.Medium:
		return types.ConfidenceMedium
	case p >= c.Low:
		return types.ConfidenceLow
	default:
		return types.ConfidenceVeryLow
	}
}
