package engine

import (
	"huntcast/internal/config"
	"huntcast/internal/types"
)

// WeatherTag is a qualitative label emitted by the weather evaluator and
// consumed by the narrative generator. Tags describe which band a raw signal
// landed in, so narrative rules never re-derive banding math.
type WeatherTag string

const (
	TagTempOptimal     WeatherTag = "temp_optimal"
	TagTempCool        WeatherTag = "temp_cool"     // below optimal, within shoulder
	TagTempWarm        WeatherTag = "temp_warm"     // above optimal, within shoulder
	TagTempExtremeCold WeatherTag = "temp_extreme_cold"
	TagTempExtremeHeat WeatherTag = "temp_extreme_heat"

	TagWindLight    WeatherTag = "wind_light"    // <= half tolerance
	TagWindModerate WeatherTag = "wind_moderate" // <= tolerance
	TagWindStrong   WeatherTag = "wind_strong"   // <= 1.5x tolerance
	TagWindSevere   WeatherTag = "wind_severe"   // beyond

	TagPressureRising  WeatherTag = "pressure_rising"
	TagPressureFalling WeatherTag = "pressure_falling"
	TagPressureSteady  WeatherTag = "pressure_steady"
)

// evalWeather scores a snapshot against a species profile using the additive
// point system: start at the configured base, apply one delta per signal,
// clamp to [0,1]. Boundary values resolve toward the more favorable band
// (inclusive comparisons on the favorable side).
func evalWeather(p *config.ScoringParams, sp types.SpeciesProfile, w types.WeatherSnapshot) (float64, []WeatherTag) {
	wp := p.Weather
	score := wp.Base
	tags := make([]WeatherTag, 0, 4)

	// Temperature relative to the species' optimal band.
	t := w.TemperatureF
	shoulder := wp.Temperature.ShoulderWidthF
	switch {
	case t >= sp.TempOptimalMinF && t <= sp.TempOptimalMaxF:
		score += wp.Temperature.OptimalBonus
		tags = append(tags, TagTempOptimal)
	case t >= sp.TempOptimalMinF-shoulder && t < sp.TempOptimalMinF:
		score += wp.Temperature.ShoulderBonus
		tags = append(tags, TagTempCool)
	case t > sp.TempOptimalMaxF && t <= sp.TempOptimalMaxF+shoulder:
		score += wp.Temperature.ShoulderBonus
		tags = append(tags, TagTempWarm)
	case t < sp.TempOptimalMinF:
		score += wp.Temperature.Penalty
		tags = append(tags, TagTempExtremeCold)
	default:
		score += wp.Temperature.Penalty
		tags = append(tags, TagTempExtremeHeat)
	}

	// Wind relative to the species' tolerance ceiling.
	v := w.WindSpeedMPH
	tol := sp.WindToleranceMPH
	switch {
	case v <= tol/2:
		score += wp.Wind.LightBonus
		tags = append(tags, TagWindLight)
	case v <= tol:
		score += wp.Wind.ModerateBonus
		tags = append(tags, TagWindModerate)
	case v <= tol*1.5:
		score += wp.Wind.StrongPenalty
		tags = append(tags, TagWindStrong)
	default:
		score += wp.Wind.SeverePenalty
		tags = append(tags, TagWindSevere)
	}

	// Sky condition is species-independent. The vocabulary was validated
	// upstream, and config validation guarantees full table coverage.
	score += wp.Sky[w.Sky]

	// Barometric pressure, scaled by the species' sensitivity coefficient.
	switch {
	case w.PressureInHg >= wp.Pressure.RisingInHg:
		score += sp.PressureSensitivity * wp.Pressure.Delta
		tags = append(tags, TagPressureRising)
	case w.PressureInHg <= wp.Pressure.FallingInHg:
		score -= sp.PressureSensitivity * wp.Pressure.Delta
		tags = append(tags, TagPressureFalling)
	default:
		tags = append(tags, TagPressureSteady)
	}

	return clamp01(score), tags
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
