package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"huntcast/internal/types"
)

// ScoringParams is the full tunable parameter set for the conditions engine.
// Nothing in the engine branches on a numeric literal; every band, point
// delta, weight, and threshold comes from this structure. Defaults are
// compiled in; a YAML file may override any subset.
type ScoringParams struct {
	Weather     WeatherParams     `yaml:"weather"`
	Temporal    TemporalParams    `yaml:"temporal"`
	Spatial     SpatialParams     `yaml:"spatial"`
	Aggregation AggregationParams `yaml:"aggregation"`
	Confidence  ConfidenceParams  `yaml:"confidence"`
}

// WeatherParams tunes the additive point system of the weather evaluator.
// The evaluator starts at Base, applies one delta per signal, and clamps the
// sum to [0,1].
type WeatherParams struct {
	Base        float64                        `yaml:"base"`
	Temperature TemperatureBands               `yaml:"temperature"`
	Wind        WindBands                      `yaml:"wind"`
	Sky         map[types.SkyCondition]float64 `yaml:"sky"`
	Pressure    PressureBands                  `yaml:"pressure"`
}

// TemperatureBands defines the deltas for the three temperature bands:
// inside the species' optimal range, within the shoulder around it, and
// beyond. Penalty is expected to be negative.
type TemperatureBands struct {
	OptimalBonus   float64 `yaml:"optimal_bonus"`
	ShoulderBonus  float64 `yaml:"shoulder_bonus"`
	Penalty        float64 `yaml:"penalty"`
	ShoulderWidthF float64 `yaml:"shoulder_width_f"`
}

// WindBands defines the deltas for wind relative to the species' tolerance:
// at or below half tolerance, at or below tolerance, at or below 1.5x
// tolerance, and beyond. Boundaries are inclusive on the favorable side.
type WindBands struct {
	LightBonus    float64 `yaml:"light_bonus"`
	ModerateBonus float64 `yaml:"moderate_bonus"`
	StrongPenalty float64 `yaml:"strong_penalty"`
	SeverePenalty float64 `yaml:"severe_penalty"`
}

// PressureBands defines the rising/falling thresholds (inHg) and the
// magnitude of the pressure delta before scaling by the species' sensitivity
// coefficient.
type PressureBands struct {
	RisingInHg  float64 `yaml:"rising_inhg"`
	FallingInHg float64 `yaml:"falling_inhg"`
	Delta       float64 `yaml:"delta"`
}

// TemporalParams tunes the three temporal components. The temporal sub-score
// is their unweighted average.
type TemporalParams struct {
	TimeOfDay BandScores                  `yaml:"time_of_day"`
	Seasonal  BandScores                  `yaml:"seasonal"`
	Lunar     map[types.MoonPhase]float64 `yaml:"lunar"`
}

// BandScores defines the proximity banding used for both hour-of-day and
// month-of-year: inside the window, within one unit of it, within two units,
// or off-peak.
type BandScores struct {
	Peak     float64 `yaml:"peak"`
	Near     float64 `yaml:"near"`
	Extended float64 `yaml:"extended"`
	OffPeak  float64 `yaml:"off_peak"`
}

// SpatialParams tunes the location evaluator. Keyword scores themselves are
// reference data and live in the catalog; only the unmatched baseline and
// the stronghold affinity bonus are tunables.
type SpatialParams struct {
	Baseline      float64 `yaml:"baseline"`
	AffinityBonus float64 `yaml:"affinity_bonus"`
}

// AggregationParams tunes how sub-scores combine into the final probability.
// The weighted conditions score is centered on Midpoint and scaled by Gain
// before being added to the species' harvest-rate prior; the result is
// clamped to [Floor, Ceiling].
type AggregationParams struct {
	WeatherWeight  float64 `yaml:"weather_weight"`
	TemporalWeight float64 `yaml:"temporal_weight"`
	SpatialWeight  float64 `yaml:"spatial_weight"`

	Midpoint float64 `yaml:"midpoint"`
	Gain     float64 `yaml:"gain"`
	Floor    float64 `yaml:"floor"`
	Ceiling  float64 `yaml:"ceiling"`
}

// ConfidenceParams are the inclusive lower cut points for the confidence
// labels. Probabilities below Low map to Very Low.
type ConfidenceParams struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
	Low    float64 `yaml:"low"`
}

// DefaultScoringParams returns the compiled-in parameter set.
func DefaultScoringParams() *ScoringParams {
	return &ScoringParams{
		Weather: WeatherParams{
			Base: 0.5,
			Temperature: TemperatureBands{
				OptimalBonus:   0.20,
				ShoulderBonus:  0.10,
				Penalty:        -0.20,
				ShoulderWidthF: 10,
			},
			Wind: WindBands{
				LightBonus:    0.15,
				ModerateBonus: 0.05,
				StrongPenalty: -0.10,
				SeverePenalty: -0.25,
			},
			Sky: map[types.SkyCondition]float64{
				types.SkyClear:        0.05,
				types.SkyPartlyCloudy: 0.10,
				types.SkyOvercast:     0.10,
				types.SkyLightRain:    -0.05,
				types.SkyHeavyRain:    -0.15,
				types.SkySnow:         -0.10,
				types.SkyFog:          -0.10,
			},
			Pressure: PressureBands{
				RisingInHg:  30.2,
				FallingInHg: 29.8,
				Delta:       0.20,
			},
		},
		Temporal: TemporalParams{
			TimeOfDay: BandScores{Peak: 0.95, Near: 0.80, Extended: 0.60, OffPeak: 0.30},
			Seasonal:  BandScores{Peak: 0.95, Near: 0.80, Extended: 0.60, OffPeak: 0.40},
			Lunar: map[types.MoonPhase]float64{
				types.MoonNew:            0.90,
				types.MoonWaxingCrescent: 0.80,
				types.MoonFirstQuarter:   0.70,
				types.MoonWaxingGibbous:  0.60,
				types.MoonFull:           0.40,
				types.MoonWaningGibbous:  0.60,
				types.MoonLastQuarter:    0.70,
				types.MoonWaningCrescent: 0.80,
			},
		},
		Spatial: SpatialParams{
			Baseline:      0.60,
			AffinityBonus: 0.10,
		},
		Aggregation: AggregationParams{
			WeatherWeight:  0.30,
			TemporalWeight: 0.45,
			SpatialWeight:  0.25,
			Midpoint:       0.50,
			Gain:           1.50,
			Floor:          0.05,
			Ceiling:        0.95,
		},
		Confidence: ConfidenceParams{
			High:   0.70,
			Medium: 0.50,
			Low:    0.30,
		},
	}
}

// LoadScoringParams returns the default parameter set, overridden by the
// YAML file at path when path is non-empty. The result is validated; any
// violation is a fatal *ConfigError.
func LoadScoringParams(path string) (*ScoringParams, error) {
	params := DefaultScoringParams()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{
				Code:    types.ErrCodeConfigLoad,
				Message: fmt.Sprintf("reading scoring config %q", path),
				Err:     err,
			}
		}
		// Unmarshal on top of the defaults so the file may override any
		// subset of keys.
		if err := yaml.Unmarshal(data, params); err != nil {
			return nil, &ConfigError{
				Code:    types.ErrCodeConfigLoad,
				Message: fmt.Sprintf("parsing scoring config %q", path),
				Err:     err,
			}
		}
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks the parameter set's invariants. It is called at load time;
// the engine assumes a validated set and performs no further range checks.
func (p *ScoringParams) Validate() error {
	fail := func(format string, args ...any) error {
		return &ConfigError{
			Code:    types.ErrCodeConfigInvalid,
			Message: fmt.Sprintf(format, args...),
		}
	}

	w := p.Weather
	if w.Base < 0 || w.Base > 1 {
		return fail("weather.base %.2f must be within [0,1]", w.Base)
	}
	if w.Temperature.ShoulderWidthF < 0 {
		return fail("weather.temperature.shoulder_width_f must be non-negative")
	}
	if w.Temperature.OptimalBonus < w.Temperature.ShoulderBonus {
		return fail("weather.temperature.optimal_bonus must be >= shoulder_bonus")
	}
	if w.Temperature.ShoulderBonus < w.Temperature.Penalty {
		return fail("weather.temperature.shoulder_bonus must be >= penalty")
	}
	if w.Wind.LightBonus < w.Wind.ModerateBonus ||
		w.Wind.ModerateBonus < w.Wind.StrongPenalty ||
		w.Wind.StrongPenalty < w.Wind.SeverePenalty {
		return fail("weather.wind deltas must be non-increasing from light to severe")
	}
	for _, sky := range types.SkyConditions {
		if _, ok := w.Sky[sky]; !ok {
			return fail("weather.sky table missing condition %q", sky)
		}
	}
	if w.Pressure.FallingInHg >= w.Pressure.RisingInHg {
		return fail("weather.pressure.falling_inhg must be below rising_inhg")
	}
	if w.Pressure.Delta < 0 {
		return fail("weather.pressure.delta must be non-negative")
	}

	for name, b := range map[string]BandScores{
		"temporal.time_of_day": p.Temporal.TimeOfDay,
		"temporal.seasonal":    p.Temporal.Seasonal,
	} {
		for label, v := range map[string]float64{
			"peak": b.Peak, "near": b.Near, "extended": b.Extended, "off_peak": b.OffPeak,
		} {
			if v < 0 || v > 1 {
				return fail("%s.%s %.2f must be within [0,1]", name, label, v)
			}
		}
		if b.Peak < b.Near || b.Near < b.Extended || b.Extended < b.OffPeak {
			return fail("%s band scores must be non-increasing from peak to off_peak", name)
		}
	}
	for _, phase := range types.MoonPhases {
		v, ok := p.Temporal.Lunar[phase]
		if !ok {
			return fail("temporal.lunar table missing phase %q", phase)
		}
		if v < 0 || v > 1 {
			return fail("temporal.lunar[%s] %.2f must be within [0,1]", phase, v)
		}
	}

	if p.Spatial.Baseline < 0 || p.Spatial.Baseline > 1 {
		return fail("spatial.baseline %.2f must be within [0,1]", p.Spatial.Baseline)
	}
	if p.Spatial.AffinityBonus < 0 || p.Spatial.AffinityBonus > 1 {
		return fail("spatial.affinity_bonus %.2f must be within [0,1]", p.Spatial.AffinityBonus)
	}

	a := p.Aggregation
	if a.WeatherWeight <= 0 || a.TemporalWeight <= 0 || a.SpatialWeight <= 0 {
		return fail("aggregation weights must all be positive")
	}
	if sum := a.WeatherWeight + a.TemporalWeight + a.SpatialWeight; math.Abs(sum-1.0) > 1e-9 {
		return fail("aggregation weights must sum to 1.0, got %.4f", sum)
	}
	if a.Midpoint < 0 || a.Midpoint > 1 {
		return fail("aggregation.midpoint %.2f must be within [0,1]", a.Midpoint)
	}
	if a.Gain <= 0 {
		return fail("aggregation.gain must be positive")
	}
	if a.Floor < 0 || a.Ceiling > 1 || a.Floor >= a.Ceiling {
		return fail("aggregation floor/ceiling must satisfy 0 <= floor < ceiling <= 1")
	}

	c := p.Confidence
	if !(c.Low < c.Medium && c.Medium < c.High) {
		return fail("confidence cut points must be strictly increasing: low < medium < high")
	}
	if c.Low <= a.Floor || c.High >= a.Ceiling {
		return fail("confidence cut points must fall strictly inside (floor, ceiling)")
	}

	return nil
}
