package engine

import (
	"fmt"
	"strings"

	"huntcast/internal/config"
	"huntcast/internal/types"
)

// narrate derives the recommendation, risk, and opportunity lists from the
// context and intermediate scores. Rules are evaluated in a fixed order and
// are independent of one another: each contributes zero or one line, and no
// rule inspects whether another fired. Output order is rule order. Empty
// categories stay as empty (non-nil) lists so they serialize as [].
func narrate(p *config.ScoringParams, sp types.SpeciesProfile, sc types.ScoringContext, b types.ScoreBreakdown, tags []WeatherTag, report *types.ConditionsReport) {
	tagSet := make(map[WeatherTag]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}

	report.Recommendations = recommendations(p, sp, b, tagSet)
	report.Risks = risks(sp, sc, b, tagSet)
	report.Opportunities = opportunities(sp, sc, b, tagSet)
}

func recommendations(p *config.ScoringParams, sp types.SpeciesProfile, b types.ScoreBreakdown, tags map[WeatherTag]bool) []string {
	out := []string{}

	// Overall outlook, phrased off the same cut points as the confidence
	// label so the headline never contradicts it.
	switch {
	case b.SuccessProbability >= p.Confidence.High:
		out = append(out, "Excellent conditions overall - high success probability.")
	case b.SuccessProbability >= p.Confidence.Medium:
		out = append(out, "Good conditions overall - moderate success probability.")
	case b.SuccessProbability >= p.Confidence.Low:
		out = append(out, "Fair conditions - workable, but pick your spots carefully.")
	default:
		out = append(out, "Challenging conditions - consider waiting for a better window.")
	}

	if tags[TagTempExtremeCold] {
		out = append(out, "Dress in insulated layers; deep cold pushes animals into shelter.")
	}
	if tags[TagTempExtremeHeat] {
		out = append(out, "Hunt the first and last hours of light; heat suppresses daytime movement.")
	}
	if tags[TagWindStrong] || tags[TagWindSevere] {
		out = append(out, "Set up near sheltered cover; animals avoid open ground in this wind.")
	}
	if tags[TagWindLight] {
		out = append(out, "Calm air carries scent a long way - stay rigorous with scent control.")
	}

	if b.Seasonal >= p.Temporal.Seasonal.Peak {
		out = append(out, "Rut window is open - calling is at its most effective.")
	} else if b.Seasonal >= p.Temporal.Seasonal.Near {
		out = append(out, "Rut is close - scout travel corridors and sign now.")
	}

	if len(sp.PeakWindows) > 0 && b.TimeOfDay <= p.Temporal.TimeOfDay.OffPeak {
		out = append(out, fmt.Sprintf("Outside peak activity hours - plan around %s.", describeWindows(sp.PeakWindows)))
	}

	switch sp.Feeding {
	case types.FeedingCrepuscular:
		out = append(out, "Crepuscular species - concentrate effort at first and last light.")
	case types.FeedingDiurnal:
		out = append(out, "Active through daylight - patient midday sits can pay off.")
	case types.FeedingNocturnal:
		out = append(out, "Largely nocturnal - the edges of legal light are your best odds.")
	}

	return out
}

func risks(sp types.SpeciesProfile, sc types.ScoringContext, b types.ScoreBreakdown, tags map[WeatherTag]bool) []string {
	out := []string{}

	if tags[TagTempExtremeCold] {
		out = append(out, "Extreme cold - hypothermia risk on long sits.")
	}
	if tags[TagTempExtremeHeat] {
		out = append(out, "High heat - heat exhaustion risk and sharply reduced animal movement.")
	}
	if tags[TagWindSevere] {
		out = append(out, fmt.Sprintf("Wind well past %s tolerance - expect minimal movement and difficult shooting.", sp.Name))
	}
	switch sc.Weather.Sky {
	case types.SkyHeavyRain:
		out = append(out, "Heavy rain - poor visibility and soaked gear.")
	case types.SkySnow:
		out = append(out, "Snow - slick terrain; verify access roads before committing.")
	case types.SkyFog:
		out = append(out, "Fog - limited visibility; positively identify your target and beyond.")
	}
	if tags[TagPressureFalling] {
		out = append(out, "Falling barometer - activity often tapers ahead of the front.")
	}
	if b.Phase == types.MoonFull {
		out = append(out, "Full moon - feeding shifts into the night hours.")
	}

	return out
}

func opportunities(sp types.SpeciesProfile, sc types.ScoringContext, b types.ScoreBreakdown, tags map[WeatherTag]bool) []string {
	out := []string{}

	if tags[TagTempOptimal] {
		out = append(out, fmt.Sprintf("Temperature in the optimal band for %s activity.", sp.Name))
	}
	if tags[TagWindLight] {
		out = append(out, "Light wind - excellent scent control and stalking conditions.")
	}
	switch sc.Weather.Sky {
	case types.SkyOvercast, types.SkyPartlyCloudy:
		out = append(out, "Cloud cover cuts glare and keeps animals moving through the day.")
	case types.SkySnow:
		out = append(out, "Fresh snow - excellent tracking conditions.")
	case types.SkyLightRain:
		out = append(out, "Light rain masks sound and scent.")
	}
	if tags[TagPressureRising] {
		out = append(out, "Rising barometer - feeding activity often picks up.")
	}
	if hourInAnyWindow(sp.PeakWindows, sc.At.Hour()) {
		out = append(out, "Inside a peak activity window right now.")
	}
	switch b.Phase {
	case types.MoonNew, types.MoonWaxingCrescent, types.MoonWaningCrescent:
		out = append(out, "Dark moon - dawn and dusk movement is concentrated.")
	}

	return out
}

// hourInAnyWindow reports whether the hour falls inside any peak window.
func hourInAnyWindow(windows []types.HourWindow, hour int) bool {
	for _, w := range windows {
		if w.Contains(hour) {
			return true
		}
	}
	return false
}

// describeWindows renders peak windows as a compact human-readable list,
// e.g. "06:00-08:00 and 17:00-19:00".
func describeWindows(windows []types.HourWindow) string {
	parts := make([]string, 0, len(windows))
	for _, w := range windows {
		parts = append(parts, fmt.Sprintf("%02d:00-%02d:00", w.Start, w.End))
	}
	return strings.Join(parts, " and ")
}
