package engine

import (
	"time"

	"huntcast/internal/config"
	"huntcast/internal/types"
)

// temporalScores holds the three components of the temporal sub-score.
type temporalScores struct {
	timeOfDay float64
	seasonal  float64
	lunar     float64
	phase     types.MoonPhase
}

// evalTemporal computes the temporal components for a species at an instant.
// The combined temporal sub-score is their unweighted average.
func evalTemporal(p *config.ScoringParams, sp types.SpeciesProfile, at time.Time) temporalScores {
	phase := MoonPhaseOn(at)
	return temporalScores{
		timeOfDay: timeOfDayScore(p.Temporal.TimeOfDay, sp.PeakWindows, at.Hour()),
		seasonal:  seasonalScore(p.Temporal.Seasonal, sp.Rut, at.Month()),
		lunar:     p.Temporal.Lunar[phase],
		phase:     phase,
	}
}

// combined returns the averaged temporal sub-score.
func (t temporalScores) combined() float64 {
	return (t.timeOfDay + t.seasonal + t.lunar) / 3
}

// timeOfDayScore applies proximity banding of the current hour against the
// species' peak activity windows: inside any window scores the peak band,
// within one hour of a boundary the near band, within two hours the
// extended band, otherwise the off-peak baseline. A species with no
// documented windows scores the baseline at every hour.
func timeOfDayScore(b config.BandScores, windows []types.HourWindow, hour int) float64 {
	if len(windows) == 0 {
		return b.OffPeak
	}
	best := hourDistance(windows[0], hour)
	for _, w := range windows[1:] {
		if d := hourDistance(w, hour); d < best {
			best = d
		}
	}
	return bandFor(b, best)
}

// hourDistance returns how many whole hours the given hour sits outside the
// window; zero when inside (bounds inclusive).
func hourDistance(w types.HourWindow, hour int) int {
	switch {
	case w.Contains(hour):
		return 0
	case hour < w.Start:
		return w.Start - hour
	default:
		return hour - w.End
	}
}

// seasonalScore applies the same proximity banding to month-of-year against
// the rut window, with year wrap (a December-January range treats November
// and February as one month out).
func seasonalScore(b config.BandScores, rut types.MonthRange, m time.Month) float64 {
	return bandFor(b, monthDistance(rut, m))
}

// monthDistance returns the minimal cyclic distance in months from m to the
// rut range; zero when inside.
func monthDistance(r types.MonthRange, m time.Month) int {
	if r.Contains(m) {
		return 0
	}
	toStart := cyclicMonths(m, r.Start)
	toEnd := cyclicMonths(r.End, m)
	if toStart < toEnd {
		return toStart
	}
	return toEnd
}

// cyclicMonths counts months forward from a to b on the 12-month cycle.
func cyclicMonths(a, b time.Month) int {
	d := int(b) - int(a)
	if d < 0 {
		d += 12
	}
	return d
}

// bandFor maps a whole-unit distance to its band score.
func bandFor(b config.BandScores, dist int) float64 {
	switch {
	case dist == 0:
		return b.Peak
	case dist == 1:
		return b.Near
	case dist == 2:
		return b.Extended
	default:
		return b.OffPeak
	}
}
