package engine

import (
	"math"
	"time"

	"huntcast/internal/types"
)

// synodicDays is the mean length of the synodic lunar cycle: the period
// between successive new moons.
const synodicDays = 29.530588853

// refNewMoon is the reference new moon the phase calculation counts from
// (2000-01-06 18:14 UTC).
var refNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// MoonPhaseOn returns the lunar phase for the given instant. It is a pure
// function of the date: the same timestamp always yields the same phase,
// which keeps every report reproducible.
func MoonPhaseOn(t time.Time) types.MoonPhase {
	days := t.UTC().Sub(refNewMoon).Hours() / 24
	age := math.Mod(days, synodicDays)
	if age < 0 {
		age += synodicDays
	}
	// Divide the cycle into eight bands centered on the exact phase
	// instants, so the day of a full moon maps to "full" rather than the
	// neighboring gibbous band.
	idx := int(math.Floor(age/synodicDays*8+0.5)) % 8
	return types.MoonPhases[idx]
}

// moonAgeDays returns the days elapsed since the last new moon, in
// [0, synodicDays).
func moonAgeDays(t time.Time) float64 {
	days := t.UTC().Sub(refNewMoon).Hours() / 24
	age := math.Mod(days, synodicDays)
	if age < 0 {
		age += synodicDays
	}
	return age
}
