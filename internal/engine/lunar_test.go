package engine

import (
	"testing"
	"time"

	"huntcast/internal/types"
)

func TestMoonPhaseOn_KnownDates(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want types.MoonPhase
	}{
		{
			"reference new moon",
			time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC),
			types.MoonNew,
		},
		{
			"first quarter Jan 2000",
			time.Date(2000, time.January, 14, 13, 34, 0, 0, time.UTC),
			types.MoonFirstQuarter,
		},
		{
			"full moon Jan 2000",
			time.Date(2000, time.January, 21, 4, 40, 0, 0, time.UTC),
			types.MoonFull,
		},
		{
			"new moon Jan 2024",
			time.Date(2024, time.January, 11, 11, 57, 0, 0, time.UTC),
			types.MoonNew,
		},
		{
			"full moon before the reference epoch",
			time.Date(1999, time.December, 22, 17, 31, 0, 0, time.UTC),
			types.MoonFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoonPhaseOn(tt.at); got != tt.want {
				t.Errorf("MoonPhaseOn(%v): got %q, want %q (age %.2f days)",
					tt.at, got, tt.want, moonAgeDays(tt.at))
			}
		})
	}
}

func TestMoonPhaseOn_Deterministic(t *testing.T) {
	at := time.Date(2025, time.October, 10, 12, 0, 0, 0, time.UTC)
	want := MoonPhaseOn(at)
	for i := 0; i < 5; i++ {
		if got := MoonPhaseOn(at); got != want {
			t.Fatalf("phase changed between calls: %q then %q", want, got)
		}
	}
}

func TestMoonAgeDays_StaysInCycle(t *testing.T) {
	start := time.Date(1998, time.June, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 120; day++ {
		at := start.AddDate(0, 0, day)
		age := moonAgeDays(at)
		if age < 0 || age >= synodicDays {
			t.Fatalf("age %.4f outside [0, %.4f) at %v", age, synodicDays, at)
		}
	}
}
