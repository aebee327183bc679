package engine

import (
	"testing"

	"huntcast/internal/config"
	"huntcast/internal/profile"
)

func TestEvalSpatial(t *testing.T) {
	p := config.DefaultScoringParams()
	catalog := profile.Builtin()

	tests := []struct {
		name     string
		species  string
		location string
		want     float64
	}{
		{"keyword match", "White-tailed Deer", "near Dixville Notch", 0.85},
		{"case insensitive", "White-tailed Deer", "CONNECTICUT LAKES region", 0.90},
		{"stronghold bonus", "Moose", "Connecticut Lakes headwaters", 1.0}, // 0.90 + 0.10
		{"stronghold for deer only", "White-tailed Deer", "downtown Colebrook", 0.90},
		{"same keyword, no affinity", "Moose", "downtown Colebrook", 0.80},
		{"unmatched falls to baseline", "Moose", "somewhere in Vermont", 0.60},
		{"empty rejected upstream, baseline here", "Moose", "zzz", 0.60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalSpatial(p, catalog, tt.species, tt.location)
			if !almostEqual(got, tt.want) {
				t.Errorf("evalSpatial(%q, %q): got %.2f, want %.2f", tt.species, tt.location, got, tt.want)
			}
		})
	}
}

func TestEvalSpatial_BestKeywordWins(t *testing.T) {
	p := config.DefaultScoringParams()
	catalog := profile.Builtin()

	// "pittsburg" (0.75) and "connecticut lakes" (0.90) both match; the
	// higher-scored keyword decides.
	got := evalSpatial(p, catalog, "White-tailed Deer", "Pittsburg near the Connecticut Lakes")
	if !almostEqual(got, 0.90) {
		t.Errorf("got %.2f, want 0.90 from the stronger keyword", got)
	}
}
