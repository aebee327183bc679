package engine

import (
	"strings"

	"huntcast/internal/config"
	"huntcast/internal/profile"
)

// evalSpatial scores the caller's free-text location against the catalog's
// known-location keywords (case-insensitive substring match, best keyword
// wins). Documented species strongholds earn the affinity bonus on top of
// the keyword's base score. A location matching nothing scores the
// conservative baseline: missing location data means reduced confidence,
// never an error.
func evalSpatial(p *config.ScoringParams, catalog *profile.Catalog, species, location string) float64 {
	loc := strings.ToLower(location)

	// Locations() is ordered best score first, so the first substring hit
	// is the strongest claim about the area.
	for _, kw := range catalog.Locations() {
		if !strings.Contains(loc, strings.ToLower(kw.Keyword)) {
			continue
		}
		score := kw.Score
		if catalog.IsStronghold(species, kw.Keyword) {
			score += p.Spatial.AffinityBonus
		}
		return clamp01(score)
	}

	return p.Spatial.Baseline
}
