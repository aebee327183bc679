// Package profile provides the read-only species behavior catalog and the
// known-location keyword index consumed by the conditions engine. The
// catalog is constructed once at startup -- from the embedded reference
// table or from the Postgres reference store -- validated against the domain
// invariants, and shared by unlimited concurrent callers without locking.
package profile

import (
	"fmt"
	"sort"
	"strings"

	"huntcast/internal/types"
)

// LocationKeyword maps a known-location keyword to its base habitat score.
// Matching is a case-insensitive substring test against the caller-supplied
// location string.
type LocationKeyword struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// Catalog is the immutable species and location reference store.
type Catalog struct {
	species map[string]types.SpeciesProfile // keyed by lowercase name
	ordered []string                        // display order

	locations []LocationKeyword

	// strongholds maps lowercase species name to the location keywords that
	// are documented strongholds for it (earning the affinity bonus).
	strongholds map[string][]string
}

// NewCatalog validates the supplied reference data and builds a Catalog.
// Violations of the profile invariants are configuration errors: the
// process must refuse to serve rather than score against bad reference data.
func NewCatalog(species []types.SpeciesProfile, locations []LocationKeyword, strongholds map[string][]string) (*Catalog, error) {
	if len(species) == 0 {
		return nil, types.NewAppError(types.ErrCodeConfigInvalid, "species catalog must not be empty", nil)
	}

	byName := make(map[string]types.SpeciesProfile, len(species))
	ordered := make([]string, 0, len(species))
	for _, sp := range species {
		if err := validateProfile(sp); err != nil {
			return nil, err
		}
		key := strings.ToLower(sp.Name)
		if _, dup := byName[key]; dup {
			return nil, types.NewAppError(types.ErrCodeConfigInvalid,
				fmt.Sprintf("duplicate species %q in catalog", sp.Name), nil)
		}
		byName[key] = sp
		ordered = append(ordered, sp.Name)
	}

	for _, loc := range locations {
		if strings.TrimSpace(loc.Keyword) == "" {
			return nil, types.NewAppError(types.ErrCodeConfigInvalid, "location keyword must not be empty", nil)
		}
		if loc.Score < 0 || loc.Score > 1 {
			return nil, types.NewAppError(types.ErrCodeConfigInvalid,
				fmt.Sprintf("location %q score %.2f must be within [0,1]", loc.Keyword, loc.Score), nil)
		}
	}

	normalized := make(map[string][]string, len(strongholds))
	for sp, keywords := range strongholds {
		key := strings.ToLower(sp)
		if _, ok := byName[key]; !ok {
			return nil, types.NewAppError(types.ErrCodeConfigInvalid,
				fmt.Sprintf("stronghold entry references unknown species %q", sp), nil)
		}
		for _, kw := range keywords {
			normalized[key] = append(normalized[key], strings.ToLower(kw))
		}
	}

	return &Catalog{
		species:     byName,
		ordered:     ordered,
		locations:   locations,
		strongholds: normalized,
	}, nil
}

// validateProfile checks the per-species invariants from the data model.
func validateProfile(sp types.SpeciesProfile) error {
	bad := func(format string, args ...any) error {
		return types.NewAppError(types.ErrCodeConfigInvalid,
			fmt.Sprintf("species %q: ", sp.Name)+fmt.Sprintf(format, args...), nil)
	}

	if strings.TrimSpace(sp.Name) == "" {
		return types.NewAppError(types.ErrCodeConfigInvalid, "species name must not be empty", nil)
	}
	if sp.TempOptimalMinF > sp.TempOptimalMaxF {
		return bad("optimal temperature min %.1f exceeds max %.1f", sp.TempOptimalMinF, sp.TempOptimalMaxF)
	}
	if sp.WindToleranceMPH <= 0 {
		return bad("wind tolerance must be positive")
	}
	for _, w := range sp.PeakWindows {
		if w.Start < 0 || w.Start > 23 || w.End < 0 || w.End > 23 || w.Start > w.End {
			return bad("peak window %d-%d is not a valid hour interval", w.Start, w.End)
		}
	}
	if sp.Rut.Start < 1 || sp.Rut.Start > 12 || sp.Rut.End < 1 || sp.Rut.End > 12 {
		return bad("rut months must be within 1-12")
	}
	switch sp.Feeding {
	case types.FeedingCrepuscular, types.FeedingDiurnal, types.FeedingNocturnal:
	default:
		return bad("unknown feeding pattern %q", sp.Feeding)
	}
	if sp.PressureSensitivity < 0 || sp.PressureSensitivity > 1 {
		return bad("pressure sensitivity %.2f must be within [0,1]", sp.PressureSensitivity)
	}
	if sp.PopulationDensity < 0 {
		return bad("population density must be non-negative")
	}
	if sp.HarvestRate < 0 || sp.HarvestRate > 1 {
		return bad("harvest rate %.2f must be within [0,1]", sp.HarvestRate)
	}
	return nil
}

// Profile returns the profile for the named species, matched
// case-insensitively. Unknown names fail with a typed not-found error; the
// catalog never substitutes a default profile.
func (c *Catalog) Profile(name string) (types.SpeciesProfile, error) {
	sp, ok := c.species[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return types.SpeciesProfile{}, types.UnknownSpeciesError(name)
	}
	return sp, nil
}

// Species returns all profiles in catalog order.
func (c *Catalog) Species() []types.SpeciesProfile {
	out := make([]types.SpeciesProfile, 0, len(c.ordered))
	for _, name := range c.ordered {
		out = append(out, c.species[strings.ToLower(name)])
	}
	return out
}

// Locations returns the known-location keyword index, best scores first.
func (c *Catalog) Locations() []LocationKeyword {
	out := make([]LocationKeyword, len(c.locations))
	copy(out, c.locations)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// IsStronghold reports whether the keyword is a documented stronghold for
// the species (both matched case-insensitively).
func (c *Catalog) IsStronghold(species, keyword string) bool {
	for _, kw := range c.strongholds[strings.ToLower(species)] {
		if kw == strings.ToLower(keyword) {
			return true
		}
	}
	return false
}
