package profile

import (
	"time"

	"huntcast/internal/types"
)

// Builtin returns the embedded reference catalog covering the big-game
// species of New Hampshire's Great North Woods. It is the default source
// when no reference database is configured.
//
// Figures are drawn from NH Fish & Game harvest reporting and regional
// wildlife surveys for the Colebrook / Connecticut Lakes area.
func Builtin() *Catalog {
	c, err := NewCatalog(builtinSpecies, builtinLocations, builtinStrongholds)
	if err != nil {
		// The embedded table is fixed at compile time; failing to validate
		// it is a programming error, not a runtime condition.
		panic(err)
	}
	return c
}

// BuiltinLocations returns the embedded location keyword table, for callers
// that build a catalog from an external species source but keep the local
// geography.
func BuiltinLocations() []LocationKeyword {
	out := make([]LocationKeyword, len(builtinLocations))
	copy(out, builtinLocations)
	return out
}

// BuiltinStrongholds returns the embedded species/location affinity table.
func BuiltinStrongholds() map[string][]string {
	out := make(map[string][]string, len(builtinStrongholds))
	for k, v := range builtinStrongholds {
		out[k] = append([]string(nil), v...)
	}
	return out
}

var builtinSpecies = []types.SpeciesProfile{
	{
		Name:                "White-tailed Deer",
		TempOptimalMinF:     25,
		TempOptimalMaxF:     55,
		WindToleranceMPH:    15,
		PeakWindows:         []types.HourWindow{{Start: 6, End: 8}, {Start: 17, End: 19}},
		Rut:                 types.MonthRange{Start: time.October, End: time.November},
		Feeding:             types.FeedingCrepuscular,
		PressureSensitivity: 0.3,
		PopulationDensity:   28,
		HarvestRate:         0.18,
	},
	{
		Name:                "Moose",
		TempOptimalMinF:     15,
		TempOptimalMaxF:     35,
		WindToleranceMPH:    10,
		PeakWindows:         []types.HourWindow{{Start: 5, End: 9}, {Start: 16, End: 20}},
		Rut:                 types.MonthRange{Start: time.September, End: time.October},
		Feeding:             types.FeedingDiurnal,
		PressureSensitivity: 0.4,
		PopulationDensity:   10,
		HarvestRate:         0.08,
	},
	{
		Name:                "Black Bear",
		TempOptimalMinF:     35,
		TempOptimalMaxF:     65,
		WindToleranceMPH:    12,
		PeakWindows:         []types.HourWindow{{Start: 6, End: 10}, {Start: 16, End: 20}},
		Rut:                 types.MonthRange{Start: time.June, End: time.July},
		Feeding:             types.FeedingDiurnal,
		PressureSensitivity: 0.2,
		PopulationDensity:   18,
		HarvestRate:         0.12,
	},
	{
		Name:                "Wild Turkey",
		TempOptimalMinF:     35,
		TempOptimalMaxF:     60,
		WindToleranceMPH:    12,
		PeakWindows:         []types.HourWindow{{Start: 6, End: 9}, {Start: 15, End: 18}},
		Rut:                 types.MonthRange{Start: time.April, End: time.May},
		Feeding:             types.FeedingDiurnal,
		PressureSensitivity: 0.2,
		PopulationDensity:   10,
		HarvestRate:         0.25,
	},
}

var builtinLocations = []LocationKeyword{
	{Keyword: "connecticut lakes", Score: 0.90},
	{Keyword: "dixville", Score: 0.85},
	{Keyword: "colebrook", Score: 0.80},
	{Keyword: "indian stream", Score: 0.80},
	{Keyword: "perry stream", Score: 0.80},
	{Keyword: "coos", Score: 0.80},
	{Keyword: "pittsburg", Score: 0.75},
	{Keyword: "wmu a", Score: 0.90},
	{Keyword: "wmu b", Score: 0.80},
	{Keyword: "wmu c", Score: 0.70},
}

// builtinStrongholds names the documented species/location affinities:
// wetland complexes for moose, notch country for bear, agricultural edge
// for deer and turkey.
var builtinStrongholds = map[string][]string{
	"Moose":             {"connecticut lakes", "indian stream", "perry stream"},
	"Black Bear":        {"dixville", "pittsburg"},
	"White-tailed Deer": {"colebrook"},
	"Wild Turkey":       {"colebrook"},
}
