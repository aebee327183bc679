package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"huntcast/internal/types"
)

// SpeciesRepository provides data access for the species_profiles table. It
// allows operators to tune profiles without a redeploy; the embedded catalog
// remains the fallback when the table is empty or no database is configured.
type SpeciesRepository struct {
	db DBTX
}

// NewSpeciesRepository creates a new SpeciesRepository backed by the given
// database connection (pool or transaction).
func NewSpeciesRepository(db DBTX) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

// speciesColumns defines the standard set of columns selected for species
// queries. Used consistently across all query methods to avoid column drift.
const speciesColumns = `s.name, s.temp_optimal_min_f, s.temp_optimal_max_f,
	s.wind_tolerance_mph, s.peak_start_am, s.peak_end_am, s.peak_start_pm, s.peak_end_pm,
	s.rut_start_month, s.rut_end_month, s.feeding_pattern,
	s.pressure_sensitivity, s.population_density, s.harvest_rate`

// scanSpecies scans a single species row into a types.SpeciesProfile. The
// columns must match the order defined in speciesColumns.
func scanSpecies(row pgx.Row) (*types.SpeciesProfile, error) {
	var p types.SpeciesProfile
	var peakStartAM, peakEndAM, peakStartPM, peakEndPM int
	var rutStart, rutEnd int

	err := row.Scan(
		&p.Name,
		&p.TempOptimalMinF,
		&p.TempOptimalMaxF,
		&p.WindToleranceMPH,
		&peakStartAM,
		&peakEndAM,
		&peakStartPM,
		&peakEndPM,
		&rutStart,
		&rutEnd,
		&p.Feeding,
		&p.PressureSensitivity,
		&p.PopulationDensity,
		&p.HarvestRate,
	)
	if err != nil {
		return nil, err
	}

	p.PeakWindows = []types.HourWindow{
		{Start: peakStartAM, End: peakEndAM},
		{Start: peakStartPM, End: peakEndPM},
	}
	p.Rut = types.MonthRange{Start: time.Month(rutStart), End: time.Month(rutEnd)}
	return &p, nil
}

// List returns all species profiles ordered by name.
func (r *SpeciesRepository) List(ctx context.Context) ([]types.SpeciesProfile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+speciesColumns+` FROM species_profiles s ORDER BY s.name`)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list species profiles", err)
	}
	defer rows.Close()

	var out []types.SpeciesProfile
	for rows.Next() {
		p, err := scanSpecies(rows)
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan species profile", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to iterate species profiles", err)
	}
	return out, nil
}

// Upsert inserts or replaces a species profile keyed by name. Only the first
// two peak windows are persisted.
func (r *SpeciesRepository) Upsert(ctx context.Context, p *types.SpeciesProfile) error {
	var am, pm types.HourWindow
	if len(p.PeakWindows) > 0 {
		am = p.PeakWindows[0]
	}
	if len(p.PeakWindows) > 1 {
		pm = p.PeakWindows[1]
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO species_profiles (name, temp_optimal_min_f, temp_optimal_max_f,
		 wind_tolerance_mph, peak_start_am, peak_end_am, peak_start_pm, peak_end_pm,
		 rut_start_month, rut_end_month, feeding_pattern,
		 pressure_sensitivity, population_density, harvest_rate, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		 ON CONFLICT (name) DO UPDATE SET
		   temp_optimal_min_f = EXCLUDED.temp_optimal_min_f,
		   temp_optimal_max_f = EXCLUDED.temp_optimal_max_f,
		   wind_tolerance_mph = EXCLUDED.wind_tolerance_mph,
		   peak_start_am = EXCLUDED.peak_start_am,
		   peak_end_am = EXCLUDED.peak_end_am,
		   peak_start_pm = EXCLUDED.peak_start_pm,
		   peak_end_pm = EXCLUDED.peak_end_pm,
		   rut_start_month = EXCLUDED.rut_start_month,
		   rut_end_month = EXCLUDED.rut_end_month,
		   feeding_pattern = EXCLUDED.feeding_pattern,
		   pressure_sensitivity = EXCLUDED.pressure_sensitivity,
		   population_density = EXCLUDED.population_density,
		   harvest_rate = EXCLUDED.harvest_rate,
		   updated_at = NOW()`,
		p.Name,
		p.TempOptimalMinF,
		p.TempOptimalMaxF,
		p.WindToleranceMPH,
		am.Start, am.End, pm.Start, pm.End,
		int(p.Rut.Start), int(p.Rut.End),
		p.Feeding,
		p.PressureSensitivity,
		p.PopulationDensity,
		p.HarvestRate,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to upsert species profile", err)
	}
	return nil
}
