package outlook

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"huntcast/internal/config"
	"huntcast/internal/engine"
	"huntcast/internal/profile"
	"huntcast/internal/types"
	"huntcast/internal/weather"
)

type stubForecaster struct {
	forecastFn func(ctx context.Context, lat, lon float64, days int) ([]weather.DailyForecast, error)
	lastDays   int
}

func (s *stubForecaster) Current(ctx context.Context, lat, lon float64) (types.WeatherSnapshot, error) {
	return types.WeatherSnapshot{}, errors.New("not used")
}

func (s *stubForecaster) Forecast(ctx context.Context, lat, lon float64, days int) ([]weather.DailyForecast, error) {
	s.lastDays = days
	if s.forecastFn != nil {
		return s.forecastFn(ctx, lat, lon, days)
	}
	return favorableForecast(days), nil
}

// favorableForecast returns November days with mild temps, light wind, and
// overcast skies so every species scores well on weather.
func favorableForecast(days int) []weather.DailyForecast {
	start := time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC)
	out := make([]weather.DailyForecast, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, weather.DailyForecast{
			Date:     start.AddDate(0, 0, i),
			TempMaxF: 48,
			TempMinF: 36,
			WindMPH:  7,
			Sky:      types.SkyOvercast,
		})
	}
	return out
}

func newTestService(t *testing.T, source weather.Source, opts ...Option) *Service {
	t.Helper()
	eng, err := engine.New(config.DefaultScoringParams(), profile.Builtin())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return NewService(eng, source, 44.8941, -71.4962, opts...)
}

func TestBuild_ShapeAndOrdering(t *testing.T) {
	source := &stubForecaster{}
	svc := newTestService(t, source)

	out, err := svc.Build(context.Background(), "Dixville Notch", 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if out.Location != "Dixville Notch" {
		t.Errorf("location: got %q", out.Location)
	}
	if len(out.Days) != 3 {
		t.Fatalf("days: got %d", len(out.Days))
	}

	speciesCount := len(profile.Builtin().Species())
	for i, day := range out.Days {
		wantDate := time.Date(2025, time.November, 8+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		if day.Date != wantDate {
			t.Errorf("day %d date: got %s, want %s", i, day.Date, wantDate)
		}
		if len(day.Species) != speciesCount {
			t.Errorf("day %d: got %d species, want %d", i, len(day.Species), speciesCount)
		}
		for j := 1; j < len(day.Species); j++ {
			if day.Species[j].SuccessProbability > day.Species[j-1].SuccessProbability {
				t.Errorf("day %d: species not sorted by probability at index %d", i, j)
			}
		}
		if day.Weather.TempMinF != 36 || day.Weather.TempMaxF != 48 {
			t.Errorf("day %d: weather summary not carried through", i)
		}
	}
}

func TestBuild_ClampsDays(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{0, MinDays},
		{-5, MinDays},
		{1, 1},
		{7, 7},
		{10, MaxDays},
	}

	for _, tt := range tests {
		source := &stubForecaster{}
		svc := newTestService(t, source)

		out, err := svc.Build(context.Background(), "Colebrook", tt.requested)
		if err != nil {
			t.Fatalf("Build(%d): %v", tt.requested, err)
		}
		if source.lastDays != tt.want {
			t.Errorf("Build(%d): forecast requested for %d days, want %d", tt.requested, source.lastDays, tt.want)
		}
		if len(out.Days) != tt.want {
			t.Errorf("Build(%d): got %d days, want %d", tt.requested, len(out.Days), tt.want)
		}
	}
}

func TestBuild_RatingMatchesBestSpecies(t *testing.T) {
	svc := newTestService(t, &stubForecaster{})

	out, err := svc.Build(context.Background(), "Colebrook", 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, day := range out.Days {
		if len(day.Species) == 0 {
			t.Fatal("day has no species scores")
		}
		var want DayRating
		switch day.Species[0].Confidence {
		case types.ConfidenceHigh:
			want = RatingExcellent
		case types.ConfidenceMedium:
			want = RatingGood
		case types.ConfidenceLow:
			want = RatingFair
		default:
			want = RatingPoor
		}
		if day.Rating != want {
			t.Errorf("day %s: rating %s does not match best confidence %s", day.Date, day.Rating, day.Species[0].Confidence)
		}
	}
}

func TestBuild_BestDaysConsistent(t *testing.T) {
	svc := newTestService(t, &stubForecaster{})

	out, err := svc.Build(context.Background(), "Dixville Notch", 7)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	hasExcellent := false
	for _, day := range out.Days {
		if day.Rating == RatingExcellent {
			hasExcellent = true
			break
		}
	}

	wantRating := RatingGood
	if hasExcellent {
		wantRating = RatingExcellent
	}
	byDate := make(map[string]DayRating, len(out.Days))
	for _, day := range out.Days {
		byDate[day.Date] = day.Rating
	}
	for _, date := range out.BestDays {
		if byDate[date] != wantRating {
			t.Errorf("best day %s has rating %s, want %s", date, byDate[date], wantRating)
		}
	}
}

func TestBuild_CellCounter(t *testing.T) {
	var cells atomic.Int64
	source := &stubForecaster{}
	svc := newTestService(t, source, WithCellCounter(func() { cells.Add(1) }))

	const days = 4
	if _, err := svc.Build(context.Background(), "Colebrook", days); err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := int64(days * len(profile.Builtin().Species()))
	if cells.Load() != want {
		t.Errorf("cell counter: got %d, want %d", cells.Load(), want)
	}
}

func TestBuild_ForecastError(t *testing.T) {
	source := &stubForecaster{
		forecastFn: func(ctx context.Context, lat, lon float64, days int) ([]weather.DailyForecast, error) {
			return nil, types.NewAppError(types.ErrCodeUpstreamUnavailable, "provider down", nil)
		},
	}
	svc := newTestService(t, source)

	_, err := svc.Build(context.Background(), "Colebrook", 3)
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrCodeUpstreamUnavailable {
		t.Errorf("error: got %v", err)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	svc := newTestService(t, &stubForecaster{})

	first, err := svc.Build(context.Background(), "Colebrook", 7)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := svc.Build(context.Background(), "Colebrook", 7)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		for d := range first.Days {
			if first.Days[d].Rating != again.Days[d].Rating {
				t.Fatalf("day %d rating changed between runs", d)
			}
			for s := range first.Days[d].Species {
				if first.Days[d].Species[s] != again.Days[d].Species[s] {
					t.Fatalf("day %d species %d score changed between runs", d, s)
				}
			}
		}
	}
}
