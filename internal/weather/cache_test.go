package weather

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huntcast/internal/types"
)

type fakeSource struct {
	currentCalls  int
	forecastCalls int
	snapshot      types.WeatherSnapshot
	forecast      []DailyForecast
}

func (f *fakeSource) Current(ctx context.Context, lat, lon float64) (types.WeatherSnapshot, error) {
	f.currentCalls++
	return f.snapshot, nil
}

func (f *fakeSource) Forecast(ctx context.Context, lat, lon float64, days int) ([]DailyForecast, error) {
	f.forecastCalls++
	return f.forecast, nil
}

func TestCachedSource_CurrentWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeSource{snapshot: types.WeatherSnapshot{TemperatureF: 40, Sky: types.SkyClear, PressureInHg: 30}}

	var hits, misses int
	cached := NewCachedSource(src, 15*time.Minute,
		WithClock(clock),
		WithCacheCounters(func() { hits++ }, func() { misses++ }),
	)

	first, err := cached.Current(t.Context(), 44.894, -71.496)
	require.NoError(t, err)
	second, err := cached.Current(t.Context(), 44.894, -71.496)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.currentCalls, "second call must be served from cache")
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestCachedSource_ExpiresAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeSource{snapshot: types.WeatherSnapshot{TemperatureF: 40, Sky: types.SkyClear, PressureInHg: 30}}
	cached := NewCachedSource(src, 15*time.Minute, WithClock(clock))

	_, err := cached.Current(t.Context(), 44.894, -71.496)
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)

	_, err = cached.Current(t.Context(), 44.894, -71.496)
	require.NoError(t, err)
	assert.Equal(t, 2, src.currentCalls, "expired entry must refetch")
}

func TestCachedSource_NearbyCoordinatesShareEntry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeSource{snapshot: types.WeatherSnapshot{TemperatureF: 40, Sky: types.SkyClear, PressureInHg: 30}}
	cached := NewCachedSource(src, 15*time.Minute, WithClock(clock))

	_, err := cached.Current(t.Context(), 44.894, -71.496)
	require.NoError(t, err)
	// Within the rounding bucket.
	_, err = cached.Current(t.Context(), 44.8941, -71.4961)
	require.NoError(t, err)
	assert.Equal(t, 1, src.currentCalls)

	// A distinctly different location misses.
	_, err = cached.Current(t.Context(), 45.5, -70.0)
	require.NoError(t, err)
	assert.Equal(t, 2, src.currentCalls)
}

func TestCachedSource_ForecastKeyedByHorizon(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeSource{forecast: []DailyForecast{{Date: time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)}}}
	cached := NewCachedSource(src, 15*time.Minute, WithClock(clock))

	_, err := cached.Forecast(t.Context(), 44.894, -71.496, 7)
	require.NoError(t, err)
	_, err = cached.Forecast(t.Context(), 44.894, -71.496, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, src.forecastCalls)

	// A different horizon is a different cache entry.
	_, err = cached.Forecast(t.Context(), 44.894, -71.496, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, src.forecastCalls)
}
