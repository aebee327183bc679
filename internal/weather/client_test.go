package weather

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huntcast/internal/config"
	"huntcast/internal/types"
)

func testWeatherConfig(baseURL string) config.WeatherConfig {
	return config.WeatherConfig{
		BaseURL:    baseURL,
		Latitude:   44.894,
		Longitude:  -71.496,
		Timeout:    time.Second,
		CacheTTL:   time.Minute,
		UserAgent:  "HuntCast-Test/1.0",
		MaxRetries: 0,
	}
}

const currentFixture = `{
	"current": {
		"temperature_2m": 42.3,
		"wind_speed_10m": 7.1,
		"relative_humidity_2m": 81,
		"surface_pressure": 1016.2,
		"weather_code": 3
	}
}`

const forecastFixture = `{
	"daily": {
		"time": ["2025-11-08", "2025-11-09"],
		"temperature_2m_max": [48.0, 39.0],
		"temperature_2m_min": [30.0, 22.0],
		"wind_speed_10m_max": [9.0, 18.0],
		"weather_code": [0, 73]
	}
}`

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "44.8940", q.Get("latitude"))
		assert.Equal(t, "fahrenheit", q.Get("temperature_unit"))
		assert.Equal(t, "mph", q.Get("wind_speed_unit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentFixture))
	}))
	defer srv.Close()

	client := NewClient(testWeatherConfig(srv.URL))
	snap, err := client.Current(t.Context(), 44.894, -71.496)
	require.NoError(t, err)

	assert.Equal(t, 42.3, snap.TemperatureF)
	assert.Equal(t, 7.1, snap.WindSpeedMPH)
	assert.Equal(t, types.SkyOvercast, snap.Sky)
	// 1016.2 hPa converted to inches of mercury.
	assert.InDelta(t, 30.01, snap.PressureInHg, 0.01)
	require.NotNil(t, snap.HumidityPct)
	assert.Equal(t, 81.0, *snap.HumidityPct)

	// The converted snapshot must pass engine validation as-is.
	require.Nil(t, types.ValidateSnapshot(snap))
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("forecast_days"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	client := NewClient(testWeatherConfig(srv.URL))
	days, err := client.Forecast(t.Context(), 44.894, -71.496, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, 48.0, days[0].TempMaxF)
	assert.Equal(t, types.SkyClear, days[0].Sky)
	assert.Equal(t, types.SkySnow, days[1].Sky)

	snap := days[0].Snapshot()
	assert.Equal(t, 39.0, snap.TemperatureF) // midpoint of 30-48
	assert.Equal(t, 9.0, snap.WindSpeedMPH)
	require.Nil(t, types.ValidateSnapshot(snap))
}

func TestCurrent_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testWeatherConfig(srv.URL))
	_, err := client.Current(t.Context(), 44.894, -71.496)
	require.Error(t, err)

	appErr, ok := err.(*types.AppError)
	require.True(t, ok)
	assert.Equal(t, types.ErrCodeUpstreamUnavailable, appErr.Code)
}

func TestSkyFromWMOCode(t *testing.T) {
	tests := []struct {
		code int
		want types.SkyCondition
	}{
		{0, types.SkyClear},
		{1, types.SkyPartlyCloudy},
		{2, types.SkyPartlyCloudy},
		{3, types.SkyOvercast},
		{45, types.SkyFog},
		{48, types.SkyFog},
		{53, types.SkyLightRain},
		{61, types.SkyLightRain},
		{65, types.SkyHeavyRain},
		{71, types.SkySnow},
		{77, types.SkySnow},
		{80, types.SkyLightRain},
		{82, types.SkyHeavyRain},
		{85, types.SkySnow},
		{95, types.SkyHeavyRain},
		{99, types.SkyHeavyRain},
		{40, types.SkyOvercast}, // unmapped codes fall back to overcast
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, skyFromWMOCode(tt.code), "code %d", tt.code)
	}
}

func TestFetchObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(currentFixture))
	}))
	defer srv.Close()

	var outcomes []string
	client := NewClient(testWeatherConfig(srv.URL),
		WithFetchObserver(func(outcome string, d time.Duration) {
			outcomes = append(outcomes, outcome)
			assert.GreaterOrEqual(t, d, time.Duration(0))
		}),
	)

	_, err := client.Current(t.Context(), 44.894, -71.496)
	require.NoError(t, err)
	assert.Equal(t, []string{"success"}, outcomes)
}

func TestFetchObserver_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var outcomes []string
	client := NewClient(testWeatherConfig(srv.URL),
		WithFetchObserver(func(outcome string, d time.Duration) {
			outcomes = append(outcomes, outcome)
		}),
	)

	_, err := client.Current(t.Context(), 44.894, -71.496)
	require.Error(t, err)
	assert.Equal(t, []string{"error"}, outcomes)
}
