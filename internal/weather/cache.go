package weather

import (
	"context"
	"sync"
	"time"

	"huntcast/internal/types"

	"github.com/jonboulle/clockwork"
)

// Source is the interface satisfied by Client and consumed by CachedSource.
type Source interface {
	Current(ctx context.Context, lat, lon float64) (types.WeatherSnapshot, error)
	Forecast(ctx context.Context, lat, lon float64, days int) ([]DailyForecast, error)
}

// cacheKey rounds coordinates to ~1km so nearby requests share entries.
type cacheKey struct {
	lat  int64
	lon  int64
	days int
}

func keyFor(lat, lon float64, days int) cacheKey {
	return cacheKey{
		lat:  int64(lat * 100),
		lon:  int64(lon * 100),
		days: days,
	}
}

type currentEntry struct {
	snapshot  types.WeatherSnapshot
	expiresAt time.Time
}

type forecastEntry struct {
	forecast  []DailyForecast
	expiresAt time.Time
}

// CachedSource wraps a Source with a TTL cache. Weather changes slowly
// relative to request rates; one upstream call per location per TTL window
// is enough.
type CachedSource struct {
	source Source
	ttl    time.Duration
	clock  clockwork.Clock

	mu        sync.RWMutex
	current   map[cacheKey]currentEntry
	forecasts map[cacheKey]forecastEntry

	hits   func()
	misses func()
}

// CachedSourceOption configures a CachedSource.
type CachedSourceOption func(*CachedSource)

// WithClock overrides the clock used for expiry checks. Intended for tests.
func WithClock(clock clockwork.Clock) CachedSourceOption {
	return func(c *CachedSource) {
		c.clock = clock
	}
}

// WithCacheCounters installs hit/miss callbacks for metrics.
func WithCacheCounters(hit, miss func()) CachedSourceOption {
	return func(c *CachedSource) {
		c.hits = hit
		c.misses = miss
	}
}

// NewCachedSource wraps source with a TTL cache.
func NewCachedSource(source Source, ttl time.Duration, opts ...CachedSourceOption) *CachedSource {
	c := &CachedSource{
		source:    source,
		ttl:       ttl,
		clock:     clockwork.NewRealClock(),
		current:   make(map[cacheKey]currentEntry),
		forecasts: make(map[cacheKey]forecastEntry),
		hits:      func() {},
		misses:    func() {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the cached snapshot for the location if fresh, otherwise
// fetches from the underlying source and caches the result.
func (c *CachedSource) Current(ctx context.Context, lat, lon float64) (types.WeatherSnapshot, error) {
	key := keyFor(lat, lon, 0)
	now := c.clock.Now()

	c.mu.RLock()
	entry, ok := c.current[key]
	c.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		c.hits()
		return entry.snapshot, nil
	}
	c.misses()

	snapshot, err := c.source.Current(ctx, lat, lon)
	if err != nil {
		return types.WeatherSnapshot{}, err
	}

	c.mu.Lock()
	c.current[key] = currentEntry{snapshot: snapshot, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()
	return snapshot, nil
}

// Forecast returns the cached forecast for the location and horizon if
// fresh, otherwise fetches and caches.
func (c *CachedSource) Forecast(ctx context.Context, lat, lon float64, days int) ([]DailyForecast, error) {
	key := keyFor(lat, lon, days)
	now := c.clock.Now()

	c.mu.RLock()
	entry, ok := c.forecasts[key]
	c.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		c.hits()
		return entry.forecast, nil
	}
	c.misses()

	forecast, err := c.source.Forecast(ctx, lat, lon, days)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.forecasts[key] = forecastEntry{forecast: forecast, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()
	return forecast, nil
}
