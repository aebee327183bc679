// Package observability holds the Prometheus instrumentation for HuntCast.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors the service exports. All collectors are
// registered against the registry passed to New so tests can use isolated
// registries.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	Evaluations       *prometheus.CounterVec
	WeatherFetches    *prometheus.CounterVec
	WeatherFetchTime  prometheus.Histogram
	WeatherCacheHits  prometheus.Counter
	WeatherCacheMiss  prometheus.Counter
	OutlookDaysScored prometheus.Counter
}

// New creates and registers the service collectors under the given
// namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Scoring evaluations by species and confidence label.",
		}, []string{"species", "confidence"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_fetches_total",
			Help:      "Upstream weather fetches by outcome.",
		}, []string{"outcome"}),
		WeatherFetchTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "weather_fetch_duration_seconds",
			Help:      "Upstream weather fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		WeatherCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_hits_total",
			Help:      "Weather cache hits.",
		}),
		WeatherCacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_misses_total",
			Help:      "Weather cache misses.",
		}),
		OutlookDaysScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outlook_days_scored_total",
			Help:      "Species-day cells scored by the outlook service.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.Evaluations,
		m.WeatherFetches,
		m.WeatherFetchTime,
		m.WeatherCacheHits,
		m.WeatherCacheMiss,
		m.OutlookDaysScored,
	)

	return m
}
