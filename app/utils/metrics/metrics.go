package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "creator_insights"

var (
	upstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_calls_total",
		Help:      "Upstream API attempts by service, operation and outcome.",
	}, []string{"service", "operation", "outcome"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_call_duration_seconds",
		Help:      "Latency of individual upstream API attempts.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"service", "operation"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "response_cache_lookups_total",
		Help:      "Response cache lookups by feature and result (hit, miss, shared).",
	}, []string{"feature", "result"})

	featureFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feature_failures_total",
		Help:      "Dashboard feature calls that ended in a user-facing failure.",
	}, []string{"feature", "kind"})
)

func ObserveUpstreamCall(service string, operation string, outcome string, elapsed time.Duration) {
	upstreamCalls.WithLabelValues(service, operation, outcome).Inc()
	upstreamLatency.WithLabelValues(service, operation).Observe(elapsed.Seconds())
}

func ObserveCacheLookup(feature string, result string) {
	cacheLookups.WithLabelValues(feature, result).Inc()
}

func ObserveFeatureFailure(feature string, kind string) {
	featureFailures.WithLabelValues(feature, kind).Inc()
}

var cacheStoreUp = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "cache_store_up",
	Help:      "1 when the last cache store health check succeeded.",
})

func SetCacheStoreHealthy(healthy bool) {
	if healthy {
		cacheStoreUp.Set(1)
		return
	}
	cacheStoreUp.Set(0)
}
