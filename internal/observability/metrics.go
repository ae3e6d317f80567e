// Package observability provides Prometheus metrics and OpenTelemetry tracing setup.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "happyhour_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// RatingCacheHits counts average-rating cache hits.
	RatingCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "happyhour_rating_cache_hits_total",
		Help: "Total number of average-rating cache hits",
	})

	// RatingCacheMisses counts average-rating cache misses.
	RatingCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "happyhour_rating_cache_misses_total",
		Help: "Total number of average-rating cache misses",
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "happyhour_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DuplicateRejections counts duplicate-guard rejections by resource family.
	DuplicateRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "happyhour_duplicate_rejections_total",
		Help: "Total number of writes rejected by the duplicate guard",
	}, []string{"resource"})

	// OwnershipRejections counts ownership-check failures by resource family.
	OwnershipRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "happyhour_ownership_rejections_total",
		Help: "Total number of mutations rejected by the ownership check",
	}, []string{"resource"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
