package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	SnapshotsServed prometheus.Counter
	BoardNotFound   prometheus.Counter
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		SnapshotsServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "openboard_snapshots_served_total",
			Help: "Total number of public board snapshots served.",
		}),
		BoardNotFound: promauto.NewCounter(prometheus.CounterOpts{
			Name: "openboard_board_not_found_total",
			Help: "Total number of requests for nonexistent or non-public boards.",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "openboard_snapshot_cache_hits_total",
			Help: "Total number of snapshot cache hits.",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "openboard_snapshot_cache_misses_total",
			Help: "Total number of snapshot cache misses.",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "openboard_request_duration_seconds",
			Help:    "HTTP request latency by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// IncrementSnapshotsServed records one served snapshot.
func (m *Metrics) IncrementSnapshotsServed() {
	if m != nil {
		m.SnapshotsServed.Inc()
	}
}

// IncrementBoardNotFound records one not-found outcome.
func (m *Metrics) IncrementBoardNotFound() {
	if m != nil {
		m.BoardNotFound.Inc()
	}
}

// IncrementCacheHit records one snapshot cache hit.
func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncrementCacheMiss records one snapshot cache miss.
func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}
