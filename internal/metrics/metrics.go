package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_cache_hits_total",
			Help: "Total number of enriched-table cache hits",
		},
		[]string{"cache_name"},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: Namespace + "_cache_size",
			Help: "Entries currently held by the enriched-table cache",
		},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_cache_misses_total",
			Help: "Total number of enriched-table cache misses",
		},
		[]string{"cache_name"},
	)

	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_refreshes_total",
			Help: "Snapshot refreshes by outcome",
		},
		[]string{"outcome"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_refresh_duration_seconds",
			Help:    "Time to query the source and rewrite the snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)

	SnapshotRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: Namespace + "_snapshot_rows",
			Help: "Rows written by the most recent successful refresh",
		},
	)

	RegionLookupFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_region_lookup_fallbacks_total",
			Help: "Rows whose region was filled with a placeholder",
		},
		[]string{"reason"},
	)
)
