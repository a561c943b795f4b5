package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quota cache metrics
var (
	// QuotaCacheHits tracks quota cache hits by record kind
	QuotaCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_cache_hits_total",
			Help: "Quota cache hits by record kind",
		},
		[]string{"kind"},
	)

	// QuotaCacheMisses tracks quota cache misses by record kind
	QuotaCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_cache_misses_total",
			Help: "Quota cache misses by record kind",
		},
		[]string{"kind"},
	)

	// QuotaCacheErrors tracks quota cache operation failures by operation
	QuotaCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_cache_errors_total",
			Help: "Quota cache operation failures by operation (get/set/delete)",
		},
		[]string{"operation"},
	)
)

// Snack catalog metrics
var (
	// CatalogRequests tracks outbound Snack API calls by operation and outcome
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snack_catalog_requests_total",
			Help: "Outbound snack catalog requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// Record store metrics
var (
	// RecordsCreated tracks nomination/ballot rows written by kind
	RecordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_created_total",
			Help: "Nomination and ballot records created by kind",
		},
		[]string{"kind"},
	)
)
