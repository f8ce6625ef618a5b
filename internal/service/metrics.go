package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_search_requests_total",
			Help: "Completed search requests by engine and sort mode",
		},
		[]string{"engine", "sort_by"},
	)

	searchFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_search_fallback_total",
			Help: "Searches served by the fallback engine after an optimized-path failure",
		},
	)

	searchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_search_failures_total",
			Help: "Terminal search failures by error code",
		},
		[]string{"code"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "event_search_duration_seconds",
			Help:    "End-to-end search duration including enrichment",
			Buckets: prometheus.DefBuckets,
		},
	)
)
