// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_upstream_fetches_total",
			Help: "Upstream inventory fetches by outcome (ok or an error code)",
		},
		[]string{"outcome"},
	)

	UpstreamFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inventory_upstream_fetch_duration_seconds",
			Help:    "Duration of upstream inventory fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	UpstreamRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_upstream_records",
			Help: "Number of raw records returned by the last upstream fetch",
		},
	)

	FilterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_filter_rejections_total",
			Help: "Raw records rejected by the eligibility filter, by reason",
		},
		[]string{"reason"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_cache_lookups_total",
			Help: "Available-products cache lookups by result (hit, miss, store_error)",
		},
		[]string{"result"},
	)

	WebSearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_search_requests_total",
			Help: "Storefront search requests by outcome (ok or an error code)",
		},
		[]string{"outcome"},
	)
)
