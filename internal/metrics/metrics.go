package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketRequestsTotal counts upstream market API calls by resource, network and outcome.
	MarketRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_api_requests_total",
			Help: "Total number of market API requests (by resource, network, and outcome).",
		},
		[]string{"resource", "network", "outcome"},
	)

	// MarketRequestDuration measures upstream market API latency.
	MarketRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "market_api_request_duration_seconds",
			Help:    "Duration of market API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms → ~10s
		},
		[]string{"resource", "network"},
	)

	// QueryCacheLookups counts query cache lookups by resource and result (hit, miss, shared).
	QueryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_lookups_total",
			Help: "Query cache lookups by resource and result.",
		},
		[]string{"resource", "result"},
	)
)

// IncMarketRequest increments the market API request counter.
func IncMarketRequest(resource, network, outcome string) {
	MarketRequestsTotal.WithLabelValues(resource, network, outcome).Inc()
}

// IncCacheLookup increments the query cache lookup counter.
func IncCacheLookup(resource, result string) {
	QueryCacheLookups.WithLabelValues(resource, result).Inc()
}

// ObserveDuration records elapsed time since start into a HistogramVec or SummaryVec.
func ObserveDuration(v any, start time.Time, labels ...string) {
	duration := time.Since(start).Seconds()
	switch metric := v.(type) {
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labels...).Observe(duration)
	case *prometheus.SummaryVec:
		metric.WithLabelValues(labels...).Observe(duration)
	}
}
