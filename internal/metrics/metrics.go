/*
Package metrics defines the Prometheus metrics exported at /metrics.

Query metrics:
  - event_query_duration_seconds: event list query latency (histogram)
  - event_query_errors_total: failed event list queries (counter)

List view metrics:
  - list_fetches_total: controller fetches by intent (replace, append)
  - list_stale_results_total: results discarded because a newer filter or sort won
  - list_load_more_ignored_total: load-more requests dropped while loading or at the end
  - list_views_active: mounted list views

HTTP metrics:
  - http_requests_total: requests by method, resource and status
  - http_request_duration_seconds: request latency by method and resource
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "event_query_duration_seconds",
			Help:    "Duration of event list queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	EventQueryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_query_errors_total",
			Help: "Total number of failed event list queries",
		},
	)

	ListFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "list_fetches_total",
			Help: "Total number of list view fetches",
		},
		[]string{"intent"}, // "replace", "append"
	)

	ListStaleResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "list_stale_results_total",
			Help: "Total number of list view results discarded as superseded",
		},
	)

	ListLoadMoreIgnored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "list_load_more_ignored_total",
			Help: "Total number of load-more requests dropped",
		},
	)

	ListViewsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "list_views_active",
			Help: "Current number of mounted list views",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "resource", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "resource"},
	)
)
