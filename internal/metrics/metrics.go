// Package metrics defines the Prometheus instruments exported at /metrics.
// promauto registers everything on the default registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabscope_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collabscope_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// Size of the resident graph, updated on every dataset (re)load.
	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "collabscope_graph_nodes",
		Help: "Number of nodes in the loaded collaboration graph",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "collabscope_graph_edges",
		Help: "Number of edges in the loaded collaboration graph",
	})

	DatasetReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabscope_dataset_reloads_total",
			Help: "Dataset load attempts by outcome",
		},
		[]string{"outcome"},
	)

	FilterOperations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collabscope_filter_operations_total",
		Help: "Number of filtered views computed",
	})

	LiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "collabscope_live_sessions",
		Help: "Number of connected live threshold sessions",
	})
)
