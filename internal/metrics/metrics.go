package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Upstream API metrics
var (
	// TVMazeRequestsTotal counts requests sent to TVMaze, by endpoint and outcome.
	// Cached responses are not counted.
	TVMazeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvmaze_requests_total",
			Help: "Total number of requests sent to the TVMaze API.",
		},
		[]string{"endpoint", "status"},
	)

	TVMazeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvmaze_request_duration_seconds",
			Help:    "Latency of requests sent to the TVMaze API.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Pipeline metrics
var (
	// GridBuildsTotal counts report pipeline runs by outcome: "success" or an error kind.
	GridBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "episode_grid_builds_total",
			Help: "Total number of episode grid builds.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		TVMazeRequestsTotal,
		TVMazeRequestDuration,
		GridBuildsTotal,
	)
}
