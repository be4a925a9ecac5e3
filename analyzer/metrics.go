package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// graphBuildTotal counts graph requests by result: built, memo_hit, error.
	graphBuildTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boardpath_graph_build_total",
		Help: "Total graph requests by result",
	}, []string{"result"})

	// graphBuildDuration tracks the cost of one board-to-graph build.
	graphBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "boardpath_graph_build_duration_seconds",
		Help:    "Graph build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
	})

	// memoEvictions counts graphs dropped from a full memo.
	memoEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpath_graph_memo_evictions_total",
		Help: "Total graphs evicted from the analyzer memo",
	})

	// planTotal counts planner calls by result.
	planTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boardpath_plan_total",
		Help: "Total planner calls by result",
	}, []string{"result"})
)
