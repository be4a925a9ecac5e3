package pathquery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queryTotal counts answered queries by status.
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boardpath_path_query_total",
		Help: "Total path queries by result status",
	}, []string{"status"})

	// queryErrors counts rejected queries.
	queryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpath_path_query_errors_total",
		Help: "Total path queries rejected because an endpoint is not a node",
	})

	// searchDuration tracks single-source search latency.
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "boardpath_search_duration_seconds",
		Help:    "Single-source search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
	}, []string{"algorithm"})

	// treeReuse counts queries answered from an already computed tree.
	treeReuse = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpath_search_tree_reuse_total",
		Help: "Total queries served by a memoized single-source tree",
	})
)
