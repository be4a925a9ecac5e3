// Package pathquery answers shortest-path and distance queries between two
// board cells on a graph built by boardgraph.
//
// What
//
//   - ShortestPath(src, dst) returns the node sequence from src to dst
//     (inclusive) and its cost, or an Unreachable result when the cells lie
//     in different regions.
//   - Distance(src, dst) returns only the cost.
//   - From(src) exposes the single-source Tree for callers that query many
//     destinations at once.
//
// Errors versus results
//
//	Unreachable is a valid answer, not an error: both endpoints are nodes
//	but no path joins them. ErrNodeNotInGraph is returned when an endpoint
//	is an obstacle, out of bounds, or excluded by the robot's passability.
//	It usually means the caller asked to path to an impassable cell.
//	BudgetExceeded is reported, distinctly from Unreachable, when a
//	WithMaxSteps budget stopped the search before the destination.
//
// Algorithm
//
//	AlgorithmAuto (default) runs bfs on unit-cost graphs and dijkstra on
//	weighted ones. Both enumerate neighbours in the graph's fixed order and
//	break ties consistently, so the same query on the same Service always
//	yields the same path.
//
// Reuse
//
//	A Service memoizes one Tree per source. The first query from a source
//	pays O(V + E) (BFS) or O((V + E) log V) (Dijkstra); later queries from
//	that source cost O(path length). On undirected graphs, pairs in
//	different regions are answered from the component labelling without
//	any search.
//
// Lifetime
//
//	A Service is bound to one graph, which is bound to one snapshot. Build
//	a new graph and Service when the board changes.
//
// Observability
//
//	Prometheus counters record queries by status, rejected queries, and
//	tree reuse; a histogram records search latency by algorithm. Searches
//	are logged at debug level through WithLogger.
package pathquery
