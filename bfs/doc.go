// Package bfs provides breadth-first search over a boardgraph.Graph,
// returning unit-cost shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore nodes in non-decreasing move count from a source node.
//   - Returns a Result containing, per node id:
//   - Dist: moves from the source (-1 if not reached)
//   - Parent: predecessor in the BFS tree (-1 for the source)
//   - Order: visit sequence
//   - Honors MaxDepth (d>0) and a MaxSteps expansion budget; a search that
//     runs out of budget reports Complete == false.
//   - Follows arcs as stored, so directed board graphs are respected.
//
// Determinism
//
//	boardgraph enumerates neighbours in a fixed offset order and BFS
//	enqueues them in that order, so parents and paths are reproducible:
//	the same query on the same graph always yields the same path.
//
// Complexity (V = nodes, E = arcs)
//
//   - Time:   O(V + E)
//   - Memory: O(V), flat int32 slices indexed by node id; no maps.
//
// Usage
//
//	res, err := bfs.BFS(g, src, bfs.WithMaxSteps(10_000))
//	if err != nil {
//	    // ErrGraphNil, ErrSourceNotFound, ErrWeightedGraph, ErrOptionViolation,
//	    // ctx.Err(), or a wrapped OnVisit error
//	}
//	path, err := res.PathTo(dst) // ErrNotReached if dst was not discovered
//
// Options
//
//   - DefaultOptions(): background Context, no depth limit, no budget.
//   - WithContext(ctx):  cancellation.
//   - WithMaxDepth(d):   do not discover nodes deeper than d.
//   - WithMaxSteps(n):   expand at most n nodes.
//   - WithOnVisit(fn):   hook during visit; returning an error aborts.
package bfs
