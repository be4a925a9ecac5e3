// Package dijkstra computes single-source shortest paths on weighted board
// graphs built by boardgraph with WithCost.
//
// Overview:
//
//   - Dijkstra settles nodes in non-decreasing cost order from a source node
//     using a binary min-heap (container/heap).
//   - Unit-cost graphs are accepted and treated as weight 1 per arc, though
//     bfs answers them with less work.
//   - Board graphs reject non-positive costs at build time, so no
//     negative-weight pre-scan is performed here.
//
// Implementation notes:
//
//   - “Lazy” decrease-key: improved distances push a duplicate heap entry and
//     stale entries are skipped on pop.
//   - Heap ties are broken by node id and a parent is replaced only on strict
//     improvement, so the same query always yields the same path.
//   - Exploration stops once the heap minimum exceeds MaxDistance.
//   - MaxSteps bounds the number of settled nodes; a search cut short by it
//     reports Result.Complete == false.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E), the heap may hold one entry per relaxation.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:        nil graph.
//   - ErrVertexNotFound:  source id out of range.
//   - ErrBadMaxDistance:  WithMaxDistance given a negative value.
//   - ErrOptionViolation: WithMaxSteps given a negative value.
//   - ErrNotReached:      Result.PathTo on a node that was not settled.
//
// Context cancellation aborts the search and returns ctx.Err().
//
// Thread safety:
//
//   - Graphs are immutable after Build, so concurrent Dijkstra calls on the
//     same graph are safe. A Result must not be mutated while shared.
package dijkstra
