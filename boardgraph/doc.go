// Package boardgraph turns a board snapshot into the traversal graph of
// one robot, the input of every path query.
//
// What:
//
//   - Builder records the reference topology of a board once (size,
//     in-bounds neighbour table, starting obstacles).
//   - Builder.Build(robot, snapshot) derives a fresh, immutable Graph:
//     nodes are the cells the robot may stand on, arcs are legal single moves.
//   - Passability is a pluggable predicate (cell, robot) → bool. The default,
//     ObstacleFree, ignores the robot; Drilling and AvoidWrapped show
//     robot- and state-specific rules.
//   - Components labels connected regions so callers can reject
//     disconnected queries in O(1).
//
// Why rebuild:
//
//	The board mutates between ticks (walls drilled, cells wrapped,
//	teleporters planted). A graph is derived per (robot, tick) and
//	discarded, so it can never describe a newer state than its own.
//
// Determinism:
//
//	Nodes are numbered in row‑major order and neighbours are enumerated in a
//	fixed offset order (up, right, down, left for Conn4). Two builds of the
//	same (robot, snapshot) produce identical graphs.
//
// Complexity:
//
//   - NewBuilder: O(W×H×d), Memory: O(W×H×d)   (d = 4 or 8).
//   - Build:      O(W×H×d), Memory: O(W×H + E).
//   - Components: O(V + E), Memory: O(V), cached per Graph.
//
// Options:
//
//   - WithPassability(p): node membership predicate (default ObstacleFree).
//   - WithConnectivity(c): Conn4 (default) or Conn8.
//   - WithMoveRule(m): filters individual moves; the graph becomes directed.
//   - WithCost(fn): cost of entering a cell; the graph becomes weighted.
//
// Errors:
//
//   - ErrNilSnapshot: nil reference board or snapshot.
//   - ErrInvalidBoard: size mismatch, missing or mislabelled cells, unknown
//     robot (wraps ErrUnknownRobot), robot out of bounds or on an impassable cell.
//   - ErrBadCost: the cost function returned a value ≤ 0.
package boardgraph
