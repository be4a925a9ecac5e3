// Package boardpath turns grid puzzle boards into per-robot traversal graphs
// and answers shortest-path queries on them, once per simulation tick.
//
// What is in the box
//
//	board/      points, cells, robots, the read-only Snapshot and a Grid implementation
//	boardtext/  compact ASCII boards for fixtures and the CLI
//	boardgraph/ snapshot + robot → immutable CSR graph, pluggable passability
//	bfs/        unit-cost single-source search
//	dijkstra/   weighted single-source search
//	pathquery/  shortest path and distance queries, memoized per source
//	analyzer/   initial board → (robot, state) → planner, with memo and fan-out
//	cmd/boardpath route, components and render from the command line
//
// Quick ASCII example:
//
//	. . .
//	. X .
//	@ . .
//
// is a 3×3 board with one obstacle; the robot on '@' reaches (2,2) in 4 moves.
//
// Graphs are never mutated in place. When the board changes, build again:
// a build is linear in the number of cells.
package boardpath
