// Package analyzer composes boardgraph and pathquery into per-tick
// factories, the shape a simulation loop consumes.
//
// An analyzer is given the initial board once:
//
//	planner, err := analyzer.NewShortestPathAnalyzer(
//	    analyzer.WithGraphOptions(boardgraph.WithPassability(boardgraph.Drilling)),
//	    analyzer.WithMemo(64),
//	).Analyze(initial)
//
// and then, on every tick, called with a robot and the current snapshot:
//
//	svc, err := planner(ctx, robot, state)
//	res, err := svc.ShortestPath(from, to)
//
// GraphAnalyzer stops one step earlier and returns the built graph.
//
// Memo
//
//	WithMemo keeps a bounded LRU of graphs keyed by robot and
//	board.Fingerprint(state). Any change to the snapshot that the builder
//	can read changes the fingerprint, so a stored graph is never served
//	for a different board. Concurrent requests for one key share a single
//	build (singleflight). Failed builds are not stored.
//
// Fan-out
//
//	PlanAll plans several robots concurrently over one snapshot. Every
//	robot gets its own graph; the snapshot is only read.
//
// Observability
//
//	Build failures are logged at warn level with the robot and its
//	position. Graph builds and planner calls are counted by result in
//	Prometheus, build latency is a histogram, and each call opens an
//	OpenTelemetry span on the "boardpath" tracer (no-op unless the host
//	installs a provider).
package analyzer
