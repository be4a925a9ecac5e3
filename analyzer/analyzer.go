package analyzer

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/boardpath/board"
	"github.com/katalvlaran/boardpath/boardgraph"
	"github.com/katalvlaran/boardpath/pathquery"
)

var tracer = otel.Tracer("boardpath")

// GraphFunc derives the graph of one robot over one snapshot.
type GraphFunc func(ctx context.Context, robot board.RobotID, state board.Snapshot) (*boardgraph.Graph, error)

// PlannerFunc derives a path query service for one robot over one snapshot.
type PlannerFunc func(ctx context.Context, robot board.RobotID, state board.Snapshot) (*pathquery.Service, error)

// GraphAnalyzer turns an initial board into a per-tick graph factory.
type GraphAnalyzer struct {
	opts []Option
}

// NewGraphAnalyzer returns a GraphAnalyzer; options are validated by Analyze.
func NewGraphAnalyzer(opts ...Option) *GraphAnalyzer {
	return &GraphAnalyzer{opts: opts}
}

// Analyze records the reference topology of initial and returns the
// factory that builds graphs for later snapshots of the same board.
// With WithMemo, graphs are reused for snapshots whose fingerprint and
// robot match a stored entry; any mutation changes the fingerprint.
func (a *GraphAnalyzer) Analyze(initial board.Snapshot) (GraphFunc, error) {
	o, err := resolve(a.opts)
	if err != nil {
		return nil, err
	}
	b, err := boardgraph.NewBuilder(initial, o.Graph...)
	if err != nil {
		return nil, err
	}
	var m *memo
	if o.MemoCapacity > 0 {
		m = newMemo(o.MemoCapacity)
	}
	return graphFunc(b, m, o.Logger), nil
}

func graphFunc(b *boardgraph.Builder, m *memo, log *slog.Logger) GraphFunc {
	return func(ctx context.Context, robot board.RobotID, state board.Snapshot) (*boardgraph.Graph, error) {
		_, span := tracer.Start(ctx, "analyzer.GraphFunc",
			trace.WithAttributes(attribute.Int("robot", int(robot))))
		defer span.End()

		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "canceled")
			return nil, err
		}
		if state == nil {
			span.SetStatus(codes.Error, "nil state")
			return nil, boardgraph.ErrNilSnapshot
		}

		build := func() (*boardgraph.Graph, error) {
			start := time.Now()
			g, err := b.Build(robot, state)
			graphBuildDuration.Observe(time.Since(start).Seconds())
			return g, err
		}

		var (
			g   *boardgraph.Graph
			hit bool
			err error
		)
		if m != nil {
			key := memoKey{robot: robot, hash: board.Fingerprint(state)}
			span.SetAttributes(attribute.String("fingerprint", key.String()))
			g, hit, err = m.getOrBuild(key, build)
		} else {
			g, err = build()
		}
		if err != nil {
			graphBuildTotal.WithLabelValues("error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "build failed")
			log.Warn("graph build failed",
				slog.String("robot", robot.String()),
				slog.String("point", robotPoint(state, robot)),
				slog.String("error", err.Error()))
			return nil, err
		}

		result := "built"
		if hit {
			result = "memo_hit"
		}
		graphBuildTotal.WithLabelValues(result).Inc()
		span.SetAttributes(
			attribute.Bool("memo_hit", hit),
			attribute.Int("nodes", g.NodeCount()),
			attribute.Int("edges", g.EdgeCount()),
		)
		span.SetStatus(codes.Ok, result)
		log.Debug("graph ready",
			slog.String("robot", robot.String()),
			slog.Bool("memo_hit", hit),
			slog.Int("nodes", g.NodeCount()),
			slog.Int("edges", g.EdgeCount()))

		return g, nil
	}
}

func robotPoint(state board.Snapshot, id board.RobotID) string {
	r, ok := state.Robot(id)
	if !ok {
		return "unknown"
	}
	return r.Position.String()
}

// ShortestPathAnalyzer turns an initial board into a per-tick planner:
// each call builds (or recalls) the robot's graph and wraps it in a fresh
// pathquery.Service bound to the caller's context.
type ShortestPathAnalyzer struct {
	opts []Option
}

// NewShortestPathAnalyzer returns a ShortestPathAnalyzer.
func NewShortestPathAnalyzer(opts ...Option) *ShortestPathAnalyzer {
	return &ShortestPathAnalyzer{opts: opts}
}

// Analyze returns the planner for snapshots of initial.
func (a *ShortestPathAnalyzer) Analyze(initial board.Snapshot) (PlannerFunc, error) {
	o, err := resolve(a.opts)
	if err != nil {
		return nil, err
	}
	graphs, err := NewGraphAnalyzer(a.opts...).Analyze(initial)
	if err != nil {
		return nil, err
	}
	log := o.Logger

	return func(ctx context.Context, robot board.RobotID, state board.Snapshot) (*pathquery.Service, error) {
		ctx, span := tracer.Start(ctx, "analyzer.PlannerFunc",
			trace.WithAttributes(attribute.Int("robot", int(robot))))
		defer span.End()

		g, err := graphs(ctx, robot, state)
		if err != nil {
			planTotal.WithLabelValues("error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "graph failed")
			return nil, err
		}
		qopts := append([]pathquery.Option{pathquery.WithLogger(log)}, o.Query...)
		qopts = append(qopts, pathquery.WithContext(ctx))
		svc, err := pathquery.New(g, qopts...)
		if err != nil {
			planTotal.WithLabelValues("error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "service failed")
			log.Warn("planner rejected options",
				slog.String("robot", robot.String()),
				slog.String("error", err.Error()))
			return nil, err
		}
		planTotal.WithLabelValues("ok").Inc()
		span.SetAttributes(attribute.String("algorithm", svc.Algorithm().String()))
		span.SetStatus(codes.Ok, "planned")
		return svc, nil
	}, nil
}
