package pathquery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/boardpath/board"
)

// Sentinel errors for path queries.
var (
	// ErrNilGraph is returned by New when no graph is supplied.
	ErrNilGraph = errors.New("pathquery: graph is nil")

	// ErrNodeNotInGraph is returned when a source or destination is not a
	// node of the graph: out of bounds, an obstacle, or excluded by the
	// robot's passability rule. It is never reported as Unreachable.
	ErrNodeNotInGraph = errors.New("pathquery: node not in graph")

	// ErrOptionViolation is returned by New for invalid options.
	ErrOptionViolation = errors.New("pathquery: invalid option supplied")
)

// Status classifies the outcome of a query whose endpoints are valid nodes.
type Status uint8

const (
	// Found means a minimal-cost path was computed.
	Found Status = iota
	// Unreachable means the destination lies in another region.
	Unreachable
	// BudgetExceeded means the step budget ran out before the destination
	// was settled; a path may or may not exist.
	BudgetExceeded
)

// String returns the status name used in logs and metric labels.
func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Unreachable:
		return "unreachable"
	case BudgetExceeded:
		return "budget_exceeded"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Result is the answer to one path query.
// Path runs from source to destination inclusive and is nil unless Status
// is Found. Cost is the move count on unit-cost graphs, the weight sum
// otherwise, and -1 when no path was found.
type Result struct {
	Status Status
	Path   []board.Point
	Cost   int64
}

// Reachable reports whether r carries a path.
func (r Result) Reachable() bool { return r.Status == Found }

// Algorithm selects the single-source search used by a Service.
type Algorithm uint8

const (
	// AlgorithmAuto runs BFS on unit-cost graphs and Dijkstra otherwise.
	AlgorithmAuto Algorithm = iota
	// AlgorithmBFS forces BFS; weighted graphs are rejected.
	AlgorithmBFS
	// AlgorithmDijkstra forces Dijkstra, also on unit-cost graphs.
	AlgorithmDijkstra
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmAuto:
		return "auto"
	case AlgorithmBFS:
		return "bfs"
	case AlgorithmDijkstra:
		return "dijkstra"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// Options configures a Service.
type Options struct {
	// Ctx cancels running searches.
	Ctx context.Context

	// Algorithm picks the search; AlgorithmAuto by default.
	Algorithm Algorithm

	// MaxSteps, if > 0, caps the nodes expanded by one search.
	MaxSteps int

	// Logger receives debug records for searches; discarded by default.
	Logger *slog.Logger

	err error
}

// Option configures a Service via functional arguments.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: background context,
// automatic algorithm choice, no step budget, discarded logs.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Algorithm: AlgorithmAuto,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithContext sets the context used by searches. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithAlgorithm selects the search algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) {
		if a > AlgorithmDijkstra {
			o.err = fmt.Errorf("%w: unknown algorithm %d", ErrOptionViolation, uint8(a))
			return
		}
		o.Algorithm = a
	}
}

// WithMaxSteps sets a per-search expansion budget. 0 disables it,
// negative values are rejected by New.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithLogger sets the structured logger. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
