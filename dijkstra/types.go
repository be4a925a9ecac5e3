// Package dijkstra defines core types and configuration options
// for Dijkstra's shortest-path algorithm on weighted board graphs.
package dijkstra

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *boardgraph.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source node id is out of range.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value,
	// which is not meaningful for a distance threshold.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrOptionViolation indicates an invalid option other than MaxDistance.
	ErrOptionViolation = errors.New("dijkstra: invalid option supplied")

	// ErrNotReached is returned by PathTo for a node the search did not settle.
	ErrNotReached = errors.New("dijkstra: node not reached")
)

// Unreached is the distance of a node the search never settled.
const Unreached = math.MaxInt64

// Options configures the behavior of the Dijkstra algorithm.
//
// Ctx         – cancellation and deadlines.
// MaxDistance – nodes farther than this are not explored. Must be ≥ 0.
//
//	Default is math.MaxInt64 (no cap).
//
// MaxSteps    – if > 0, at most this many nodes are settled; a search that
//
//	stops on the budget reports Complete == false.
type Options struct {
	Ctx         context.Context
	MaxDistance int64
	MaxSteps    int

	err error
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// DefaultOptions returns an Options struct initialized with defaults:
//   - Ctx:         context.Background()
//   - MaxDistance: math.MaxInt64 (explore all reachable)
//   - MaxSteps:    0 (no budget)
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		MaxDistance: math.MaxInt64,
	}
}

// WithContext sets a custom context for cancellation. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Nodes whose shortest distance would exceed this value are not explored.
// Negative values surface ErrBadMaxDistance when Dijkstra runs.
func WithMaxDistance(max int64) Option {
	return func(o *Options) {
		if max < 0 {
			o.err = fmt.Errorf("%w: %d", ErrBadMaxDistance, max)
			return
		}
		o.MaxDistance = max
	}
}

// WithMaxSteps caps the number of settled nodes. 0 means no budget;
// negative values surface ErrOptionViolation.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// Result holds per-node outcomes, indexed by node id.
//   - Dist: minimum cost from Source, Unreached if never settled.
//   - Parent: predecessor on the chosen shortest path, -1 for Source and unreached nodes.
//   - Complete: false when MaxSteps stopped the search early.
type Result struct {
	Source   int
	Dist     []int64
	Parent   []int32
	Complete bool

	settled []bool
}

// Reached reports whether id was settled with a final distance.
func (r *Result) Reached(id int) bool {
	return id >= 0 && id < len(r.settled) && r.settled[id]
}

// PathTo reconstructs the node sequence from Source to dest, inclusive.
// Returns ErrNotReached if dest was not settled.
func (r *Result) PathTo(dest int) ([]int32, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %d", ErrNotReached, dest)
	}
	var rev []int32
	for cur := int32(dest); cur >= 0; cur = r.Parent[cur] {
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev, nil
}
