package analyzer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/boardpath/boardgraph"
	"github.com/katalvlaran/boardpath/pathquery"
)

// ErrOptionViolation is returned by Analyze for invalid options.
var ErrOptionViolation = errors.New("analyzer: invalid option supplied")

// Options configures GraphAnalyzer and ShortestPathAnalyzer.
type Options struct {
	// Graph is forwarded to boardgraph.NewBuilder.
	Graph []boardgraph.Option

	// Query is forwarded to pathquery.New for every planned Service.
	Query []pathquery.Option

	// MemoCapacity, if > 0, keeps up to that many graphs keyed by robot
	// and snapshot fingerprint. 0 rebuilds on every call.
	MemoCapacity int

	// Logger receives build failures and debug records.
	Logger *slog.Logger

	err error
}

// Option configures an analyzer via functional arguments.
type Option func(*Options)

// DefaultOptions returns: default boardgraph and pathquery options, no
// memo, discarded logs.
func DefaultOptions() Options {
	return Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithGraphOptions appends builder options.
func WithGraphOptions(opts ...boardgraph.Option) Option {
	return func(o *Options) {
		o.Graph = append(o.Graph, opts...)
	}
}

// WithQueryOptions appends path query options.
func WithQueryOptions(opts ...pathquery.Option) Option {
	return func(o *Options) {
		o.Query = append(o.Query, opts...)
	}
}

// WithMemo enables the graph memo with the given capacity.
// Negative capacities are rejected by Analyze.
func WithMemo(capacity int) Option {
	return func(o *Options) {
		if capacity < 0 {
			o.err = fmt.Errorf("%w: memo capacity cannot be negative (%d)", ErrOptionViolation, capacity)
			return
		}
		o.MemoCapacity = capacity
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

func resolve(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
