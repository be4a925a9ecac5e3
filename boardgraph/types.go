// Package boardgraph defines core types, options, and sentinel errors
// for deriving traversal graphs from board snapshots.
package boardgraph

import (
	"errors"

	"github.com/katalvlaran/boardpath/board"
)

// Sentinel errors for boardgraph operations.
var (
	// ErrInvalidBoard indicates the snapshot's declared size disagrees with
	// its cell data or with the reference board, or the robot's position is
	// outside the map or not passable for it.
	ErrInvalidBoard = errors.New("boardgraph: invalid board")
	// ErrUnknownRobot indicates the snapshot has no robot with the requested ID.
	// It is always reported wrapped together with ErrInvalidBoard.
	ErrUnknownRobot = errors.New("boardgraph: unknown robot")
	// ErrNilSnapshot indicates a nil snapshot was supplied.
	ErrNilSnapshot = errors.New("boardgraph: snapshot is nil")
	// ErrBadCost indicates a cost function returned a non-positive move cost
	// or one large enough for a path total to overflow int64.
	ErrBadCost = errors.New("boardgraph: move cost out of range")
)

// Connectivity selects the move model: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional moves: up, right, down, left.
	Conn4 Connectivity = iota
	// Conn8 adds the four diagonal moves.
	Conn8
)

// offsets returns the move deltas for c in a fixed order. The order fixes
// neighbour enumeration and therefore tie-breaking in every search.
func (c Connectivity) offsets() [][2]int {
	if c == Conn8 {
		return [][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	}
	return [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
}

// Passability decides whether robot r may stand on cell c.
type Passability func(c board.Cell, r board.Robot) bool

// ObstacleFree is the default rule: every non-obstacle cell is passable,
// whatever robot asks.
func ObstacleFree(c board.Cell, _ board.Robot) bool {
	return !c.Obstacle
}

// Drilling lets a robot holding board.AbilityDrill pass through obstacles.
// Other robots fall back to ObstacleFree.
func Drilling(c board.Cell, r board.Robot) bool {
	return !c.Obstacle || r.Has(board.AbilityDrill)
}

// AvoidWrapped treats wrapped cells as impassable, except the cell the robot
// stands on. Useful to plan through unpainted territory only.
func AvoidWrapped(c board.Cell, r board.Robot) bool {
	return !c.Obstacle && (!c.Wrapped || c.Point == r.Position)
}

// All accepts a cell only if every predicate accepts it.
// With no predicates it accepts everything.
func All(preds ...Passability) Passability {
	return func(c board.Cell, r board.Robot) bool {
		for _, p := range preds {
			if !p(c, r) {
				return false
			}
		}
		return true
	}
}

// MoveRule reports whether robot r may step from one passable cell to an
// adjacent passable cell. Installing one makes the graph directed.
type MoveRule func(from, to board.Cell, r board.Robot) bool

// CostFunc returns the cost for robot r of entering cell to. It must be > 0.
// Installing one makes the graph weighted.
type CostFunc func(to board.Cell, r board.Robot) int64

// Options holds the tunable parameters of a Builder.
type Options struct {
	// Passable decides node membership. Default ObstacleFree.
	Passable Passability
	// Conn is the move model. Default Conn4.
	Conn Connectivity
	// Move optionally filters single moves; nil keeps edges symmetric.
	Move MoveRule
	// Cost optionally weights moves; nil means unit cost.
	Cost CostFunc
}

// Option configures a Builder via functional arguments.
type Option func(*Options)

// DefaultOptions returns Options with:
//   - Passable: ObstacleFree
//   - Conn:     Conn4
//   - Move:     nil (symmetric edges)
//   - Cost:     nil (unit cost)
func DefaultOptions() Options {
	return Options{
		Passable: ObstacleFree,
		Conn:     Conn4,
	}
}

// WithPassability replaces the passability predicate. nil is ignored.
func WithPassability(p Passability) Option {
	return func(o *Options) {
		if p != nil {
			o.Passable = p
		}
	}
}

// WithConnectivity selects Conn4 or Conn8.
func WithConnectivity(c Connectivity) Option {
	return func(o *Options) {
		o.Conn = c
	}
}

// WithMoveRule installs a directed move filter.
func WithMoveRule(m MoveRule) Option {
	return func(o *Options) {
		o.Move = m
	}
}

// WithCost installs a per-move cost function.
func WithCost(fn CostFunc) Option {
	return func(o *Options) {
		o.Cost = fn
	}
}
