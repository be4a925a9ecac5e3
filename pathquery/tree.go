package pathquery

import (
	"fmt"

	"github.com/katalvlaran/boardpath/board"
	"github.com/katalvlaran/boardpath/boardgraph"
)

// Tree is a computed single-source search. It is immutable and may be
// shared between goroutines.
type Tree struct {
	g        *boardgraph.Graph
	source   int32
	dist     []int64 // -1 when not settled
	parent   []int32
	complete bool
}

// Source returns the root of the tree.
func (t *Tree) Source() board.Point { return t.g.Point(int(t.source)) }

// Complete reports whether the search ran to exhaustion. An incomplete
// tree reports BudgetExceeded for destinations it did not settle.
func (t *Tree) Complete() bool { return t.complete }

// Reached reports whether dst is a node with a final distance.
func (t *Tree) Reached(dst board.Point) bool {
	id, ok := t.g.Node(dst)
	return ok && t.dist[id] >= 0
}

// DistanceTo returns the cost from the source to dst.
func (t *Tree) DistanceTo(dst board.Point) (int64, Status, error) {
	id, ok := t.g.Node(dst)
	if !ok {
		queryErrors.Inc()
		return -1, Unreachable, fmt.Errorf("%w: %v", ErrNodeNotInGraph, dst)
	}
	if d := t.dist[id]; d >= 0 {
		return d, Found, nil
	}
	return -1, t.missing(), nil
}

// PathTo returns the path from the source to dst.
func (t *Tree) PathTo(dst board.Point) (Result, error) {
	id, ok := t.g.Node(dst)
	if !ok {
		queryErrors.Inc()
		return Result{}, fmt.Errorf("%w: %v", ErrNodeNotInGraph, dst)
	}
	if t.dist[id] < 0 {
		return Result{Status: t.missing(), Cost: -1}, nil
	}

	n := 0
	for cur := int32(id); cur >= 0; cur = t.parent[cur] {
		n++
	}
	path := make([]board.Point, n)
	for i, cur := n-1, int32(id); i >= 0; i-- {
		path[i] = t.g.Point(int(cur))
		cur = t.parent[cur]
	}
	return Result{Status: Found, Path: path, Cost: t.dist[id]}, nil
}

func (t *Tree) missing() Status {
	if t.complete {
		return Unreachable
	}
	return BudgetExceeded
}
