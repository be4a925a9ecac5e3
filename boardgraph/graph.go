package boardgraph

import (
	"sync"

	"github.com/katalvlaran/boardpath/board"
)

// Graph is the traversal graph of one robot over one snapshot.
//
// Nodes are the passable cells, numbered 0..NodeCount()-1 in row‑major
// order of their points. Adjacency is stored in compressed sparse rows:
// the arcs leaving node u are targets[offsets[u]:offsets[u+1]], with the
// matching weights when the graph is weighted.
//
// A Graph is immutable and safe for concurrent reads. It describes the
// snapshot it was built from and nothing later.
type Graph struct {
	robot    board.Robot
	size     board.MapSize
	conn     Connectivity
	directed bool
	weighted bool

	nodeOf  []int32       // cell index → node id, -1 if impassable
	points  []board.Point // node id → point
	offsets []int32
	targets []int32
	weights []int64 // nil unless weighted

	compOnce sync.Once
	comp     []int32
	nComp    int
}

// Robot returns the robot the graph was built for, as seen in the snapshot.
func (g *Graph) Robot() board.Robot { return g.robot }

// Size returns the map size.
func (g *Graph) Size() board.MapSize { return g.size }

// Connectivity returns the move model.
func (g *Graph) Connectivity() Connectivity { return g.conn }

// Directed reports whether a move rule was applied, so arcs may be one-way.
func (g *Graph) Directed() bool { return g.directed }

// Weighted reports whether arcs carry costs other than 1.
func (g *Graph) Weighted() bool { return g.weighted }

// NodeCount returns the number of passable cells.
func (g *Graph) NodeCount() int { return len(g.points) }

// ArcCount returns the number of directed arcs. For a symmetric graph
// every undirected edge counts twice.
func (g *Graph) ArcCount() int { return len(g.targets) }

// EdgeCount returns the number of undirected edges of a symmetric graph,
// or the number of arcs of a directed one.
func (g *Graph) EdgeCount() int {
	if g.directed {
		return len(g.targets)
	}
	return len(g.targets) / 2
}

// Has reports whether p is a node.
func (g *Graph) Has(p board.Point) bool {
	_, ok := g.Node(p)
	return ok
}

// Node returns the node id of p.
func (g *Graph) Node(p board.Point) (int, bool) {
	if !p.In(g.size) {
		return 0, false
	}
	id := g.nodeOf[g.size.Index(p)]
	if id < 0 {
		return 0, false
	}
	return int(id), true
}

// Point returns the point of node id. id must be in [0, NodeCount()).
func (g *Graph) Point(id int) board.Point { return g.points[id] }

// Points returns every node point in id order. The slice is shared; do not modify.
func (g *Graph) Points() []board.Point { return g.points }

// Neighbors returns the node ids reachable from id in one move.
// The slice aliases internal storage; do not modify.
func (g *Graph) Neighbors(id int) []int32 {
	return g.targets[g.offsets[id]:g.offsets[id+1]]
}

// Arcs returns the targets of id and their costs. For unit-cost graphs the
// weights slice is nil and every cost is 1.
func (g *Graph) Arcs(id int) (targets []int32, weights []int64) {
	lo, hi := g.offsets[id], g.offsets[id+1]
	if g.weights == nil {
		return g.targets[lo:hi], nil
	}
	return g.targets[lo:hi], g.weights[lo:hi]
}

// HasEdge reports whether a single move leads from a to b.
func (g *Graph) HasEdge(a, b board.Point) bool {
	u, ok := g.Node(a)
	if !ok {
		return false
	}
	v, ok := g.Node(b)
	if !ok {
		return false
	}
	for _, t := range g.Neighbors(u) {
		if int(t) == v {
			return true
		}
	}
	return false
}

// Cost returns the cost of moving from a to b, or false if no such move exists.
func (g *Graph) Cost(a, b board.Point) (int64, bool) {
	u, ok := g.Node(a)
	if !ok {
		return 0, false
	}
	v, ok := g.Node(b)
	if !ok {
		return 0, false
	}
	ts, ws := g.Arcs(u)
	for i, t := range ts {
		if int(t) != v {
			continue
		}
		if ws == nil {
			return 1, true
		}
		return ws[i], true
	}
	return 0, false
}
