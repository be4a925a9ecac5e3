package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/boardpath/boardgraph"
)

// Dijkstra computes shortest distances from node source to every node of g.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrBadMaxDistance, ErrOptionViolation).
//  2. g must be non-nil (ErrNilGraph).
//  3. source must be a node id of g (ErrVertexNotFound).
//
// Cancellation of the context aborts the search with ctx.Err().
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *boardgraph.Graph, source int, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.NodeCount()
	if source < 0 || source >= n {
		return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, source)
	}

	r := &runner{
		g:    g,
		opts: cfg,
		done: cfg.Ctx.Done(),
		res: &Result{
			Source:  source,
			Dist:    make([]int64, n),
			Parent:  make([]int32, n),
			settled: make([]bool, n),
		},
		pq: make(nodePQ, 0, n),
	}
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.res, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g    *boardgraph.Graph // read-only within Dijkstra
	opts Options
	done <-chan struct{}
	res  *Result
	pq   nodePQ
}

// init sets every distance to +∞, the source to 0, and seeds the heap.
func (r *runner) init() {
	for i := range r.res.Dist {
		r.res.Dist[i] = math.MaxInt64
		r.res.Parent[i] = -1
	}
	r.res.Dist[r.res.Source] = 0
	heap.Push(&r.pq, nodeItem{id: int32(r.res.Source), dist: 0})
}

// process repeatedly settles the closest node and relaxes its arcs.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable nodes settled): Complete.
//   - The minimum distance in the heap exceeds MaxDistance: Complete.
//   - MaxSteps nodes have been settled: not Complete, and tentative
//     distances of unsettled nodes are cleared.
func (r *runner) process() error {
	steps := 0
	for r.pq.Len() > 0 {
		if r.done != nil {
			select {
			case <-r.done:
				return r.opts.Ctx.Err()
			default:
			}
		}

		item := heap.Pop(&r.pq).(nodeItem)
		u := int(item.id)
		if r.res.settled[u] {
			continue
		}
		if item.dist > r.opts.MaxDistance {
			break
		}
		if r.opts.MaxSteps > 0 && steps >= r.opts.MaxSteps {
			r.dropTentative()
			return nil
		}
		r.res.settled[u] = true
		steps++
		r.relax(u)
	}
	r.res.Complete = true

	return nil
}

// dropTentative resets every unsettled node to Unreached.
func (r *runner) dropTentative() {
	for i, done := range r.res.settled {
		if !done {
			r.res.Dist[i] = Unreached
			r.res.Parent[i] = -1
		}
	}
}

// relax improves the distance of every neighbour reachable from u.
// Unit-cost graphs contribute weight 1 per arc.
func (r *runner) relax(u int) {
	targets, weights := r.g.Arcs(u)
	du := r.res.Dist[u]
	for i, v := range targets {
		if r.res.settled[v] {
			continue
		}
		w := int64(1)
		if weights != nil {
			w = weights[i]
		}
		nd := du + w
		if nd > r.opts.MaxDistance || nd >= r.res.Dist[v] {
			continue
		}
		r.res.Dist[v] = nd
		r.res.Parent[v] = int32(u)
		heap.Push(&r.pq, nodeItem{id: v, dist: nd})
	}
}

// nodeItem represents a node and its tentative distance from the source.
type nodeItem struct {
	id   int32
	dist int64
}

// nodePQ is a min-heap of nodeItem ordered by dist, then id.
type nodePQ []nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by distance and breaks ties by node id.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a nodeItem.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(nodeItem)) }

// Pop removes and returns the last element.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
