// Package bfs provides breadth-first search over a boardgraph.Graph,
// returning unit-cost shortest-path distances, parent links, and visit order.
package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/boardpath/boardgraph"
)

// ErrWeightedGraph is returned when BFS is run on a weighted graph.
var ErrWeightedGraph = errors.New("bfs: weighted graphs not supported")

// walker encapsulates mutable BFS state.
type walker struct {
	graph *boardgraph.Graph
	opts  Options
	done  <-chan struct{}
	queue []int32
	res   *Result
}

// BFS runs breadth-first search on g starting from node source,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrSourceNotFound for invalid input,
// ErrWeightedGraph for weighted graphs, ErrOptionViolation for bad options,
// the context error on cancellation, or any OnVisit hook error.
//
// Complexity: O(V + E) time, O(V) memory.
func BFS(g *boardgraph.Graph, source int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := g.NodeCount()
	if source < 0 || source >= n {
		return nil, fmt.Errorf("%w: %d", ErrSourceNotFound, source)
	}
	if g.Weighted() {
		return nil, ErrWeightedGraph
	}

	w := &walker{
		graph: g,
		opts:  o,
		done:  o.Ctx.Done(),
		queue: make([]int32, 0, n),
		res: &Result{
			Source: source,
			Dist:   make([]int32, n),
			Parent: make([]int32, n),
			Order:  make([]int32, 0, n),
		},
	}
	for i := range w.res.Dist {
		w.res.Dist[i] = -1
		w.res.Parent[i] = -1
	}

	w.res.Dist[source] = 0
	w.queue = append(w.queue, int32(source))

	return w.res, w.loop()
}

// loop processes the queue until empty, budget, error, or cancellation.
func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		if w.done != nil {
			select {
			case <-w.done:
				return w.opts.Ctx.Err()
			default:
			}
		}
		if w.opts.MaxSteps > 0 && head >= w.opts.MaxSteps {
			return nil
		}

		u := w.queue[head]
		if err := w.visit(u); err != nil {
			return err
		}
		w.enqueueNeighbors(u)
	}
	w.res.Complete = true

	return nil
}

// visit records u in Order and calls OnVisit.
func (w *walker) visit(u int32) error {
	w.res.Order = append(w.res.Order, u)
	if w.opts.OnVisit == nil {
		return nil
	}
	if err := w.opts.OnVisit(int(u), int(w.res.Dist[u])); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", u, err)
	}
	return nil
}

// enqueueNeighbors discovers every unseen neighbour of u within MaxDepth.
func (w *walker) enqueueNeighbors(u int32) {
	next := w.res.Dist[u] + 1
	if w.opts.MaxDepth > 0 && int(next) > w.opts.MaxDepth {
		return
	}
	for _, v := range w.graph.Neighbors(int(u)) {
		if w.res.Dist[v] >= 0 {
			continue
		}
		w.res.Dist[v] = next
		w.res.Parent[v] = u
		w.queue = append(w.queue, v)
	}
}
