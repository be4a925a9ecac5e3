package pathquery

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/boardpath/bfs"
	"github.com/katalvlaran/boardpath/board"
	"github.com/katalvlaran/boardpath/boardgraph"
	"github.com/katalvlaran/boardpath/dijkstra"
)

// Service answers shortest-path queries against one built graph.
// Single-source trees are memoized per source, so any number of
// destinations from the same source cost one search.
// A Service is safe for concurrent use.
type Service struct {
	g    *boardgraph.Graph
	opts Options
	alg  Algorithm

	mu    sync.Mutex
	trees map[int32]*treeEntry
}

type treeEntry struct {
	once sync.Once
	tree *Tree
	err  error
}

// New wraps g. The algorithm is resolved once: AlgorithmAuto becomes BFS
// for unit-cost graphs and Dijkstra for weighted ones.
func New(g *boardgraph.Graph, opts ...Option) (*Service, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	alg := o.Algorithm
	if alg == AlgorithmAuto {
		alg = AlgorithmBFS
		if g.Weighted() {
			alg = AlgorithmDijkstra
		}
	}
	if alg == AlgorithmBFS && g.Weighted() {
		return nil, fmt.Errorf("%w: %w", ErrOptionViolation, bfs.ErrWeightedGraph)
	}

	return &Service{
		g:     g,
		opts:  o,
		alg:   alg,
		trees: make(map[int32]*treeEntry),
	}, nil
}

// Graph returns the graph the service queries.
func (s *Service) Graph() *boardgraph.Graph { return s.g }

// Algorithm returns the resolved search algorithm.
func (s *Service) Algorithm() Algorithm { return s.alg }

// ShortestPath returns a minimal-cost path from src to dst.
// ErrNodeNotInGraph is returned when either endpoint is not a node.
// Endpoints in different regions of an undirected graph are answered
// Unreachable without running a search, unless MaxSteps is set.
func (s *Service) ShortestPath(src, dst board.Point) (Result, error) {
	srcID, err := s.node(src)
	if err != nil {
		return Result{}, err
	}
	if _, err = s.node(dst); err != nil {
		return Result{}, err
	}
	if s.separated(src, dst) {
		queryTotal.WithLabelValues(Unreachable.String()).Inc()
		return Result{Status: Unreachable, Cost: -1}, nil
	}

	t, err := s.tree(srcID)
	if err != nil {
		return Result{}, err
	}
	res, err := t.PathTo(dst)
	if err == nil {
		queryTotal.WithLabelValues(res.Status.String()).Inc()
	}
	return res, err
}

// Distance returns the cost of a minimal path from src to dst without
// materializing it. The cost is -1 unless the status is Found.
func (s *Service) Distance(src, dst board.Point) (int64, Status, error) {
	srcID, err := s.node(src)
	if err != nil {
		return -1, Unreachable, err
	}
	if _, err = s.node(dst); err != nil {
		return -1, Unreachable, err
	}
	if s.separated(src, dst) {
		queryTotal.WithLabelValues(Unreachable.String()).Inc()
		return -1, Unreachable, nil
	}
	t, err := s.tree(srcID)
	if err != nil {
		return -1, Unreachable, err
	}
	d, st, err := t.DistanceTo(dst)
	if err == nil {
		queryTotal.WithLabelValues(st.String()).Inc()
	}
	return d, st, err
}

// separated reports whether src and dst lie in different components.
// Labelling components visits the whole graph, so it is skipped on
// directed graphs and whenever MaxSteps bounds the search.
func (s *Service) separated(src, dst board.Point) bool {
	if s.g.Directed() || s.opts.MaxSteps > 0 {
		return false
	}
	return !s.g.Connected(src, dst)
}

// From returns the single-source tree rooted at src, computing it on
// first use.
func (s *Service) From(src board.Point) (*Tree, error) {
	id, err := s.node(src)
	if err != nil {
		return nil, err
	}
	return s.tree(id)
}

func (s *Service) node(p board.Point) (int32, error) {
	id, ok := s.g.Node(p)
	if !ok {
		queryErrors.Inc()
		return -1, fmt.Errorf("%w: %v", ErrNodeNotInGraph, p)
	}
	return int32(id), nil
}

// tree returns the memoized tree for src. A failed search is forgotten so
// that a later call retries it.
func (s *Service) tree(src int32) (*Tree, error) {
	s.mu.Lock()
	e, ok := s.trees[src]
	if !ok {
		e = &treeEntry{}
		s.trees[src] = e
	}
	s.mu.Unlock()
	if ok {
		treeReuse.Inc()
	}

	e.once.Do(func() {
		e.tree, e.err = s.search(src)
	})
	if e.err != nil {
		s.mu.Lock()
		if s.trees[src] == e {
			delete(s.trees, src)
		}
		s.mu.Unlock()
		return nil, e.err
	}
	return e.tree, nil
}

// search runs the resolved algorithm from src and normalizes its result.
func (s *Service) search(src int32) (*Tree, error) {
	start := time.Now()
	n := s.g.NodeCount()
	t := &Tree{g: s.g, source: src, dist: make([]int64, n)}

	switch s.alg {
	case AlgorithmBFS:
		res, err := bfs.BFS(s.g, int(src), bfs.WithContext(s.opts.Ctx), bfs.WithMaxSteps(s.opts.MaxSteps))
		if err != nil {
			return nil, err
		}
		for i, d := range res.Dist {
			t.dist[i] = int64(d)
		}
		t.parent, t.complete = res.Parent, res.Complete
	default:
		res, err := dijkstra.Dijkstra(s.g, int(src), dijkstra.WithContext(s.opts.Ctx), dijkstra.WithMaxSteps(s.opts.MaxSteps))
		if err != nil {
			return nil, err
		}
		for i := range res.Dist {
			t.dist[i] = -1
			if res.Reached(i) {
				t.dist[i] = res.Dist[i]
			}
		}
		t.parent, t.complete = res.Parent, res.Complete
	}

	elapsed := time.Since(start)
	searchDuration.WithLabelValues(s.alg.String()).Observe(elapsed.Seconds())
	s.opts.Logger.Debug("search",
		slog.String("robot", s.g.Robot().ID.String()),
		slog.String("src", s.g.Point(int(src)).String()),
		slog.String("algorithm", s.alg.String()),
		slog.Int("nodes", n),
		slog.Bool("complete", t.complete),
		slog.Duration("elapsed", elapsed))

	return t, nil
}

// ShortestPath builds a one-off Service over g and answers a single query.
func ShortestPath(g *boardgraph.Graph, src, dst board.Point, opts ...Option) (Result, error) {
	s, err := New(g, opts...)
	if err != nil {
		return Result{}, err
	}
	return s.ShortestPath(src, dst)
}
