package pathquery_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boardpath/bfs"
	"github.com/katalvlaran/boardpath/board"
	"github.com/katalvlaran/boardpath/boardgraph"
	"github.com/katalvlaran/boardpath/boardtext"
	"github.com/katalvlaran/boardpath/pathquery"
)

func build(t testing.TB, text string, opts ...boardgraph.Option) *boardgraph.Graph {
	t.Helper()
	grid := boardtext.MustParse(text)
	b, err := boardgraph.NewBuilder(grid, opts...)
	require.NoError(t, err)
	g, err := b.Build(boardtext.StartRobot, grid)
	require.NoError(t, err)
	return g
}

func pt(x, y int) board.Point { return board.Point{X: x, Y: y} }

// requireValidPath checks endpoints and that every step is an edge.
func requireValidPath(t *testing.T, g *boardgraph.Graph, res pathquery.Result, src, dst board.Point) {
	t.Helper()
	require.Equal(t, pathquery.Found, res.Status)
	require.NotEmpty(t, res.Path)
	require.Equal(t, src, res.Path[0])
	require.Equal(t, dst, res.Path[len(res.Path)-1])
	for i := 1; i < len(res.Path); i++ {
		require.Truef(t, g.HasEdge(res.Path[i-1], res.Path[i]), "step %v -> %v is not an edge", res.Path[i-1], res.Path[i])
	}
}

func TestShortestPath_OpenBoard(t *testing.T) {
	g := build(t, `
		. . .
		. . .
		@ . .
	`)
	res, err := pathquery.ShortestPath(g, pt(0, 0), pt(2, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Cost)
	requireValidPath(t, g, res, pt(0, 0), pt(2, 2))
	assert.Equal(t, int64(len(res.Path)-1), res.Cost)
}

func TestShortestPath_WallIsUnreachable(t *testing.T) {
	g := build(t, `
		. X .
		. X .
		@ X .
	`)
	res, err := pathquery.ShortestPath(g, pt(0, 0), pt(2, 0))
	require.NoError(t, err)
	assert.Equal(t, pathquery.Unreachable, res.Status)
	assert.False(t, res.Reachable())
	assert.Nil(t, res.Path)
	assert.Equal(t, int64(-1), res.Cost)
}

// TestShortestPath_RingIsUnreachable encloses the destination in obstacles.
func TestShortestPath_RingIsUnreachable(t *testing.T) {
	g := build(t, `
		. . . . .
		. X X X .
		. X . X .
		. X X X .
		@ . . . .
	`)
	s, err := pathquery.New(g)
	require.NoError(t, err)
	res, err := s.ShortestPath(pt(0, 0), pt(2, 2))
	require.NoError(t, err)
	assert.Equal(t, pathquery.Unreachable, res.Status)

	// The Tree agrees with the components shortcut.
	tree, err := s.From(pt(0, 0))
	require.NoError(t, err)
	res, err = tree.PathTo(pt(2, 2))
	require.NoError(t, err)
	assert.Equal(t, pathquery.Unreachable, res.Status)
}

func TestShortestPath_NodeNotInGraph(t *testing.T) {
	g := build(t, `
		. X .
		@ . .
	`)
	s, err := pathquery.New(g)
	require.NoError(t, err)

	for name, q := range map[string][2]board.Point{
		"obstacle dst":      {pt(0, 0), pt(1, 1)},
		"obstacle src":      {pt(1, 1), pt(0, 0)},
		"out of bounds dst": {pt(0, 0), pt(5, 0)},
		"negative src":      {pt(-1, 0), pt(0, 0)},
	} {
		_, err = s.ShortestPath(q[0], q[1])
		assert.ErrorIsf(t, err, pathquery.ErrNodeNotInGraph, "%s", name)
		_, _, err = s.Distance(q[0], q[1])
		assert.ErrorIsf(t, err, pathquery.ErrNodeNotInGraph, "%s", name)
	}
	_, err = s.From(pt(1, 1))
	assert.ErrorIs(t, err, pathquery.ErrNodeNotInGraph)
	assert.Contains(t, err.Error(), "(1,1)")
}

func TestShortestPath_SameCell(t *testing.T) {
	g := build(t, "@ .")
	res, err := pathquery.ShortestPath(g, pt(1, 0), pt(1, 0))
	require.NoError(t, err)
	assert.Equal(t, []board.Point{pt(1, 0)}, res.Path)
	assert.Zero(t, res.Cost)
}

func TestShortestPath_Deterministic(t *testing.T) {
	g := build(t, `
		. . . .
		. . . .
		. . . .
		@ . . .
	`)
	first, err := pathquery.ShortestPath(g, pt(0, 0), pt(3, 3))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		// Fresh services run fresh searches.
		again, err := pathquery.ShortestPath(g, pt(0, 0), pt(3, 3))
		require.NoError(t, err)
		require.Equal(t, first.Path, again.Path)
	}
}

func TestService_Reuse(t *testing.T) {
	g := build(t, `
		. . .
		. X .
		@ . .
	`)
	s, err := pathquery.New(g)
	require.NoError(t, err)

	a, err := s.From(pt(0, 0))
	require.NoError(t, err)
	b, err := s.From(pt(0, 0))
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := s.From(pt(2, 2))
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, pt(2, 2), c.Source())

	d, st, err := s.Distance(pt(0, 0), pt(2, 2))
	require.NoError(t, err)
	assert.Equal(t, pathquery.Found, st)
	assert.Equal(t, int64(4), d)
}

func TestService_Concurrent(t *testing.T) {
	g := build(t, strings.Repeat(strings.Repeat(".", 20)+"\n", 20))
	s, err := pathquery.New(g)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]pathquery.Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.ShortestPath(pt(0, 0), pt(19, 19))
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		require.Equal(t, int64(38), r.Cost)
		require.Equal(t, results[0].Path, r.Path)
	}
}

func TestService_Weighted(t *testing.T) {
	cost := func(to board.Cell, _ board.Robot) int64 {
		if to.Wrapped {
			return 10
		}
		return 1
	}
	g := build(t, `
		. . .
		w w .
		@ . .
	`, boardgraph.WithCost(cost))

	s, err := pathquery.New(g)
	require.NoError(t, err)
	assert.Equal(t, pathquery.AlgorithmDijkstra, s.Algorithm())

	res, err := s.ShortestPath(pt(0, 0), pt(0, 2))
	require.NoError(t, err)
	requireValidPath(t, g, res, pt(0, 0), pt(0, 2))
	assert.Equal(t, int64(6), res.Cost)
	assert.Len(t, res.Path, 7)

	_, err = pathquery.New(g, pathquery.WithAlgorithm(pathquery.AlgorithmBFS))
	assert.ErrorIs(t, err, pathquery.ErrOptionViolation)
	assert.ErrorIs(t, err, bfs.ErrWeightedGraph)
}

func TestService_ForcedDijkstraOnUnitGraph(t *testing.T) {
	g := build(t, `
		. . .
		. X .
		@ . .
	`)
	want, err := pathquery.ShortestPath(g, pt(0, 0), pt(2, 2))
	require.NoError(t, err)
	got, err := pathquery.ShortestPath(g, pt(0, 0), pt(2, 2), pathquery.WithAlgorithm(pathquery.AlgorithmDijkstra))
	require.NoError(t, err)
	assert.Equal(t, want.Cost, got.Cost)
}

func TestService_Budget(t *testing.T) {
	g := build(t, "@ . . . . . . .")
	s, err := pathquery.New(g, pathquery.WithMaxSteps(2))
	require.NoError(t, err)

	res, err := s.ShortestPath(pt(0, 0), pt(7, 0))
	require.NoError(t, err)
	assert.Equal(t, pathquery.BudgetExceeded, res.Status)
	assert.Equal(t, "budget_exceeded", res.Status.String())

	// Discovered before the budget ran out: still exact.
	res, err = s.ShortestPath(pt(0, 0), pt(1, 0))
	require.NoError(t, err)
	assert.Equal(t, pathquery.Found, res.Status)
	assert.Equal(t, int64(1), res.Cost)
}

// TestService_BudgetDirected checks that a budget is not mistaken for a
// missing path on one-way boards, where the components shortcut is off.
func TestService_BudgetDirected(t *testing.T) {
	rightOnly := func(from, to board.Cell, _ board.Robot) bool { return to.Point.X > from.Point.X }
	g := build(t, "@ . . . .", boardgraph.WithMoveRule(rightOnly))

	s, err := pathquery.New(g, pathquery.WithMaxSteps(1))
	require.NoError(t, err)
	res, err := s.ShortestPath(pt(0, 0), pt(4, 0))
	require.NoError(t, err)
	assert.Equal(t, pathquery.BudgetExceeded, res.Status)

	res, err = pathquery.ShortestPath(g, pt(4, 0), pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, pathquery.Unreachable, res.Status)
}

// TestService_BudgetWalled checks that a budgeted service searches instead
// of labelling components: a fully explored region is Unreachable, a cut
// short one is BudgetExceeded.
func TestService_BudgetWalled(t *testing.T) {
	g := build(t, "@ X . .")
	s, err := pathquery.New(g, pathquery.WithMaxSteps(1))
	require.NoError(t, err)
	res, err := s.ShortestPath(pt(0, 0), pt(3, 0))
	require.NoError(t, err)
	assert.Equal(t, pathquery.Unreachable, res.Status)

	g = build(t, "@ . X .")
	s, err = pathquery.New(g, pathquery.WithMaxSteps(1))
	require.NoError(t, err)
	_, st, err := s.Distance(pt(0, 0), pt(3, 0))
	require.NoError(t, err)
	assert.Equal(t, pathquery.BudgetExceeded, st)
}

func TestNew_Errors(t *testing.T) {
	_, err := pathquery.New(nil)
	assert.ErrorIs(t, err, pathquery.ErrNilGraph)

	g := build(t, "@ .")
	_, err = pathquery.New(g, pathquery.WithMaxSteps(-1))
	assert.ErrorIs(t, err, pathquery.ErrOptionViolation)
	_, err = pathquery.New(g, pathquery.WithAlgorithm(pathquery.Algorithm(9)))
	assert.ErrorIs(t, err, pathquery.ErrOptionViolation)
}

func TestService_CanceledIsRetried(t *testing.T) {
	g := build(t, "@ . .")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := pathquery.New(g, pathquery.WithContext(ctx))
	require.NoError(t, err)

	_, err = s.ShortestPath(pt(0, 0), pt(2, 0))
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
	_, err = s.From(pt(0, 0))
	require.ErrorIs(t, err, context.Canceled, "failed searches are not memoized")
}

// bruteForce returns the fewest moves from src to dst by exhaustive
// enumeration of simple paths, or -1.
func bruteForce(g *boardgraph.Graph, src, dst int) int {
	best := -1
	seen := make([]bool, g.NodeCount())
	var walk func(u, depth int)
	walk = func(u, depth int) {
		if best >= 0 && depth >= best {
			return
		}
		if u == dst {
			best = depth
			return
		}
		seen[u] = true
		for _, v := range g.Neighbors(u) {
			if !seen[v] {
				walk(int(v), depth+1)
			}
		}
		seen[u] = false
	}
	walk(src, 0)
	return best
}

func randomBoard(rng *rand.Rand, w, h int) string {
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rng.Intn(10) < 3 {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestProperties_OptimalAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 20; round++ {
		text := randomBoard(rng, 4, 4)
		// Robot 0 defaults to the origin; keep it passable.
		text = text[:len(text)-5] + "." + text[len(text)-4:]
		g := build(t, text)
		s, err := pathquery.New(g)
		require.NoError(t, err)

		for a := 0; a < g.NodeCount(); a++ {
			for b := 0; b < g.NodeCount(); b++ {
				src, dst := g.Point(a), g.Point(b)
				res, err := s.ShortestPath(src, dst)
				require.NoError(t, err)
				want := bruteForce(g, a, b)
				if want < 0 {
					require.Equalf(t, pathquery.Unreachable, res.Status, "round %d %v->%v", round, src, dst)
					continue
				}
				requireValidPath(t, g, res, src, dst)
				require.Equalf(t, int64(want), res.Cost, "round %d %v->%v", round, src, dst)
				require.Equal(t, int64(len(res.Path)-1), res.Cost)
			}
		}
	}
}
