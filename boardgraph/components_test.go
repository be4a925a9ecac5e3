package boardgraph_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boardpath/board"
	"github.com/katalvlaran/boardpath/boardgraph"
	"github.com/katalvlaran/boardpath/boardtext"
)

func build(t *testing.T, text string, opts ...boardgraph.Option) *boardgraph.Graph {
	t.Helper()
	grid := boardtext.MustParse(text)
	b, err := boardgraph.NewBuilder(grid, opts...)
	require.NoError(t, err)
	g, err := b.Build(boardtext.StartRobot, grid)
	require.NoError(t, err)
	return g
}

// TestComponents_Wall: a solid wall splits a 3×3 board into two columns.
//
//	. X .
//	. X .
//	@ X .
func TestComponents_Wall(t *testing.T) {
	g := build(t, `
		. X .
		. X .
		@ X .
	`)
	_, n := g.Components()
	require.Equal(t, 2, n)

	sizes := g.ComponentSizes()
	sort.Ints(sizes)
	assert.Equal(t, []int{3, 3}, sizes)
	assert.True(t, g.Connected(board.Point{X: 0, Y: 0}, board.Point{X: 0, Y: 2}))
	assert.False(t, g.Connected(board.Point{X: 0, Y: 0}, board.Point{X: 2, Y: 0}))
	assert.False(t, g.Connected(board.Point{X: 0, Y: 0}, board.Point{X: 1, Y: 0}), "obstacle is no node")
}

// TestComponents_Diagonal8: corner-touching cells join under Conn8 only.
func TestComponents_Diagonal8(t *testing.T) {
	const text = `
		X .
		@ X
	`
	_, n4 := build(t, text).Components()
	_, n8 := build(t, text, boardgraph.WithConnectivity(boardgraph.Conn8)).Components()
	assert.Equal(t, 2, n4)
	assert.Equal(t, 1, n8)
}

// TestComponents_DirectedIsWeak: one-way arcs still join a region.
func TestComponents_DirectedIsWeak(t *testing.T) {
	rightOnly := func(from, to board.Cell, _ board.Robot) bool { return to.Point.X > from.Point.X }
	g := build(t, "@ . .", boardgraph.WithMoveRule(rightOnly))
	_, n := g.Components()
	assert.Equal(t, 1, n)
	assert.True(t, g.Connected(board.Point{X: 2, Y: 0}, board.Point{X: 0, Y: 0}))
}

func TestComponents_Cached(t *testing.T) {
	g := build(t, "@ .\n. .")
	a, _ := g.Components()
	b, _ := g.Components()
	require.Len(t, a, 4)
	assert.Same(t, &a[0], &b[0])
}
