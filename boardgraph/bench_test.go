package boardgraph_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/boardpath/boardgraph"
)

// BenchmarkBuild measures one per-tick rebuild on a 400×400 board with
// ~30% obstacles.
// Complexity: O(W×H×d)
func BenchmarkBuild(b *testing.B) {
	grid := randomGrid(rand.New(rand.NewSource(42)), 400, 400)
	builder, err := boardgraph.NewBuilder(grid)
	if err != nil {
		b.Fatalf("setup NewBuilder failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = builder.Build(0, grid); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkComponents measures region labelling on the same board.
func BenchmarkComponents(b *testing.B) {
	grid := randomGrid(rand.New(rand.NewSource(42)), 400, 400)
	builder, _ := boardgraph.NewBuilder(grid)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g, _ := builder.Build(0, grid)
		_, _ = g.Components()
	}
}
