package analyzer

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boardpath/boardgraph"
	"github.com/katalvlaran/boardpath/boardtext"
)

func memoGraph(t *testing.T) *boardgraph.Graph {
	t.Helper()
	grid := boardtext.MustParse("@ .")
	b, err := boardgraph.NewBuilder(grid)
	require.NoError(t, err)
	g, err := b.Build(boardtext.StartRobot, grid)
	require.NoError(t, err)
	return g
}

func TestMemo_EvictsLeastRecentlyUsed(t *testing.T) {
	m := newMemo(2)
	g := memoGraph(t)
	k1, k2, k3 := memoKey{hash: 1}, memoKey{hash: 2}, memoKey{hash: 3}

	m.put(k1, g)
	m.put(k2, g)
	_, ok := m.get(k1) // k2 becomes the oldest
	require.True(t, ok)
	m.put(k3, g)

	assert.Equal(t, 2, m.len())
	_, ok = m.get(k2)
	assert.False(t, ok, "k2 should have been evicted")
	_, ok = m.get(k1)
	assert.True(t, ok)
	_, ok = m.get(k3)
	assert.True(t, ok)
}

func TestMemo_ErrorsAreNotStored(t *testing.T) {
	m := newMemo(4)
	boom := errors.New("boom")
	k := memoKey{robot: 1, hash: 9}

	_, _, err := m.getOrBuild(k, func() (*boardgraph.Graph, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Zero(t, m.len())

	g := memoGraph(t)
	got, hit, err := m.getOrBuild(k, func() (*boardgraph.Graph, error) { return g, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Same(t, g, got)

	got, hit, err = m.getOrBuild(k, func() (*boardgraph.Graph, error) { return nil, boom })
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, g, got)
}

func TestMemo_CollapsesConcurrentBuilds(t *testing.T) {
	m := newMemo(4)
	g := memoGraph(t)
	var builds atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]*boardgraph.Graph, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, _ = m.getOrBuild(memoKey{hash: 7}, func() (*boardgraph.Graph, error) {
				builds.Add(1)
				<-release
				return g, nil
			})
		}(i)
	}
	close(release)
	wg.Wait()

	// Late goroutines find the stored entry instead of building again.
	assert.Equal(t, int32(1), builds.Load())
	for _, r := range results {
		assert.Same(t, g, r)
	}
}

func TestMemoKey_String(t *testing.T) {
	assert.Equal(t, "3/00000000000000ff", memoKey{robot: 3, hash: 0xff}.String())
}
