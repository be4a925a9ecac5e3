package analyzer

import (
	"container/list"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/boardpath/board"
	"github.com/katalvlaran/boardpath/boardgraph"
)

// memoKey identifies a graph by robot and snapshot content.
type memoKey struct {
	robot board.RobotID
	hash  uint64
}

func (k memoKey) String() string { return fmt.Sprintf("%d/%016x", k.robot, k.hash) }

type memoEntry struct {
	graph *boardgraph.Graph
	elem  *list.Element
}

// memo is a bounded LRU of built graphs. Concurrent builds for one key
// are collapsed into a single build. Errors are never stored.
type memo struct {
	capacity int

	mu      sync.Mutex
	entries map[memoKey]*memoEntry
	lru     *list.List // front = most recent; values are memoKey
	flight  singleflight.Group
}

func newMemo(capacity int) *memo {
	return &memo{
		capacity: capacity,
		entries:  make(map[memoKey]*memoEntry, capacity),
		lru:      list.New(),
	}
}

// get returns the stored graph for k and marks it recently used.
func (m *memo) get(k memoKey) (*boardgraph.Graph, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[k]
	if !ok {
		return nil, false
	}
	m.lru.MoveToFront(e.elem)
	return e.graph, true
}

// getOrBuild returns the stored graph for k or runs build once for all
// concurrent callers. hit reports whether the graph was already stored.
func (m *memo) getOrBuild(k memoKey, build func() (*boardgraph.Graph, error)) (g *boardgraph.Graph, hit bool, err error) {
	if g, ok := m.get(k); ok {
		return g, true, nil
	}

	v, err, _ := m.flight.Do(k.String(), func() (interface{}, error) {
		// A flight that finished after our miss has stored the graph.
		if g, ok := m.get(k); ok {
			return g, nil
		}
		g, err := build()
		if err != nil {
			return nil, err
		}
		m.put(k, g)
		return g, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*boardgraph.Graph), false, nil
}

// put stores g under k, evicting the least recently used entry when full.
func (m *memo) put(k memoKey, g *boardgraph.Graph) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[k]; ok {
		e.graph = g
		m.lru.MoveToFront(e.elem)
		return
	}
	for m.lru.Len() >= m.capacity {
		back := m.lru.Back()
		delete(m.entries, back.Value.(memoKey))
		m.lru.Remove(back)
		memoEvictions.Inc()
	}
	e := &memoEntry{graph: g}
	e.elem = m.lru.PushFront(k)
	m.entries[k] = e
}

// len returns the number of stored graphs.
func (m *memo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}
