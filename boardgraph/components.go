package boardgraph

import "github.com/katalvlaran/boardpath/board"

// Components labels every node with the index of its connected region.
// Returns the per-node labels (indexed by node id) and the region count.
// Labels follow the order in which regions are first met in row‑major scan.
// Arcs are followed in both directions, so for a directed graph the
// regions are weakly connected components.
//
// Computed once per Graph and cached; the returned slice is shared.
//
// Time:   O(V + E).
// Memory: O(V).
func (g *Graph) Components() ([]int32, int) {
	g.compOnce.Do(g.label)
	return g.comp, g.nComp
}

// Connected reports whether a and b are nodes of the same region.
func (g *Graph) Connected(a, b board.Point) bool {
	u, ok := g.Node(a)
	if !ok {
		return false
	}
	v, ok := g.Node(b)
	if !ok {
		return false
	}
	comp, _ := g.Components()
	return comp[u] == comp[v]
}

// ComponentSizes returns the node count of every region, indexed by label.
func (g *Graph) ComponentSizes() []int {
	comp, n := g.Components()
	sizes := make([]int, n)
	for _, c := range comp {
		sizes[c]++
	}
	return sizes
}

func (g *Graph) label() {
	n := len(g.points)
	g.comp = make([]int32, n)
	for i := range g.comp {
		g.comp[i] = -1
	}
	var rev [][]int32
	if g.directed {
		rev = g.reverse()
	}

	queue := make([]int32, 0, n)
	for s := 0; s < n; s++ {
		if g.comp[s] >= 0 {
			continue
		}
		label := int32(g.nComp)
		g.nComp++
		g.comp[s] = label
		queue = append(queue[:0], int32(s))
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, v := range g.Neighbors(int(u)) {
				if g.comp[v] < 0 {
					g.comp[v] = label
					queue = append(queue, v)
				}
			}
			if rev == nil {
				continue
			}
			for _, v := range rev[u] {
				if g.comp[v] < 0 {
					g.comp[v] = label
					queue = append(queue, v)
				}
			}
		}
	}
}

// reverse returns incoming arcs per node.
func (g *Graph) reverse() [][]int32 {
	rev := make([][]int32, len(g.points))
	for u := range g.points {
		for _, v := range g.Neighbors(u) {
			rev[v] = append(rev[v], int32(u))
		}
	}
	return rev
}
