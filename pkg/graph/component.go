package graph

// UnionFind implements a disjoint-set structure with path halving and
// union by size.
type UnionFind struct {
	parent []uint32
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range parent {
		parent[i] = uint32(i)
		size[i] = 1
	}
	return &UnionFind{parent: parent, size: size}
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.size[rx] < uf.size[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	return true
}

// ComponentStats summarizes the weak connectivity of the network. A count
// above 1 means some point pairs may have no path between them, which makes
// a solve over points in different components fail as disconnected.
type ComponentStats struct {
	Count       int
	LargestSize uint32
}

// Components analyzes weakly connected components, treating every directed
// edge as undirected.
func Components(g *Graph) ComponentStats {
	if g.NumNodes == 0 {
		return ComponentStats{}
	}

	uf := NewUnionFind(g.NumNodes)
	for i := range g.Edges {
		uf.Union(g.Edges[i].U, g.Edges[i].V)
	}

	stats := ComponentStats{}
	for i := uint32(0); i < g.NumNodes; i++ {
		if uf.Find(i) == i {
			stats.Count++
		}
		if uf.size[uf.Find(i)] > stats.LargestSize {
			stats.LargestSize = uf.size[uf.Find(i)]
		}
	}
	return stats
}
