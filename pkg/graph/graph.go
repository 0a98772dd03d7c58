package graph

import (
	"sort"

	"github.com/paulmach/orb"
)

// Edge is a directed edge of the road multigraph. Key disambiguates
// parallel edges between the same endpoint pair. Geometry, when non-nil,
// starts at the U-node coordinate and ends at the V-node coordinate;
// a nil Geometry means the straight segment between the endpoints.
type Edge struct {
	U, V     uint32
	Key      uint32
	Length   float64 // meters
	Geometry orb.LineString
}

// Graph is a directed multigraph over contiguously numbered nodes with
// geographic coordinates. It is read-only after construction.
type Graph struct {
	NumNodes uint32
	NodeLat  []float64 // len: NumNodes
	NodeLon  []float64 // len: NumNodes
	OrigID   []int64   // len: NumNodes; source OSM node id

	// Edges sorted by (U, V, Key), so edges from a node are contiguous.
	Edges []Edge

	FirstOut []uint32 // len: NumNodes + 1; FirstOut[u]..FirstOut[u+1] index Edges
}

// Bounds holds the geographic extent of the network.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// NodeCoord returns the (lon, lat) of a node.
func (g *Graph) NodeCoord(id uint32) (lon, lat float64, ok bool) {
	if id >= g.NumNodes {
		return 0, 0, false
	}
	return g.NodeLon[id], g.NodeLat[id], true
}

// EdgeAttrs looks up the edge (u, v, key) by binary search over the sorted
// edge list.
func (g *Graph) EdgeAttrs(u, v, key uint32) (*Edge, bool) {
	i := sort.Search(len(g.Edges), func(i int) bool {
		e := &g.Edges[i]
		if e.U != u {
			return e.U >= u
		}
		if e.V != v {
			return e.V >= v
		}
		return e.Key >= key
	})
	if i < len(g.Edges) {
		e := &g.Edges[i]
		if e.U == u && e.V == v && e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// EdgeGeometry returns the coordinate sequence of an edge, synthesizing the
// straight segment when the edge has no stored geometry.
func (g *Graph) EdgeGeometry(e *Edge) orb.LineString {
	if e.Geometry != nil {
		return e.Geometry
	}
	return orb.LineString{
		{g.NodeLon[e.U], g.NodeLat[e.U]},
		{g.NodeLon[e.V], g.NodeLat[e.V]},
	}
}

// ComputeBounds returns the geographic extent over all nodes.
// Zero value for an empty graph.
func (g *Graph) ComputeBounds() Bounds {
	if g.NumNodes == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinLat: g.NodeLat[0], MaxLat: g.NodeLat[0],
		MinLon: g.NodeLon[0], MaxLon: g.NodeLon[0],
	}
	for i := uint32(1); i < g.NumNodes; i++ {
		if g.NodeLat[i] < b.MinLat {
			b.MinLat = g.NodeLat[i]
		}
		if g.NodeLat[i] > b.MaxLat {
			b.MaxLat = g.NodeLat[i]
		}
		if g.NodeLon[i] < b.MinLon {
			b.MinLon = g.NodeLon[i]
		}
		if g.NodeLon[i] > b.MaxLon {
			b.MaxLon = g.NodeLon[i]
		}
	}
	return b
}
