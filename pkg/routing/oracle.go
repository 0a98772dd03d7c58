package routing

import (
	"math"

	"github.com/paulmach/orb"

	"tsp_router/pkg/geo"
	"tsp_router/pkg/graph"
)

// Oracle answers shortest-path queries between geographic coordinates by
// resolving each coordinate to its nearest graph node and running Dijkstra
// over edge lengths. Snap offsets are treated as negligible: tour cost is
// measured node-to-node.
type Oracle struct {
	g *graph.Graph
}

// NewOracle creates an oracle over a read-only graph.
func NewOracle(g *graph.Graph) *Oracle {
	return &Oracle{g: g}
}

// NearestNode returns the node closest to p in degree space, scanning all
// nodes. Returns false on an empty graph.
func (o *Oracle) NearestNode(p orb.Point) (uint32, bool) {
	if o.g.NumNodes == 0 {
		return 0, false
	}

	best := uint32(0)
	bestDist := math.Inf(1)
	for i := uint32(0); i < o.g.NumNodes; i++ {
		d := geo.DegreeDist(p[0], p[1], o.g.NodeLon[i], o.g.NodeLat[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, true
}

// NodeDistance returns the shortest-path length in meters between two nodes,
// or +Inf when no path exists.
func (o *Oracle) NodeDistance(source, target uint32) float64 {
	d, _ := dijkstra(o.g, source, target)
	return d
}

// NodePath returns the shortest-path node sequence between two nodes, or nil
// when no path exists. Source and target equal yields a single-node sequence.
func (o *Oracle) NodePath(source, target uint32) []uint32 {
	_, path := dijkstra(o.g, source, target)
	return path
}

// Distance resolves both coordinates to their nearest nodes and returns the
// shortest-path length in meters, or +Inf when the nodes are not connected.
func (o *Oracle) Distance(source, target orb.Point) float64 {
	s, ok := o.NearestNode(source)
	if !ok {
		return math.Inf(1)
	}
	t, ok := o.NearestNode(target)
	if !ok {
		return math.Inf(1)
	}
	return o.NodeDistance(s, t)
}

// PathCoords expands a node sequence into a coordinate polyline, splicing in
// intermediate shape points where the connecting edge carries geometry.
// Among parallel edges the shortest one is used, matching the edge Dijkstra
// relaxes over.
func (o *Oracle) PathCoords(nodes []uint32) orb.LineString {
	if len(nodes) == 0 {
		return nil
	}

	g := o.g
	line := make(orb.LineString, 0, len(nodes)*2)
	line = append(line, orb.Point{g.NodeLon[nodes[0]], g.NodeLat[nodes[0]]})

	for i := 0; i < len(nodes)-1; i++ {
		u, v := nodes[i], nodes[i+1]

		var edge *graph.Edge
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			cand := &g.Edges[e]
			if cand.V != v {
				continue
			}
			if edge == nil || cand.Length < edge.Length {
				edge = cand
			}
		}

		if edge != nil && edge.Geometry != nil {
			// Interior shape points, excluding the endpoints themselves.
			for _, pt := range edge.Geometry[1 : len(edge.Geometry)-1] {
				line = append(line, pt)
			}
		}

		line = append(line, orb.Point{g.NodeLon[v], g.NodeLat[v]})
	}

	return line
}
