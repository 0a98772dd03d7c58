package routing

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"tsp_router/pkg/geo"
	"tsp_router/pkg/graph"
	"tsp_router/pkg/points"
)

// ErrEmptyGraph is returned when snapping is attempted against a network
// with no edges.
var ErrEmptyGraph = errors.New("empty graph: no road network loaded")

// SnappedPoint records the projection of an input point onto the nearest
// edge. The graph is not modified; the snapped coordinate is a free-floating
// location on the edge geometry.
type SnappedPoint struct {
	ID       int
	Original orb.Point
	Snapped  orb.Point
	EdgeU    uint32
	EdgeV    uint32
	EdgeKey  uint32
	Offset   float64 // degree-space distance from original to snapped
}

// Snapper finds the nearest edge to a query point using an R-tree over edge
// bounding boxes.
type Snapper struct {
	g  *graph.Graph
	tr rtree.RTreeG[uint32] // edge index by geometry bounding box
}

// NewSnapper indexes the graph's edges. Edge indices follow the graph's
// (U, V, Key) order, which makes nearest-edge ties deterministic.
func NewSnapper(g *graph.Graph) *Snapper {
	s := &Snapper{g: g}

	for i := range g.Edges {
		geom := g.EdgeGeometry(&g.Edges[i])
		minLon, minLat := geom[0][0], geom[0][1]
		maxLon, maxLat := minLon, minLat
		for _, pt := range geom[1:] {
			minLon = math.Min(minLon, pt[0])
			minLat = math.Min(minLat, pt[1])
			maxLon = math.Max(maxLon, pt[0])
			maxLat = math.Max(maxLat, pt[1])
		}
		s.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, uint32(i))
	}

	return s
}

// SnapAll projects every raw point onto its nearest edge, preserving input
// order.
func (s *Snapper) SnapAll(pts []points.RawPoint) ([]SnappedPoint, error) {
	if s.g.NumNodes == 0 || len(s.g.Edges) == 0 {
		return nil, ErrEmptyGraph
	}

	snapped := make([]SnappedPoint, len(pts))
	for i, p := range pts {
		snapped[i] = s.snap(p)
	}
	return snapped, nil
}

// snap finds the nearest edge with an expanding-radius box search. The
// result is independent of R-tree visit order: among candidates the minimum
// distance wins, ties broken by lowest edge index.
func (s *Snapper) snap(p points.RawPoint) SnappedPoint {
	q := orb.Point{p.X, p.Y}

	// Start around half a kilometre in degrees and double until the best
	// candidate provably dominates anything outside the searched box: an
	// edge closer than bestDist would intersect it. The box eventually
	// covers the whole network, so the loop terminates on any non-empty
	// graph.
	radius := 0.005

	bestDist := math.Inf(1)
	bestIdx := uint32(math.MaxUint32)
	var bestPt orb.Point

	for {
		s.tr.Search(
			[2]float64{q[0] - radius, q[1] - radius},
			[2]float64{q[0] + radius, q[1] + radius},
			func(_, _ [2]float64, idx uint32) bool {
				pt, dist := s.closestOnEdge(q, &s.g.Edges[idx])
				if dist < bestDist || (dist == bestDist && idx < bestIdx) {
					bestDist = dist
					bestIdx = idx
					bestPt = pt
				}
				return true
			},
		)

		if bestDist <= radius {
			break
		}
		radius *= 2
	}

	e := &s.g.Edges[bestIdx]
	return SnappedPoint{
		ID:       p.ID,
		Original: q,
		Snapped:  bestPt,
		EdgeU:    e.U,
		EdgeV:    e.V,
		EdgeKey:  e.Key,
		Offset:   bestDist,
	}
}

// closestOnEdge projects q onto the edge geometry, segment by segment, in
// raw degree space.
func (s *Snapper) closestOnEdge(q orb.Point, e *graph.Edge) (orb.Point, float64) {
	geom := s.g.EdgeGeometry(e)

	best := math.Inf(1)
	var bestPt orb.Point
	for i := 0; i < len(geom)-1; i++ {
		lon, lat, _, dist := geo.PointToSegment(
			q[0], q[1],
			geom[i][0], geom[i][1],
			geom[i+1][0], geom[i+1][1],
		)
		if dist < best {
			best = dist
			bestPt = orb.Point{lon, lat}
		}
	}
	return bestPt, best
}
