package graph

import (
	"testing"

	"github.com/paulmach/osm"

	osmparser "tsp_router/pkg/osm"
)

// buildTestGraph creates a small bidirectional chain with one extra
// parallel edge:
//
//	10 ---100--- 20 ---200--- 30 ---150--- 40
//	      \__120__/  (parallel)
func buildTestGraph() *Graph {
	return Build(&osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 10, ToNodeID: 20, Length: 100},
			{FromNodeID: 20, ToNodeID: 10, Length: 100},
			{FromNodeID: 20, ToNodeID: 30, Length: 200},
			{FromNodeID: 30, ToNodeID: 20, Length: 200},
			{FromNodeID: 30, ToNodeID: 40, Length: 150},
			{FromNodeID: 40, ToNodeID: 30, Length: 150},
			{FromNodeID: 10, ToNodeID: 20, Length: 120},
			{FromNodeID: 20, ToNodeID: 10, Length: 120},
		},
		NodeLat: map[osm.NodeID]float64{10: 40.71, 20: 40.71, 30: 40.71, 40: 40.71},
		NodeLon: map[osm.NodeID]float64{10: -74.05, 20: -74.04, 30: -74.03, 40: -74.02},
	})
}

func TestBuildRemapsNodes(t *testing.T) {
	g := buildTestGraph()

	if g.NumNodes != 4 {
		t.Fatalf("NumNodes = %d, want 4", g.NumNodes)
	}
	if len(g.Edges) != 8 {
		t.Fatalf("len(Edges) = %d, want 8", len(g.Edges))
	}

	// Node 10 was seen first, so it maps to index 0.
	lon, lat, ok := g.NodeCoord(0)
	if !ok || lon != -74.05 || lat != 40.71 {
		t.Errorf("NodeCoord(0) = (%f, %f, %v), want (-74.05, 40.71, true)", lon, lat, ok)
	}
	if g.OrigID[0] != 10 {
		t.Errorf("OrigID[0] = %d, want 10", g.OrigID[0])
	}
}

func TestBuildCSRInvariants(t *testing.T) {
	g := buildTestGraph()

	if len(g.FirstOut) != int(g.NumNodes)+1 {
		t.Fatalf("len(FirstOut) = %d, want %d", len(g.FirstOut), g.NumNodes+1)
	}
	if g.FirstOut[g.NumNodes] != uint32(len(g.Edges)) {
		t.Errorf("FirstOut[last] = %d, want %d", g.FirstOut[g.NumNodes], len(g.Edges))
	}

	// Edges must be sorted by (U, V, Key).
	for i := 1; i < len(g.Edges); i++ {
		a, b := g.Edges[i-1], g.Edges[i]
		if a.U > b.U || (a.U == b.U && a.V > b.V) ||
			(a.U == b.U && a.V == b.V && a.Key >= b.Key) {
			t.Errorf("edges not sorted at %d: %+v then %+v", i, a, b)
		}
	}

	// Every edge within EdgesFrom(u) must originate at u.
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			if g.Edges[e].U != u {
				t.Errorf("edge %d has U=%d, expected %d", e, g.Edges[e].U, u)
			}
		}
	}
}

func TestBuildParallelEdgeKeys(t *testing.T) {
	g := buildTestGraph()

	// Two parallel 0→1 edges, keyed 0 and 1 in input order.
	e0, ok := g.EdgeAttrs(0, 1, 0)
	if !ok || e0.Length != 100 {
		t.Fatalf("EdgeAttrs(0,1,0) = %+v, %v; want length 100", e0, ok)
	}
	e1, ok := g.EdgeAttrs(0, 1, 1)
	if !ok || e1.Length != 120 {
		t.Fatalf("EdgeAttrs(0,1,1) = %+v, %v; want length 120", e1, ok)
	}
	if _, ok := g.EdgeAttrs(0, 1, 2); ok {
		t.Error("EdgeAttrs(0,1,2) should not exist")
	}
	if _, ok := g.EdgeAttrs(0, 3, 0); ok {
		t.Error("EdgeAttrs(0,3,0) should not exist")
	}
}

func TestComputeBounds(t *testing.T) {
	g := buildTestGraph()
	b := g.ComputeBounds()

	if b.MinLon != -74.05 || b.MaxLon != -74.02 {
		t.Errorf("lon bounds = [%f, %f], want [-74.05, -74.02]", b.MinLon, b.MaxLon)
	}
	if b.MinLat != 40.71 || b.MaxLat != 40.71 {
		t.Errorf("lat bounds = [%f, %f], want [40.71, 40.71]", b.MinLat, b.MaxLat)
	}
}

func TestBuildEmpty(t *testing.T) {
	g := Build(&osmparser.ParseResult{})
	if g.NumNodes != 0 || len(g.Edges) != 0 {
		t.Errorf("empty build: %d nodes, %d edges; want 0, 0", g.NumNodes, len(g.Edges))
	}
	if b := g.ComputeBounds(); b != (Bounds{}) {
		t.Errorf("empty bounds = %+v, want zero", b)
	}
}

func TestComponentsConnected(t *testing.T) {
	g := buildTestGraph()
	stats := Components(g)
	if stats.Count != 1 {
		t.Errorf("Count = %d, want 1", stats.Count)
	}
	if stats.LargestSize != 4 {
		t.Errorf("LargestSize = %d, want 4", stats.LargestSize)
	}
}

func TestComponentsSplit(t *testing.T) {
	// Two disjoint chains: {1,2} and {3,4,5}.
	g := Build(&osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 1, ToNodeID: 2, Length: 10},
			{FromNodeID: 2, ToNodeID: 1, Length: 10},
			{FromNodeID: 3, ToNodeID: 4, Length: 10},
			{FromNodeID: 4, ToNodeID: 3, Length: 10},
			{FromNodeID: 4, ToNodeID: 5, Length: 10},
			{FromNodeID: 5, ToNodeID: 4, Length: 10},
		},
		NodeLat: map[osm.NodeID]float64{1: 0, 2: 0, 3: 1, 4: 1, 5: 1},
		NodeLon: map[osm.NodeID]float64{1: 0, 2: 0.1, 3: 0, 4: 0.1, 5: 0.2},
	})

	stats := Components(g)
	if stats.Count != 2 {
		t.Errorf("Count = %d, want 2", stats.Count)
	}
	if stats.LargestSize != 3 {
		t.Errorf("LargestSize = %d, want 3", stats.LargestSize)
	}
}
