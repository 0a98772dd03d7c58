package routing

import (
	"math"
	"testing"

	"github.com/paulmach/osm"

	"tsp_router/pkg/graph"
	osmparser "tsp_router/pkg/osm"
)

// buildRingGraph creates a bidirectional 2×3 grid:
//
//	0 ---100--- 1 ---200--- 2
//	|                       |
//	300                    400
//	|                       |
//	3 ---500--- 4 ---600--- 5
//
// Lengths in meters.
func buildRingGraph() *graph.Graph {
	return graph.Build(&osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 10, ToNodeID: 20, Length: 100},
			{FromNodeID: 20, ToNodeID: 10, Length: 100},
			{FromNodeID: 20, ToNodeID: 30, Length: 200},
			{FromNodeID: 30, ToNodeID: 20, Length: 200},
			{FromNodeID: 10, ToNodeID: 40, Length: 300},
			{FromNodeID: 40, ToNodeID: 10, Length: 300},
			{FromNodeID: 40, ToNodeID: 50, Length: 500},
			{FromNodeID: 50, ToNodeID: 40, Length: 500},
			{FromNodeID: 30, ToNodeID: 60, Length: 400},
			{FromNodeID: 60, ToNodeID: 30, Length: 400},
			{FromNodeID: 50, ToNodeID: 60, Length: 600},
			{FromNodeID: 60, ToNodeID: 50, Length: 600},
		},
		NodeLat: map[osm.NodeID]float64{10: 1.300, 20: 1.300, 30: 1.300, 40: 1.301, 50: 1.301, 60: 1.301},
		NodeLon: map[osm.NodeID]float64{10: 103.800, 20: 103.801, 30: 103.802, 40: 103.800, 50: 103.801, 60: 103.802},
	})
}

// buildChainGraph creates the collinear chain: four nodes on one road with
// segment lengths 100, 200, 150 meters.
func buildChainGraph() *graph.Graph {
	return graph.Build(&osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 10, ToNodeID: 20, Length: 100},
			{FromNodeID: 20, ToNodeID: 10, Length: 100},
			{FromNodeID: 20, ToNodeID: 30, Length: 200},
			{FromNodeID: 30, ToNodeID: 20, Length: 200},
			{FromNodeID: 30, ToNodeID: 40, Length: 150},
			{FromNodeID: 40, ToNodeID: 30, Length: 150},
		},
		NodeLat: map[osm.NodeID]float64{10: 40.71, 20: 40.71, 30: 40.71, 40: 40.71},
		NodeLon: map[osm.NodeID]float64{10: -74.05, 20: -74.04, 30: -74.03, 40: -74.02},
	})
}

func TestMinHeap(t *testing.T) {
	var h MinHeap

	h.Push(1, 30)
	h.Push(2, 10)
	h.Push(3, 20)

	item := h.Pop()
	if item.Node != 2 || item.Dist != 10 {
		t.Errorf("Pop = {%d, %f}, want {2, 10}", item.Node, item.Dist)
	}

	item = h.Pop()
	if item.Node != 3 || item.Dist != 20 {
		t.Errorf("Pop = {%d, %f}, want {3, 20}", item.Node, item.Dist)
	}

	item = h.Pop()
	if item.Node != 1 || item.Dist != 30 {
		t.Errorf("Pop = {%d, %f}, want {1, 30}", item.Node, item.Dist)
	}

	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestDijkstraShortestPaths(t *testing.T) {
	g := buildRingGraph()

	cases := []struct {
		source, target uint32
		want           float64
	}{
		{0, 2, 300},  // 0→1→2
		{0, 5, 700},  // 0→1→2→5
		{3, 2, 600},  // 3→0→1→2
		{4, 1, 900},  // 4→3→0→1
		{0, 0, 0},
	}

	for _, tc := range cases {
		got, path := dijkstra(g, tc.source, tc.target)
		if got != tc.want {
			t.Errorf("dijkstra(%d, %d) = %f, want %f", tc.source, tc.target, got, tc.want)
		}
		if len(path) == 0 {
			t.Errorf("dijkstra(%d, %d): empty path", tc.source, tc.target)
			continue
		}
		if path[0] != tc.source || path[len(path)-1] != tc.target {
			t.Errorf("dijkstra(%d, %d): path %v does not run source to target",
				tc.source, tc.target, path)
		}
	}
}

func TestDijkstraNoPath(t *testing.T) {
	// Two disconnected pairs.
	g := graph.Build(&osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 1, ToNodeID: 2, Length: 10},
			{FromNodeID: 2, ToNodeID: 1, Length: 10},
			{FromNodeID: 3, ToNodeID: 4, Length: 10},
			{FromNodeID: 4, ToNodeID: 3, Length: 10},
		},
		NodeLat: map[osm.NodeID]float64{1: 0, 2: 0, 3: 1, 4: 1},
		NodeLon: map[osm.NodeID]float64{1: 0, 2: 0.001, 3: 0, 4: 0.001},
	})

	d, path := dijkstra(g, 0, 2)
	if !math.IsInf(d, 1) {
		t.Errorf("dijkstra across components = %f, want +Inf", d)
	}
	if path != nil {
		t.Errorf("path = %v, want nil", path)
	}
}

func TestOracleNearestNode(t *testing.T) {
	g := buildChainGraph()
	o := NewOracle(g)

	node, ok := o.NearestNode([2]float64{-74.0495, 40.7105})
	if !ok || node != 0 {
		t.Errorf("NearestNode = %d, %v; want 0, true", node, ok)
	}

	node, ok = o.NearestNode([2]float64{-74.021, 40.71})
	if !ok || node != 3 {
		t.Errorf("NearestNode = %d, %v; want 3, true", node, ok)
	}
}

func TestOracleSameNodeZeroDistance(t *testing.T) {
	g := buildChainGraph()
	o := NewOracle(g)

	// Both coordinates resolve to node 1.
	d := o.Distance([2]float64{-74.0401, 40.71}, [2]float64{-74.0399, 40.71})
	if d != 0 {
		t.Errorf("Distance = %f, want 0", d)
	}

	path := o.NodePath(1, 1)
	if len(path) != 1 || path[0] != 1 {
		t.Errorf("NodePath(1,1) = %v, want [1]", path)
	}
}

func TestOraclePathCoords(t *testing.T) {
	g := buildChainGraph()
	o := NewOracle(g)

	coords := o.PathCoords([]uint32{0, 1, 2})
	if len(coords) != 3 {
		t.Fatalf("len(coords) = %d, want 3", len(coords))
	}
	if coords[0][0] != -74.05 || coords[2][0] != -74.03 {
		t.Errorf("coords = %v, want -74.05 .. -74.03", coords)
	}
}
