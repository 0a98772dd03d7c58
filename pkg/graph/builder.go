package graph

import (
	"sort"

	"github.com/paulmach/osm"

	osmparser "tsp_router/pkg/osm"
)

// Build creates a Graph from parsed OSM edges. OSM node ids are remapped to
// contiguous indices in first-seen order; parallel edges between the same
// endpoint pair receive keys 0, 1, … in input order.
func Build(result *osmparser.ParseResult) *Graph {
	edges := result.Edges
	if len(edges) == 0 {
		return &Graph{FirstOut: []uint32{0}}
	}

	// Step 1: Collect all unique node IDs and build a compact mapping.
	nodeSet := make(map[osm.NodeID]uint32)
	var nodeIDs []osm.NodeID

	addNode := func(id osm.NodeID) uint32 {
		if idx, ok := nodeSet[id]; ok {
			return idx
		}
		idx := uint32(len(nodeIDs))
		nodeSet[id] = idx
		nodeIDs = append(nodeIDs, id)
		return idx
	}

	for i := range edges {
		addNode(edges[i].FromNodeID)
		addNode(edges[i].ToNodeID)
	}

	numNodes := uint32(len(nodeIDs))

	// Step 2: Build the edge list with remapped indices. Stable sort by
	// (U, V) keeps input order within an endpoint pair, which then defines
	// the key sequence.
	compact := make([]Edge, len(edges))
	for i, e := range edges {
		compact[i] = Edge{
			U:      nodeSet[e.FromNodeID],
			V:      nodeSet[e.ToNodeID],
			Length: e.Length,
		}
	}

	sort.SliceStable(compact, func(i, j int) bool {
		if compact[i].U != compact[j].U {
			return compact[i].U < compact[j].U
		}
		return compact[i].V < compact[j].V
	})

	// Step 3: Assign keys within each (U, V) run.
	for i := range compact {
		if i > 0 && compact[i].U == compact[i-1].U && compact[i].V == compact[i-1].V {
			compact[i].Key = compact[i-1].Key + 1
		}
	}

	// Step 4: Build FirstOut via counting.
	firstOut := make([]uint32, numNodes+1)
	for i := range compact {
		firstOut[compact[i].U+1]++
	}
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}

	// Step 5: Populate node coordinates and original ids.
	nodeLat := make([]float64, numNodes)
	nodeLon := make([]float64, numNodes)
	origID := make([]int64, numNodes)
	for id, idx := range nodeSet {
		nodeLat[idx] = result.NodeLat[id]
		nodeLon[idx] = result.NodeLon[id]
		origID[idx] = int64(id)
	}

	return &Graph{
		NumNodes: numNodes,
		NodeLat:  nodeLat,
		NodeLon:  nodeLon,
		OrigID:   origID,
		Edges:    compact,
		FirstOut: firstOut,
	}
}
