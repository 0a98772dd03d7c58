package osm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"

	"tsp_router/pkg/geo"
)

// ErrBadNetworkFile is returned when the upload cannot be parsed as OSM XML.
var ErrBadNetworkFile = errors.New("bad network file")

// RawEdge represents a directed edge extracted from OSM data.
type RawEdge struct {
	FromNodeID osm.NodeID
	ToNodeID   osm.NodeID
	Length     float64 // meters
}

// ParseResult holds the output of parsing an OSM XML document.
type ParseResult struct {
	Edges   []RawEdge
	NodeLat map[osm.NodeID]float64
	NodeLon map[osm.NodeID]float64
}

// isRoutable returns true if the way is part of the traversable road network.
func isRoutable(tags osm.Tags) bool {
	if tags.Find("highway") == "" {
		return false
	}

	// Skip area highways (pedestrian plazas).
	if tags.Find("area") == "yes" {
		return false
	}

	// Skip restricted access.
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}

	return true
}

// wayInfo holds parsed way data collected during Pass 1.
type wayInfo struct {
	NodeIDs []osm.NodeID
}

// Parse reads an OSM XML document and returns directed edges for routing.
// Every kept way segment is emitted in both directions: the cost model
// treats the network as symmetric, so oneway tags are not honored.
func Parse(ctx context.Context, data []byte) (*ParseResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrBadNetworkFile)
	}

	// Pass 1: Scan ways to collect referenced node IDs and way info.
	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmxml.New(ctx, bytes.NewReader(data))

	for scanner.Scan() {
		obj := scanner.Object()
		w, ok := obj.(*osm.Way)
		if !ok {
			continue
		}

		if !isRoutable(w.Tags) {
			continue
		}

		if len(w.Nodes) < 2 {
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}

		ways = append(ways, wayInfo{NodeIDs: nodeIDs})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("%w: pass 1 (ways): %v", ErrBadNetworkFile, err)
	}
	scanner.Close()

	slog.Debug("network parse pass 1 complete", "ways", len(ways), "referenced_nodes", len(referencedNodes))

	// Pass 2: Scan nodes to collect coordinates for referenced nodes only.
	nodeLat := make(map[osm.NodeID]float64, len(referencedNodes))
	nodeLon := make(map[osm.NodeID]float64, len(referencedNodes))

	scanner = osmxml.New(ctx, bytes.NewReader(data))

	for scanner.Scan() {
		obj := scanner.Object()
		n, ok := obj.(*osm.Node)
		if !ok {
			continue
		}

		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}

		nodeLat[n.ID] = n.Lat
		nodeLon[n.ID] = n.Lon
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("%w: pass 2 (nodes): %v", ErrBadNetworkFile, err)
	}
	scanner.Close()

	slog.Debug("network parse pass 2 complete", "node_coordinates", len(nodeLat))

	// Build edges from ways.
	var edges []RawEdge
	var skippedEdges int

	for _, w := range ways {
		for i := 0; i < len(w.NodeIDs)-1; i++ {
			fromID := w.NodeIDs[i]
			toID := w.NodeIDs[i+1]

			fromLat, fromOk := nodeLat[fromID]
			fromLon := nodeLon[fromID]
			toLat, toOk := nodeLat[toID]
			toLon := nodeLon[toID]

			if !fromOk || !toOk {
				skippedEdges++
				continue
			}

			length := geo.Haversine(fromLat, fromLon, toLat, toLon)

			edges = append(edges,
				RawEdge{FromNodeID: fromID, ToNodeID: toID, Length: length},
				RawEdge{FromNodeID: toID, ToNodeID: fromID, Length: length},
			)
		}
	}

	if skippedEdges > 0 {
		slog.Warn("skipped edges with missing node coordinates", "count", skippedEdges)
	}
	slog.Debug("network parse complete", "directed_edges", len(edges))

	return &ParseResult{
		Edges:   edges,
		NodeLat: nodeLat,
		NodeLon: nodeLon,
	}, nil
}
