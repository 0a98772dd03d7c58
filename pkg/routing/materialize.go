package routing

import (
	"github.com/paulmach/orb"
)

// MaterializePath expands a tour of point ids into a closed coordinate
// polyline by stitching the shortest paths between consecutive snapped
// points, including the wrap-around leg back to the first. The duplicate
// joining vertex between legs is suppressed, so the polyline's first and
// last coordinates coincide.
//
// When a leg has no path, its straight segment between the two snapped
// coordinates is emitted instead; that fallback never feeds the cost matrix.
func MaterializePath(o *Oracle, snapped []SnappedPoint, tour []int) orb.LineString {
	if len(tour) == 0 {
		return orb.LineString{}
	}

	byID := make(map[int]*SnappedPoint, len(snapped))
	for i := range snapped {
		byID[snapped[i].ID] = &snapped[i]
	}

	var line orb.LineString
	for i := range tour {
		cur := byID[tour[i]]
		next := byID[tour[(i+1)%len(tour)]]

		var legCoords orb.LineString
		srcNode, srcOK := o.NearestNode(cur.Snapped)
		tgtNode, tgtOK := o.NearestNode(next.Snapped)
		if srcOK && tgtOK {
			if nodes := o.NodePath(srcNode, tgtNode); nodes != nil {
				legCoords = o.PathCoords(nodes)
			}
		}
		if legCoords == nil {
			legCoords = orb.LineString{cur.Snapped, next.Snapped}
		}

		if i == 0 {
			line = append(line, legCoords...)
		} else if len(legCoords) > 0 {
			// Skip the joining vertex shared with the previous leg.
			line = append(line, legCoords[1:]...)
		}
	}

	return line
}
