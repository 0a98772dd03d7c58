package graph

import (
	"github.com/paulmach/orb/geojson"
)

// EdgesFeatureCollection renders every edge as a GeoJSON LineString feature
// with u, v, key and length properties. Coordinates are [lon, lat].
func EdgesFeatureCollection(g *Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i := range g.Edges {
		e := &g.Edges[i]
		f := geojson.NewFeature(g.EdgeGeometry(e))
		f.Properties["u"] = e.U
		f.Properties["v"] = e.V
		f.Properties["key"] = e.Key
		f.Properties["length"] = e.Length
		fc.Append(f)
	}

	return fc
}
