package routing

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// SnapFeatureCollection renders three features per snapped point: the
// original location, the snapped location, and the connecting line.
func SnapFeatureCollection(snapped []SnappedPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i := range snapped {
		sp := &snapped[i]

		orig := geojson.NewFeature(sp.Original)
		orig.Properties["id"] = sp.ID
		orig.Properties["type"] = "original"
		orig.Properties["snapped_lon"] = sp.Snapped[0]
		orig.Properties["snapped_lat"] = sp.Snapped[1]
		fc.Append(orig)

		snap := geojson.NewFeature(sp.Snapped)
		snap.Properties["id"] = sp.ID
		snap.Properties["type"] = "snapped"
		snap.Properties["original_lon"] = sp.Original[0]
		snap.Properties["original_lat"] = sp.Original[1]
		fc.Append(snap)

		line := geojson.NewFeature(orb.LineString{sp.Original, sp.Snapped})
		line.Properties["id"] = sp.ID
		line.Properties["type"] = "snap_line"
		fc.Append(line)
	}

	return fc
}

// PathFeature renders the materialized tour polyline with its metadata.
func PathFeature(res *SolveResult) *geojson.Feature {
	f := geojson.NewFeature(res.Path)
	f.Properties["algorithm"] = res.Algorithm
	f.Properties["tour"] = res.Tour
	f.Properties["length"] = res.Length
	f.Properties["telemetry"] = res.Telemetry
	return f
}
