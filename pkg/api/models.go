package api

import (
	"github.com/paulmach/orb/geojson"

	"tsp_router/pkg/routing"
	"tsp_router/pkg/tsp"
)

// BoundsJSON is the geographic extent of the loaded network.
type BoundsJSON struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// NetworkStatsJSON summarizes the loaded network.
type NetworkStatsJSON struct {
	Nodes  int        `json:"nodes"`
	Edges  int        `json:"edges"`
	Bounds BoundsJSON `json:"bounds"`
}

// NetworkResponse is the JSON response for POST /api/v1/network/load.
type NetworkResponse struct {
	Stats   NetworkStatsJSON           `json:"stats"`
	GeoJSON *geojson.FeatureCollection `json:"geojson"`
}

// SnappedPointJSON is one snapped point in the snap response.
type SnappedPointJSON struct {
	ID             int        `json:"id"`
	OriginalCoords [2]float64 `json:"original_coords"` // [lon, lat]
	SnappedCoords  [2]float64 `json:"snapped_coords"`  // [lon, lat]
	NearestEdge    [3]uint32  `json:"nearest_edge"`    // [u, v, key]
	DistanceToEdge float64    `json:"distance_to_edge"`
}

// PointsResponse is the JSON response for POST /api/v1/points/snap.
type PointsResponse struct {
	SnappedPoints []SnappedPointJSON         `json:"snapped_points"`
	GeoJSON       *geojson.FeatureCollection `json:"geojson"`
}

// SolveResponse is the JSON response for POST /api/v1/solve/{algorithm}.
type SolveResponse struct {
	Algorithm    string                 `json:"algorithm"`
	Tour         []int                  `json:"tour"`
	Length       float64                `json:"length"`
	RuntimeMs    float64                `json:"runtime_ms"`
	MatrixMs     float64                `json:"matrix_ms"`
	SolverMs     float64                `json:"solver_ms"`
	Telemetry    tsp.Telemetry          `json:"telemetry"`
	Segments     []routing.SegmentStat  `json:"segments"`
	TourStats    routing.TourStats      `json:"tour_stats"`
	Matrix       routing.MatrixStats    `json:"matrix"`
	PathGeoJSON  *geojson.Feature       `json:"path_geojson"`
	Warning      string                 `json:"warning,omitempty"`
}

// StatusResponse reports whether session state is populated.
type StatusResponse struct {
	Cached bool `json:"cached"`
	Nodes  int  `json:"nodes,omitempty"`
	Edges  int  `json:"edges,omitempty"`
	Count  int  `json:"count,omitempty"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
