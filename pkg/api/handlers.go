package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"tsp_router/pkg/config"
	"tsp_router/pkg/graph"
	"tsp_router/pkg/osm"
	"tsp_router/pkg/points"
	"tsp_router/pkg/routing"
	"tsp_router/pkg/session"
	"tsp_router/pkg/tsp"
)

// Boundary size guards. The exhaustive and heldkarp entry points truncate
// the point list with an advisory warning instead of failing; the stricter
// in-solver caps only fire when these guards are bypassed.
const (
	truncateExhaustive = 12
	truncateHeldKarp   = 20
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	sess *session.Session
	cfg  config.Config
}

// NewHandlers creates handlers over shared session state.
func NewHandlers(sess *session.Session, cfg config.Config) *Handlers {
	return &Handlers{sess: sess, cfg: cfg}
}

// HandleLoadNetwork handles POST /api/v1/network/load. The request body is
// an OSM XML document.
func (h *Handlers) HandleLoadNetwork(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "bad_network_file", "upload too large")
		return
	}

	result, err := osm.Parse(r.Context(), body)
	if err != nil {
		writeFailure(w, err)
		return
	}

	g := graph.Build(result)

	comp := graph.Components(g)
	if comp.Count > 1 {
		slog.Warn("network is not fully connected",
			"components", comp.Count,
			"largest", comp.LargestSize,
			"nodes", g.NumNodes)
	}

	net := &session.Network{
		Graph:   g,
		GeoJSON: graph.EdgesFeatureCollection(g),
		Bounds:  g.ComputeBounds(),
		Snapper: routing.NewSnapper(g),
	}
	h.sess.SetNetwork(net)

	slog.Info("network loaded", "nodes", g.NumNodes, "edges", len(g.Edges))

	writeJSON(w, http.StatusOK, NetworkResponse{
		Stats: NetworkStatsJSON{
			Nodes: int(g.NumNodes),
			Edges: len(g.Edges),
			Bounds: BoundsJSON{
				MinLat: net.Bounds.MinLat,
				MaxLat: net.Bounds.MaxLat,
				MinLon: net.Bounds.MinLon,
				MaxLon: net.Bounds.MaxLon,
			},
		},
		GeoJSON: net.GeoJSON,
	})
}

// HandleNetworkStatus handles GET /api/v1/network/status.
func (h *Handlers) HandleNetworkStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{}
	if net := h.sess.Network(); net != nil {
		resp.Cached = true
		resp.Nodes = int(net.Graph.NumNodes)
		resp.Edges = len(net.Graph.Edges)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSnapPoints handles POST /api/v1/points/snap. The request body is a
// CSV/TSV document with id, X, Y columns.
func (h *Handlers) HandleSnapPoints(w http.ResponseWriter, r *http.Request) {
	net := h.sess.Network()
	if net == nil {
		writeError(w, http.StatusBadRequest, "empty_graph", "no network loaded")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "bad_points_file", "upload too large")
		return
	}

	raw, err := points.Parse(body)
	if err != nil {
		writeFailure(w, err)
		return
	}

	snapped, err := net.Snapper.SnapAll(raw)
	if err != nil {
		writeFailure(w, err)
		return
	}
	h.sess.SetPoints(snapped)

	slog.Info("points snapped", "count", len(snapped))

	resp := PointsResponse{
		SnappedPoints: make([]SnappedPointJSON, len(snapped)),
		GeoJSON:       routing.SnapFeatureCollection(snapped),
	}
	for i, sp := range snapped {
		resp.SnappedPoints[i] = SnappedPointJSON{
			ID:             sp.ID,
			OriginalCoords: [2]float64{sp.Original[0], sp.Original[1]},
			SnappedCoords:  [2]float64{sp.Snapped[0], sp.Snapped[1]},
			NearestEdge:    [3]uint32{sp.EdgeU, sp.EdgeV, sp.EdgeKey},
			DistanceToEdge: sp.Offset,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandlePointsStatus handles GET /api/v1/points/status.
func (h *Handlers) HandlePointsStatus(w http.ResponseWriter, r *http.Request) {
	pts := h.sess.Points()
	writeJSON(w, http.StatusOK, StatusResponse{
		Cached: pts != nil,
		Count:  len(pts),
	})
}

// HandleSolve handles POST /api/v1/solve/{algorithm}.
func (h *Handlers) HandleSolve(w http.ResponseWriter, r *http.Request) {
	algo, ok := tsp.ParseAlgorithm(r.PathValue("algorithm"))
	if !ok {
		writeError(w, http.StatusNotFound, "invalid_request",
			"algorithm must be one of exhaustive, heldkarp, greedy2opt")
		return
	}

	net := h.sess.Network()
	if net == nil {
		writeError(w, http.StatusBadRequest, "empty_graph", "no network loaded")
		return
	}
	snapped := h.sess.Points()
	if len(snapped) == 0 {
		writeError(w, http.StatusBadRequest, "empty_input",
			"no points available; upload and snap points first")
		return
	}

	snapped, warning := applySizeGuard(algo, snapped)
	if algo == tsp.GreedyTwoOpt && len(snapped) > h.cfg.GreedyAdvisoryAt {
		slog.Warn("large point count for greedy2opt; solve may be slow",
			"points", len(snapped), "advisory_at", h.cfg.GreedyAdvisoryAt)
	}

	opts := tsp.DefaultOptions()
	opts.TwoOptMaxSweeps = h.cfg.TwoOptMaxSweeps

	start := time.Now()
	result, err := routing.Solve(r.Context(), net.Graph, snapped, algo, opts)
	if err != nil {
		writeFailure(w, err)
		return
	}
	runtimeMs := float64(time.Since(start).Microseconds()) / 1000

	slog.Info("tour solved",
		"algorithm", result.Algorithm,
		"points", len(result.Tour),
		"length_m", result.Length,
		"runtime_ms", runtimeMs)

	writeJSON(w, http.StatusOK, SolveResponse{
		Algorithm:   result.Algorithm,
		Tour:        result.Tour,
		Length:      result.Length,
		RuntimeMs:   runtimeMs,
		MatrixMs:    result.MatrixMillis,
		SolverMs:    result.SolverMillis,
		Telemetry:   result.Telemetry,
		Segments:    result.Segments,
		TourStats:   result.TourStats,
		Matrix:      result.MatrixStats,
		PathGeoJSON: routing.PathFeature(result),
		Warning:     warning,
	})
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// applySizeGuard truncates the point list for the exact solvers and
// returns an advisory warning naming the ignored range.
func applySizeGuard(algo tsp.Algorithm, snapped []routing.SnappedPoint) ([]routing.SnappedPoint, string) {
	limit := 0
	switch algo {
	case tsp.Exhaustive:
		limit = truncateExhaustive
	case tsp.HeldKarp:
		limit = truncateHeldKarp
	default:
		return snapped, ""
	}

	if len(snapped) <= limit {
		return snapped, ""
	}

	warning := fmt.Sprintf("points %d–%d ignored: %s accepts at most %d points",
		limit+1, len(snapped), algo, limit)
	slog.Warn("point list truncated at solve boundary",
		"algorithm", algo.String(), "limit", limit, "submitted", len(snapped))
	return snapped[:limit], warning
}

// writeFailure maps a pipeline error to its stable wire code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := errorCode(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
	}
	writeError(w, status, code, err.Error())
}

// errorCode maps the sentinel taxonomy to HTTP status and wire code.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, osm.ErrBadNetworkFile):
		return http.StatusBadRequest, "bad_network_file"
	case errors.Is(err, points.ErrBadPointsFile):
		return http.StatusBadRequest, "bad_points_file"
	case errors.Is(err, routing.ErrEmptyGraph):
		return http.StatusBadRequest, "empty_graph"
	case errors.Is(err, tsp.ErrEmptyInput):
		return http.StatusBadRequest, "empty_input"
	case errors.Is(err, tsp.ErrDisconnected):
		return http.StatusBadRequest, "disconnected"
	case errors.Is(err, tsp.ErrSizeExceeded):
		return http.StatusBadRequest, "size_exceeded"
	}
	return http.StatusInternalServerError, "internal_error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}
