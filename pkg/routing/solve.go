package routing

import (
	"context"
	"log/slog"
	"time"

	"github.com/paulmach/orb"

	"tsp_router/pkg/graph"
	"tsp_router/pkg/tsp"
)

// SegmentStat reports one leg of the returned tour.
type SegmentStat struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Distance float64 `json:"distance"`
}

// TourStats aggregates the leg distances of the returned tour. Unlike the
// cost-matrix stats, which cover every pairwise distance, these cover only
// the n legs actually traveled.
type TourStats struct {
	MinSegment float64 `json:"min_segment"`
	AvgSegment float64 `json:"avg_segment"`
	MaxSegment float64 `json:"max_segment"`
}

// SolveResult is the full output of one solve: the tour, its length in
// meters, solver telemetry, the materialized polyline, matrix inspection
// stats and per-leg distances.
type SolveResult struct {
	Algorithm    string
	Tour         []int
	Length       float64
	Telemetry    tsp.Telemetry
	Path         orb.LineString
	MatrixStats  MatrixStats
	Segments     []SegmentStat
	TourStats    TourStats
	MatrixMillis float64
	SolverMillis float64
}

// Solve runs the full pipeline for a set of snapped points: cost matrix →
// selected solver → path materialization. The +Inf precondition is enforced
// by the solver, which converts it to tsp.ErrDisconnected.
func Solve(ctx context.Context, g *graph.Graph, snapped []SnappedPoint, algo tsp.Algorithm, opts tsp.Options) (*SolveResult, error) {
	if len(snapped) == 0 {
		return nil, tsp.ErrEmptyInput
	}

	oracle := NewOracle(g)

	matrixStart := time.Now()
	D, ids, err := BuildCostMatrix(ctx, oracle, snapped)
	if err != nil {
		return nil, err
	}
	matrixMillis := float64(time.Since(matrixStart).Microseconds()) / 1000

	stats := ValidateMatrix(D)
	slog.Debug("cost matrix built",
		"points", stats.NumPoints,
		"pairs", stats.TotalPairs,
		"infinite", stats.HasInfinite,
		"ms", matrixMillis)

	solverStart := time.Now()
	result, err := tsp.Solve(D, ids, algo, opts)
	if err != nil {
		return nil, err
	}
	solverMillis := float64(time.Since(solverStart).Microseconds()) / 1000

	path := MaterializePath(oracle, snapped, result.Tour)
	segments := segmentStats(D, ids, result.Tour)

	return &SolveResult{
		Algorithm:    algo.String(),
		Tour:         result.Tour,
		Length:       result.Length,
		Telemetry:    result.Telemetry,
		Path:         path,
		MatrixStats:  stats,
		Segments:     segments,
		TourStats:    aggregateSegments(segments),
		MatrixMillis: matrixMillis,
		SolverMillis: solverMillis,
	}, nil
}

// segmentStats computes per-leg distances over the returned tour, including
// the closing leg.
func segmentStats(D [][]float64, ids []int, tour []int) []SegmentStat {
	idToIdx := make(map[int]int, len(ids))
	for i, id := range ids {
		idToIdx[id] = i
	}

	segments := make([]SegmentStat, 0, len(tour))
	for i := range tour {
		from := tour[i]
		to := tour[(i+1)%len(tour)]
		segments = append(segments, SegmentStat{
			From:     from,
			To:       to,
			Distance: D[idToIdx[from]][idToIdx[to]],
		})
	}
	return segments
}

// aggregateSegments computes min/avg/max over the tour legs.
func aggregateSegments(segments []SegmentStat) TourStats {
	if len(segments) == 0 {
		return TourStats{}
	}

	stats := TourStats{
		MinSegment: segments[0].Distance,
		MaxSegment: segments[0].Distance,
	}
	var sum float64
	for _, seg := range segments {
		sum += seg.Distance
		if seg.Distance < stats.MinSegment {
			stats.MinSegment = seg.Distance
		}
		if seg.Distance > stats.MaxSegment {
			stats.MaxSegment = seg.Distance
		}
	}
	stats.AvgSegment = sum / float64(len(segments))
	return stats
}
