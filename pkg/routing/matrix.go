package routing

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildCostMatrix fills the n×n symmetric matrix of shortest-path distances
// between snapped points, in meters. Rows and columns follow the input
// order; the returned id list mirrors it. Unreachable pairs hold +Inf.
//
// Each snapped point is resolved to its nearest node once; the pairwise
// Dijkstra queries are independent and run concurrently. Every pair writes
// only its own two cells, so the result is identical to a serial build.
func BuildCostMatrix(ctx context.Context, o *Oracle, snapped []SnappedPoint) ([][]float64, []int, error) {
	n := len(snapped)

	ids := make([]int, n)
	nodes := make([]uint32, n)
	for i, sp := range snapped {
		ids[i] = sp.ID
		node, ok := o.NearestNode(sp.Snapped)
		if !ok {
			return nil, nil, ErrEmptyGraph
		}
		nodes[i] = node
	}

	D := make([][]float64, n)
	for i := range D {
		D[i] = make([]float64, n)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				var d float64
				if nodes[i] == nodes[j] {
					d = 0
				} else {
					d = o.NodeDistance(nodes[i], nodes[j])
				}
				D[i][j] = d
				D[j][i] = d
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	return D, ids, nil
}

// MatrixStats is the result of inspecting a cost matrix.
type MatrixStats struct {
	Symmetric    bool    `json:"symmetric"`
	DiagonalZero bool    `json:"diagonal_zero"`
	HasNegative  bool    `json:"has_negative"`
	HasInfinite  bool    `json:"has_infinite"`
	NumPoints    int     `json:"num_points"`
	MinDistance  float64 `json:"min_distance"`
	MaxDistance  float64 `json:"max_distance"`
	AvgDistance  float64 `json:"avg_distance"`
	TotalPairs   int     `json:"total_pairs"`
}

// ValidateMatrix inspects a cost matrix for the solver preconditions and
// computes min/max/average over the finite off-diagonal entries.
func ValidateMatrix(D [][]float64) MatrixStats {
	n := len(D)
	stats := MatrixStats{
		Symmetric:    true,
		DiagonalZero: true,
		NumPoints:    n,
		TotalPairs:   n * (n - 1) / 2,
		MinDistance:  math.Inf(1),
	}

	const tol = 1e-9
	var sum float64
	var count int

	for i := 0; i < n; i++ {
		if math.Abs(D[i][i]) > tol {
			stats.DiagonalZero = false
		}
		for j := 0; j < n; j++ {
			v := D[i][j]
			if math.Abs(v-D[j][i]) > tol {
				stats.Symmetric = false
			}
			if v < 0 {
				stats.HasNegative = true
			}
			if math.IsInf(v, 0) {
				stats.HasInfinite = true
				continue
			}
			if i != j {
				sum += v
				count++
				if v < stats.MinDistance {
					stats.MinDistance = v
				}
				if v > stats.MaxDistance {
					stats.MaxDistance = v
				}
			}
		}
	}

	if count > 0 {
		stats.AvgDistance = sum / float64(count)
	} else {
		stats.MinDistance = 0
	}

	return stats
}
