package tsp

import (
	"fmt"
	"math"
)

// solveExhaustive enumerates all (n-1)! permutations of the non-anchor
// indices in lexicographic order and keeps the minimum-length cycle.
// Anchoring index 0 removes rotational symmetry; among equal-cost tours the
// first one found wins.
func solveExhaustive(D [][]float64, ids []int) (Result, error) {
	n := len(ids)

	if n > MaxExhaustiveN {
		return Result{}, fmt.Errorf("%w: exhaustive supports at most %d points, got %d",
			ErrSizeExceeded, MaxExhaustiveN, n)
	}

	if n == 1 {
		return Result{
			Tour:      []int{ids[0]},
			Length:    0,
			Telemetry: Telemetry{Permutations: 1},
		}, nil
	}

	// perm holds the non-anchor indices 1..n-1.
	perm := make([]int, n-1)
	for i := range perm {
		perm[i] = i + 1
	}

	tour := make([]int, n)
	bestTour := make([]int, n)
	bestLength := math.Inf(1)
	var permutations uint64

	for {
		tour[0] = 0
		copy(tour[1:], perm)

		length := tourLength(D, tour)
		permutations++

		if length < bestLength {
			bestLength = length
			copy(bestTour, tour)
		}

		if !nextPermutation(perm) {
			break
		}
	}

	return Result{
		Tour:      toIDs(bestTour, ids),
		Length:    bestLength,
		Telemetry: Telemetry{Permutations: permutations},
	}, nil
}

// nextPermutation advances p to its lexicographic successor in place.
// Returns false when p was the last permutation.
func nextPermutation(p []int) bool {
	// Find the rightmost ascent.
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	// Find the rightmost element greater than p[i] and swap.
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	// Reverse the suffix.
	for lo, hi := i+1, len(p)-1; lo < hi; lo, hi = lo+1, hi-1 {
		p[lo], p[hi] = p[hi], p[lo]
	}
	return true
}
