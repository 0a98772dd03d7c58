package tsp

import "math"

// solveGreedyTwoOpt builds a tour with nearest-neighbor construction and
// improves it with first-improvement 2-opt local search. No size cap: this
// is the solver offered for larger point counts.
func solveGreedyTwoOpt(D [][]float64, ids []int, opts Options) (Result, error) {
	n := len(ids)

	if n == 1 {
		return Result{Tour: []int{ids[0]}, Length: 0}, nil
	}

	tour, greedyLength, lookups := nearestNeighborTour(D, n)
	improvedLength, swaps := twoOptImprove(D, tour, opts)

	improvementPct := 0.0
	if greedyLength > 0 {
		improvementPct = (greedyLength - improvedLength) / greedyLength * 100
	}

	return Result{
		Tour:   toIDs(tour, ids),
		Length: improvedLength,
		Telemetry: Telemetry{
			DistanceLookups: lookups,
			TwoOptSwaps:     swaps,
			GreedyLength:    greedyLength,
			ImprovedLength:  improvedLength,
			ImprovementPct:  improvementPct,
		},
	}, nil
}

// nearestNeighborTour starts at index 0 and repeatedly appends the closest
// unvisited index, ties broken by smallest index.
func nearestNeighborTour(D [][]float64, n int) (tour []int, length float64, lookups int) {
	visited := make([]bool, n)
	tour = make([]int, 0, n)

	current := 0
	visited[0] = true
	tour = append(tour, 0)

	for len(tour) < n {
		next := -1
		nearest := math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			lookups++
			if D[current][j] < nearest {
				nearest = D[current][j]
				next = j
			}
		}
		visited[next] = true
		tour = append(tour, next)
		length += nearest
		current = next
	}

	// Close the cycle.
	lookups++
	length += D[current][0]

	return tour, length, lookups
}

// twoOptImprove repeatedly scans edge pairs and applies the first strictly
// improving swap, restarting the sweep after each acceptance. The epsilon
// guard requires the improvement to exceed a relative tolerance so that
// floating-point noise cannot cycle.
func twoOptImprove(D [][]float64, tour []int, opts Options) (length float64, swaps int) {
	n := len(tour)
	length = tourLength(D, tour)

	improved := true
	sweeps := 0
	for improved && sweeps < opts.TwoOptMaxSweeps {
		improved = false
		sweeps++

		for i := 0; i < n-1 && !improved; i++ {
			for j := i + 2; j < n; j++ {
				oldCost := D[tour[i]][tour[i+1]] + D[tour[j]][tour[(j+1)%n]]
				newCost := D[tour[i]][tour[j]] + D[tour[i+1]][tour[(j+1)%n]]

				if oldCost-newCost > opts.Eps*math.Max(1, oldCost) {
					// Reverse the sub-tour between i+1 and j.
					for lo, hi := i+1, j; lo < hi; lo, hi = lo+1, hi-1 {
						tour[lo], tour[hi] = tour[hi], tour[lo]
					}
					length = tourLength(D, tour)
					swaps++
					improved = true
					break
				}
			}
		}
	}

	return length, swaps
}
