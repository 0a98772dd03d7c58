// Command solve runs the full pipeline offline: load an OSM XML network,
// snap a points file, solve a tour with the chosen algorithm, and write the
// path GeoJSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tsp_router/pkg/graph"
	"tsp_router/pkg/osm"
	"tsp_router/pkg/points"
	"tsp_router/pkg/routing"
	"tsp_router/pkg/tsp"
)

func main() {
	osmPath := flag.String("osm", "", "Path to OSM XML network file")
	pointsPath := flag.String("points", "", "Path to CSV/TSV points file (id, X, Y)")
	algoName := flag.String("algo", "greedy2opt", "Algorithm: exhaustive, heldkarp, greedy2opt")
	outPath := flag.String("out", "", "Write path GeoJSON here (default stdout)")
	flag.Parse()

	if err := run(context.Background(), *osmPath, *pointsPath, *algoName, *outPath); err != nil {
		slog.Error("solve failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, osmPath, pointsPath, algoName, outPath string) error {
	algo, ok := tsp.ParseAlgorithm(algoName)
	if !ok {
		return fmt.Errorf("unknown algorithm %q", algoName)
	}

	osmData, err := os.ReadFile(osmPath)
	if err != nil {
		return fmt.Errorf("reading network: %w", err)
	}
	pointData, err := os.ReadFile(pointsPath)
	if err != nil {
		return fmt.Errorf("reading points: %w", err)
	}

	start := time.Now()
	parsed, err := osm.Parse(ctx, osmData)
	if err != nil {
		return err
	}
	g := graph.Build(parsed)
	slog.Info("network loaded", "nodes", g.NumNodes, "edges", len(g.Edges),
		"ms", time.Since(start).Milliseconds())

	comp := graph.Components(g)
	if comp.Count > 1 {
		slog.Warn("network is not fully connected", "components", comp.Count)
	}

	raw, err := points.Parse(pointData)
	if err != nil {
		return err
	}

	snapped, err := routing.NewSnapper(g).SnapAll(raw)
	if err != nil {
		return err
	}
	slog.Info("points snapped", "count", len(snapped))

	result, err := routing.Solve(ctx, g, snapped, algo, tsp.DefaultOptions())
	if err != nil {
		return err
	}

	fmt.Printf("algorithm: %s\n", result.Algorithm)
	fmt.Printf("tour:      %v\n", result.Tour)
	fmt.Printf("length:    %.2f m\n", result.Length)
	fmt.Printf("matrix:    %.2f ms, solver: %.2f ms\n", result.MatrixMillis, result.SolverMillis)
	for _, seg := range result.Segments {
		fmt.Printf("  %d -> %d  %.2f m\n", seg.From, seg.To, seg.Distance)
	}
	fmt.Printf("segments:  min %.2f / avg %.2f / max %.2f m\n",
		result.TourStats.MinSegment, result.TourStats.AvgSegment, result.TourStats.MaxSegment)

	out, err := json.MarshalIndent(routing.PathFeature(result), "", "  ")
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(outPath, out, 0o644)
}
