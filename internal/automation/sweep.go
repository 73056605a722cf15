package automation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/plexus/internal/experiment"
	"github.com/san-kum/plexus/internal/logging"
	"github.com/san-kum/plexus/internal/sim"
)

// Sweep runs Base at every edge distance from Min to Max, Runs seeds each.
type Sweep struct {
	Base experiment.Config
	Min  int
	Max  int
	Step int
	Runs int
}

type SweepResult struct {
	EdgeDistance   int
	MeanEdges      float64
	MeanCollisions float64
	MeanThickness  float64
}

func RunSweep(ctx context.Context, sw Sweep, registry *experiment.Registry, log *slog.Logger) ([]SweepResult, error) {
	if sw.Step <= 0 {
		return nil, fmt.Errorf("sweep step must be positive, got %d", sw.Step)
	}
	if sw.Min < sim.MinEdgeDistance || sw.Max > sim.MaxEdgeDistance || sw.Min > sw.Max {
		return nil, fmt.Errorf("sweep range [%d, %d] outside [%d, %d]",
			sw.Min, sw.Max, sim.MinEdgeDistance, sim.MaxEdgeDistance)
	}
	if sw.Runs <= 0 {
		sw.Runs = 1
	}
	if log == nil {
		log = logging.Discard()
	}

	newMetrics := func() []sim.Metric {
		ms, _ := registry.Metrics([]string{"edges", "collisions", "thickness"})
		return ms
	}

	results := make([]SweepResult, 0, (sw.Max-sw.Min)/sw.Step+1)
	for d := sw.Min; d <= sw.Max; d += sw.Step {
		cfg := sw.Base
		cfg.Params.MinDistToDrawEdges = d

		runs, err := experiment.NewEnsemble(cfg, sw.Runs, cfg.Seed, newMetrics).Run(ctx)
		if err != nil {
			return results, err
		}

		r := SweepResult{
			EdgeDistance:   d,
			MeanEdges:      experiment.MeanMetric(runs, "edges"),
			MeanCollisions: experiment.MeanMetric(runs, "collisions"),
			MeanThickness:  experiment.MeanMetric(runs, "thickness"),
		}
		results = append(results, r)
		log.Info("sweep point", "edge_distance", d, "edges", r.MeanEdges, "collisions", r.MeanCollisions)
	}

	return results, nil
}
