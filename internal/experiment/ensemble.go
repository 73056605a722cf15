package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/plexus/internal/sim"
)

// Ensemble runs the same config under consecutive seeds. Every run gets its
// own session and its own metrics from newMetrics.
type Ensemble struct {
	cfg        Config
	numRuns    int
	seedStart  int64
	newMetrics func() []sim.Metric
}

func NewEnsemble(cfg Config, numRuns int, seedStart int64, newMetrics func() []sim.Metric) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			var ms []sim.Metric
			if e.newMetrics != nil {
				ms = e.newMetrics()
			}

			exp := New(cfgCopy)
			if err := exp.Setup(ms); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MeanMetric averages a named metric across results. Results without the
// metric are skipped.
func MeanMetric(results []*Result, name string) float64 {
	sum, n := 0.0, 0
	for _, r := range results {
		if r == nil {
			continue
		}
		v, ok := r.Metrics[name]
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
