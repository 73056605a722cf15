package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["edges"] = func() sim.Metric { return metrics.NewEdges() }
	r.metrics["thickness"] = func() sim.Metric { return metrics.NewThickness() }
	r.metrics["collisions"] = func() sim.Metric { return metrics.NewCollisions() }
	r.metrics["respawns"] = func() sim.Metric { return metrics.NewRespawns() }
	r.metrics["deflections"] = func() sim.Metric { return metrics.NewDeflections() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Metrics builds a fresh metric per name.
func (r *Registry) Metrics(names []string) ([]sim.Metric, error) {
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	ms, _ := r.Metrics(r.ListMetrics())
	return ms
}
