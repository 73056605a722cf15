package metrics

import "github.com/san-kum/plexus/internal/sim"

// Edges is the mean number of edges drawn per frame.
type Edges struct {
	name    string
	total   int
	samples int
}

func NewEdges() *Edges {
	return &Edges{
		name: "edges",
	}
}

func (e *Edges) Name() string { return e.name }

func (e *Edges) Observe(s sim.Stats) {
	e.total += s.Edges
	e.samples++
}

func (e *Edges) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.total) / float64(e.samples)
}

func (e *Edges) Reset() {
	e.total = 0
	e.samples = 0
}

// Thickness is the mean stroke width over every edge drawn, not per frame.
type Thickness struct {
	name  string
	sum   float64
	edges int
}

func NewThickness() *Thickness {
	return &Thickness{
		name: "thickness",
	}
}

func (t *Thickness) Name() string { return t.name }

func (t *Thickness) Observe(s sim.Stats) {
	t.sum += s.EdgeWidth
	t.edges += s.Edges
}

func (t *Thickness) Value() float64 {
	if t.edges == 0 {
		return 0
	}
	return t.sum / float64(t.edges)
}

func (t *Thickness) Reset() {
	t.sum = 0
	t.edges = 0
}
