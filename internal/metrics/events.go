package metrics

import "github.com/san-kum/plexus/internal/sim"

// Counter totals one per-frame event count.
type Counter struct {
	name  string
	pick  func(sim.Stats) int
	total int
}

func NewCollisions() *Counter {
	return &Counter{name: "collisions", pick: func(s sim.Stats) int { return s.Collisions }}
}

func NewRespawns() *Counter {
	return &Counter{name: "respawns", pick: func(s sim.Stats) int { return s.Respawns }}
}

func NewDeflections() *Counter {
	return &Counter{name: "deflections", pick: func(s sim.Stats) int { return s.Deflections }}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(s sim.Stats) {
	c.total += c.pick(s)
}

func (c *Counter) Value() float64 {
	return float64(c.total)
}

func (c *Counter) Reset() {
	c.total = 0
}
