package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/plexus/internal/logging"
	"github.com/san-kum/plexus/internal/particle"
)

// Session owns a particle population and the interaction state around it.
//
// A Session is driven from a single goroutine: the clock calls Tick and then
// Render, input handlers call OnMouseMove and OnMouseClick in between. It is
// not safe for concurrent use.
type Session struct {
	params    Params
	rng       *rand.Rand
	log       *slog.Logger
	metrics   []Metric
	observers []Observer

	particles     []particle.Particle
	width, height int
	mouseX        int
	mouseY        int
	indicator     bool
	minDist       int

	running bool
	done    bool
	redraw  bool
	ticked  bool
	ticks   int
	pending Stats
}

// New creates an idle session. A zero seed seeds from the clock.
func New(p Params, seed int64) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Session{
		params:  p,
		rng:     rand.New(rand.NewSource(seed)),
		log:     logging.Discard(),
		minDist: p.MinDistToDrawEdges,
		mouseX:  mouseSentinel,
		mouseY:  mouseSentinel,
		done:    true,
	}
}

func (s *Session) SetLogger(l *slog.Logger) {
	if l != nil {
		s.log = l
	}
}

func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Start recreates the population for a width x height canvas and resets the
// interaction state. The session must not already be running.
func (s *Session) Start(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("start %dx%d: %w", width, height, ErrEmptyCanvas)
	}
	s.width, s.height = width, height
	s.mouseX, s.mouseY = mouseSentinel, mouseSentinel
	s.particles = particle.Populate(s.params.Count, width, height, s.params.Radii, s.rng)
	s.indicator = false
	s.running = true
	s.done = false
	s.redraw = false
	s.ticked = false
	s.ticks = 0
	s.pending = Stats{}
	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Debug("session started", "particles", len(s.particles), "width", width, "height", height)
	return nil
}

// Stop marks the session done. The clock halts after observing Done and
// Render returns an empty frame until the next Start.
func (s *Session) Stop() {
	s.done = true
	s.running = false
	s.log.Debug("session stopped", "ticks", s.ticks)
}

// Reconfigure sets the edge distance threshold. Values outside
// [MinEdgeDistance, MaxEdgeDistance] are ignored.
func (s *Session) Reconfigure(minDist int) {
	if minDist < MinEdgeDistance || minDist > MaxEdgeDistance {
		s.log.Debug("edge distance rejected", "value", minDist)
		return
	}
	s.minDist = minDist
}

// Resize changes the bounds used by later ticks. Particles outside the new
// bounds respawn on their next advance.
func (s *Session) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize %dx%d: %w", width, height, ErrEmptyCanvas)
	}
	s.width, s.height = width, height
	return nil
}

func (s *Session) OnMouseMove(x, y int) {
	s.mouseX, s.mouseY = x, y
}

// OnMouseClick toggles the mouse indicator. The position is not used.
func (s *Session) OnMouseClick(x, y int) {
	s.indicator = !s.indicator
}

func (s *Session) Mouse() (int, int) { return s.mouseX, s.mouseY }
func (s *Session) Indicator() bool   { return s.indicator }
func (s *Session) EdgeDistance() int { return s.minDist }
func (s *Session) Running() bool     { return s.running }
func (s *Session) Done() bool        { return s.done }
func (s *Session) RedrawDue() bool   { return s.redraw }
func (s *Session) Ticks() int        { return s.ticks }
func (s *Session) Size() (int, int)  { return s.width, s.height }
func (s *Session) Params() Params    { return s.params }

// Status is the one-line summary shown next to the canvas.
func (s *Session) Status() string {
	if !s.ticked {
		return "Mouse coordinates: ..."
	}
	return fmt.Sprintf("Mouse coordinates: (%d, %d)", s.mouseX, s.mouseY)
}

// Particles returns a copy of the population.
func (s *Session) Particles() []particle.Particle {
	out := make([]particle.Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Place replaces the population. The caller controls positions, radii and
// headings; the particle count may differ from Params.Count.
func (s *Session) Place(ps []particle.Particle) {
	s.particles = make([]particle.Particle, len(ps))
	copy(s.particles, ps)
}

// Tick advances every particle one step and pushes particles near the mouse
// away from it. It does nothing unless the session is running.
func (s *Session) Tick() {
	if !s.running {
		return
	}

	step := s.params.Step
	for i := range s.particles {
		if s.particles[i].Advance(step, s.width, s.height, s.rng) {
			s.pending.Respawns++
		}
	}

	if s.mouseInside() {
		mr := s.params.MouseRadius
		mx, my := float64(s.mouseX), float64(s.mouseY)
		for i := range s.particles {
			p := &s.particles[i]
			side := float64(2 * p.R)
			if !circleHitsRect(mx, my, mr, float64(p.X), float64(p.Y), side, side) {
				continue
			}
			p.Angle += math.Pi
			if p.Advance(step+4*mr, s.width, s.height, s.rng) {
				s.pending.Respawns++
			}
			s.pending.Deflections++
		}
	}

	s.ticks++
	s.ticked = true
	s.redraw = true
	s.log.Log(context.Background(), logging.LevelTrace, "tick", "n", s.ticks, "respawns", s.pending.Respawns)
}

func (s *Session) mouseInside() bool {
	return s.mouseX > 0 && s.mouseX < s.width && s.mouseY > 0 && s.mouseY < s.height
}

// Render builds the frame for the current state: particle disks, then edges
// between close particles, then the mouse indicator. The pairwise pass also
// resolves collisions, so headings change here and only here.
func (s *Session) Render() Frame {
	if !s.running {
		return Frame{}
	}

	n := len(s.particles)
	f := Frame{
		Width:      s.width,
		Height:     s.height,
		Background: s.params.Background,
		Commands:   make([]Command, 0, n+n*2+1),
	}

	for _, p := range s.particles {
		cx, cy := p.OffsetCenter()
		f.Commands = append(f.Commands, Command{
			Kind:   KindDisk,
			X:      cx,
			Y:      cy,
			Radius: float64(p.R),
			Color:  s.params.ParticleColor,
		})
	}

	stats := s.pending
	threshold := float64(s.minDist)
	for i := 0; i < n; i++ {
		pi := &s.particles[i]
		xi, yi := pi.OffsetCenter()
		for j := i + 1; j < n; j++ {
			pj := &s.particles[j]
			xj, yj := pj.OffsetCenter()
			d := math.Hypot(xi-xj, yi-yj)

			if d < threshold {
				w := EdgeWidth(d, threshold, s.params.EdgeThickness)
				f.Commands = append(f.Commands, Command{
					Kind:  KindLine,
					X:     xi,
					Y:     yi,
					X2:    xj,
					Y2:    yj,
					Width: w,
					Color: s.params.EdgeColor,
				})
				stats.Edges++
				stats.EdgeWidth += w
			}

			if d < float64(pi.R+pj.R) {
				pi.Angle, pj.Angle = reflect(pi.Angle, pj.Angle)
				stats.Collisions++
			}
		}
	}

	if s.indicator {
		f.Commands = append(f.Commands, Command{
			Kind:   KindDisk,
			X:      float64(s.mouseX),
			Y:      float64(s.mouseY),
			Radius: s.params.MouseRadius,
			Color:  s.params.MouseColor,
		})
	}

	s.redraw = false
	stats.Tick = s.ticks
	s.pending = Stats{}
	for _, m := range s.metrics {
		m.Observe(stats)
	}
	for _, o := range s.observers {
		o.OnFrame(f, stats)
	}
	return f
}
