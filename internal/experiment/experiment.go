package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/plexus/internal/sim"
)

// Config describes one headless run. Preset is recorded for bookkeeping; the
// caller resolves it into Params.
type Config struct {
	Preset string
	Params sim.Params
	Width  int
	Height int
	Ticks  int
	Seed   int64
}

type Result struct {
	Stats   []sim.Stats
	Metrics map[string]float64
	Final   sim.Frame
	Ticks   int
}

type Experiment struct {
	cfg     Config
	session *sim.Session
	rec     *recorder
	metrics []sim.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(metrics []sim.Metric) error {
	if e.cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", e.cfg.Ticks)
	}
	e.session = sim.New(e.cfg.Params, e.cfg.Seed)
	e.rec = &recorder{}
	e.session.AddObserver(e.rec)
	e.metrics = metrics
	for _, m := range metrics {
		e.session.AddMetric(m)
	}
	return nil
}

// Session returns the underlying session for adding observers or placing
// particles before Run.
func (e *Experiment) Session() *sim.Session {
	return e.session
}

func (e *Experiment) SetLogger(l *slog.Logger) {
	if e.session != nil {
		e.session.SetLogger(l)
	}
}

// Run starts the session and performs Ticks tick/render cycles. On
// cancellation it returns the partial result with the context error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.session == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := e.session.Start(e.cfg.Width, e.cfg.Height); err != nil {
		return nil, err
	}
	return e.run(ctx)
}

// Continue runs Ticks more cycles on an already started session, keeping
// whatever Place or Reconfigure did since Start.
func (e *Experiment) Continue(ctx context.Context) (*Result, error) {
	if e.session == nil || !e.session.Running() {
		return nil, fmt.Errorf("experiment not running")
	}
	return e.run(ctx)
}

// RunPaced is Run driven by the wall clock: one cycle per interval, as an
// interactive session would see it. The session is stopped after Ticks
// renders.
func (e *Experiment) RunPaced(ctx context.Context, interval time.Duration) (*Result, error) {
	if e.session == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := e.session.Start(e.cfg.Width, e.cfg.Height); err != nil {
		return nil, err
	}

	e.rec.stats = make([]sim.Stats, 0, e.cfg.Ticks)
	result := &Result{Metrics: make(map[string]float64)}

	err := sim.Run(ctx, e.session, interval, func(f sim.Frame) {
		result.Final = f
		result.Ticks++
		if result.Ticks >= e.cfg.Ticks {
			e.session.Stop()
		}
	})
	e.finish(result)
	return result, err
}

func (e *Experiment) run(ctx context.Context) (*Result, error) {
	e.rec.stats = make([]sim.Stats, 0, e.cfg.Ticks)
	result := &Result{Metrics: make(map[string]float64)}

	for i := 0; i < e.cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			e.finish(result)
			return result, ctx.Err()
		default:
		}

		e.session.Tick()
		result.Final = e.session.Render()
		result.Ticks++
	}

	e.finish(result)
	return result, nil
}

func (e *Experiment) finish(r *Result) {
	r.Stats = e.rec.stats
	for _, m := range e.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

type recorder struct {
	stats []sim.Stats
}

func (r *recorder) OnFrame(_ sim.Frame, s sim.Stats) {
	r.stats = append(r.stats, s)
}
