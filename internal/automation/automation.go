package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/plexus/internal/logging"
	"github.com/san-kum/plexus/internal/particle"
	"github.com/san-kum/plexus/internal/sim"
	"gopkg.in/yaml.v3"
)

// ErrUnknownAction indicates a scenario step whose action is not recognized.
var ErrUnknownAction = errors.New("automation: unknown action")

// ScenarioError locates a failing step. Step is 1-based.
type ScenarioError struct {
	Step   int
	Action string
	Err    error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Action, e.Err)
}

func (e *ScenarioError) Unwrap() error { return e.Err }

// Scenario is a scripted sequence of session events.
type Scenario struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description" toml:"description"`
	Seed        int64  `yaml:"seed" toml:"seed"`
	Width       int    `yaml:"width" toml:"width"`
	Height      int    `yaml:"height" toml:"height"`
	Steps       []Step `yaml:"steps" toml:"steps"`
}

// Step is one event. Which fields matter depends on Action:
//
//	start        width, height (scenario canvas when zero)
//	stop
//	tick         count (default 1): clock cycles of Tick then Render
//	render       one Render without ticking
//	move         x, y
//	click        x, y
//	reconfigure  value
//	resize       width, height
//	place        particles
type Step struct {
	Action    string         `yaml:"action" toml:"action"`
	Count     int            `yaml:"count,omitempty" toml:"count,omitempty"`
	X         int            `yaml:"x,omitempty" toml:"x,omitempty"`
	Y         int            `yaml:"y,omitempty" toml:"y,omitempty"`
	Value     int            `yaml:"value,omitempty" toml:"value,omitempty"`
	Width     int            `yaml:"width,omitempty" toml:"width,omitempty"`
	Height    int            `yaml:"height,omitempty" toml:"height,omitempty"`
	Particles []ParticleSpec `yaml:"particles,omitempty" toml:"particles,omitempty"`
}

type ParticleSpec struct {
	X     int     `yaml:"x" toml:"x"`
	Y     int     `yaml:"y" toml:"y"`
	R     int     `yaml:"r" toml:"r"`
	Angle float64 `yaml:"angle" toml:"angle"`
}

// Result collects every frame rendered while the scenario ran.
type Result struct {
	Frames    []sim.Frame
	Stats     []sim.Stats
	Particles []particle.Particle
	Status    string
}

func (r *Result) OnFrame(f sim.Frame, s sim.Stats) {
	r.Frames = append(r.Frames, f)
	r.Stats = append(r.Stats, s)
}

// LoadScenario reads a YAML or TOML scenario, chosen by file extension.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &scenario); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

// RunScenario replays the steps against a fresh session built from params.
// A failing step stops the run; the partial result is returned with a
// *ScenarioError.
func RunScenario(ctx context.Context, sc *Scenario, params sim.Params, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = logging.Discard()
	}

	s := sim.New(params, sc.Seed)
	s.SetLogger(log)
	result := &Result{}
	s.AddObserver(result)

	for i, step := range sc.Steps {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		log.Debug("scenario step", "scenario", sc.Name, "step", i+1, "action", step.Action)
		if err := apply(ctx, s, sc, step); err != nil {
			result.finish(s)
			return result, &ScenarioError{Step: i + 1, Action: step.Action, Err: err}
		}
	}

	result.finish(s)
	return result, nil
}

func (r *Result) finish(s *sim.Session) {
	r.Particles = s.Particles()
	r.Status = s.Status()
}

func apply(ctx context.Context, s *sim.Session, sc *Scenario, step Step) error {
	switch step.Action {
	case "start":
		w, h := step.Width, step.Height
		if w == 0 && h == 0 {
			w, h = sc.Width, sc.Height
		}
		return s.Start(w, h)
	case "stop":
		s.Stop()
	case "tick":
		n := step.Count
		if n <= 0 {
			n = 1
		}
		for j := 0; j < n; j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.Tick()
			if s.RedrawDue() {
				s.Render()
			}
		}
	case "render":
		s.Render()
	case "move":
		s.OnMouseMove(step.X, step.Y)
	case "click":
		s.OnMouseClick(step.X, step.Y)
	case "reconfigure":
		s.Reconfigure(step.Value)
	case "resize":
		return s.Resize(step.Width, step.Height)
	case "place":
		ps := make([]particle.Particle, len(step.Particles))
		for j, p := range step.Particles {
			ps[j] = particle.Particle{X: p.X, Y: p.Y, R: p.R, Angle: p.Angle}
		}
		s.Place(ps)
	default:
		return fmt.Errorf("%q: %w", step.Action, ErrUnknownAction)
	}
	return nil
}
