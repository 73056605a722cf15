package sim

import (
	"image/color"
	"time"

	"github.com/san-kum/plexus/internal/particle"
)

// Edge distance bounds accepted by Reconfigure.
const (
	MinEdgeDistance = 10
	MaxEdgeDistance = 400
)

// Sentinel mouse coordinate used until the first mouse move.
const mouseSentinel = -100

// Params are the fixed parameters of a session.
type Params struct {
	Count              int
	Step               float64
	Radii              particle.Range
	MouseRadius        float64
	EdgeThickness      float64
	MinDistToDrawEdges int
	Interval           time.Duration

	Background    color.RGBA
	ParticleColor color.RGBA
	EdgeColor     color.RGBA
	MouseColor    color.RGBA
}

func DefaultParams() Params {
	return Params{
		Count:              250,
		Step:               2,
		Radii:              particle.DefaultRadii,
		MouseRadius:        50,
		EdgeThickness:      5.5,
		MinDistToDrawEdges: 100,
		Interval:           35 * time.Millisecond,
		Background:         color.RGBA{R: 255, A: 255},
		ParticleColor:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		EdgeColor:          color.RGBA{R: 255, G: 255, B: 255, A: 255},
		MouseColor:         color.RGBA{B: 255, A: 255},
	}
}

type Kind uint8

const (
	KindDisk Kind = iota
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindDisk:
		return "disk"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Command is one drawing instruction. Disks use X, Y as the center and
// Radius; lines run from (X, Y) to (X2, Y2) with stroke Width.
type Command struct {
	Kind   Kind
	X, Y   float64
	X2, Y2 float64
	Radius float64
	Width  float64
	Color  color.RGBA
}

// Frame is the ordered drawing output of one Render call.
type Frame struct {
	Width, Height int
	Background    color.RGBA
	Commands      []Command
}

func (f Frame) Empty() bool { return len(f.Commands) == 0 }

func (f Frame) Count(k Kind) int {
	n := 0
	for _, c := range f.Commands {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Stats counts what happened between two renders.
type Stats struct {
	Tick        int
	Respawns    int
	Deflections int
	Edges       int
	Collisions  int
	EdgeWidth   float64 // sum of edge stroke widths
}

// MeanEdgeWidth is zero when the frame had no edges.
func (s Stats) MeanEdgeWidth() float64 {
	if s.Edges == 0 {
		return 0
	}
	return s.EdgeWidth / float64(s.Edges)
}

type Metric interface {
	Name() string
	Observe(s Stats)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame, s Stats)
}
