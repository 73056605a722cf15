// Package particle holds the kinematic state of a single particle and its
// motion rule.
//
// Positions are integer pixels. A particle that leaves the canvas is not
// removed; it respawns at a fresh random position and heading and keeps its
// radius.
package particle

import "math"

// Rand is the subset of *math/rand.Rand the particle package draws from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Range is an inclusive radius range.
type Range struct {
	Min, Max int
}

// DefaultRadii matches a maximum particle radius of 8: [2, 8+1].
var DefaultRadii = Range{Min: 2, Max: 9}

type Particle struct {
	X, Y  int
	R     int
	Angle float64 // radians
}

// New returns a particle with a uniform position in [0,width) x [0,height),
// a uniform radius in radii and a uniform heading in [0, 2π).
func New(width, height int, radii Range, rng Rand) Particle {
	span := radii.Max - radii.Min + 1
	if span < 1 {
		span = 1
	}
	return Particle{
		X:     rng.Intn(width),
		Y:     rng.Intn(height),
		R:     radii.Min + rng.Intn(span),
		Angle: rng.Float64() * 2 * math.Pi,
	}
}

// Advance moves the particle step pixels along its heading, truncating toward
// zero. A result outside (0,width] x (0,height] respawns the particle; the
// return value reports whether that happened.
func (p *Particle) Advance(step float64, width, height int, rng Rand) bool {
	p.X = int(float64(p.X) + math.Cos(p.Angle)*step)
	p.Y = int(float64(p.Y) + math.Sin(p.Angle)*step)
	if p.X <= 0 || p.X > width || p.Y <= 0 || p.Y > height {
		p.respawn(width, height, rng)
		return true
	}
	return false
}

func (p *Particle) respawn(width, height int, rng Rand) {
	p.X = rng.Intn(width)
	p.Y = rng.Intn(height)
	p.Angle = rng.Float64() * 2 * math.Pi
}

// OffsetCenter is (x+r, y+r). Edge and collision geometry measure from this
// point, not from the position itself.
func (p Particle) OffsetCenter() (float64, float64) {
	return float64(p.X + p.R), float64(p.Y + p.R)
}

// Populate creates n particles with New.
func Populate(n, width, height int, radii Range, rng Rand) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = New(width, height, radii, rng)
	}
	return ps
}
