package config

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/plexus/internal/particle"
	"github.com/san-kum/plexus/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultCount         = 250
	DefaultStep          = 2.0
	DefaultMinRadius     = 2
	DefaultMaxRadius     = 9
	DefaultMouseRadius   = 50.0
	DefaultThickness     = 5.5
	DefaultEdgeDistance  = 100
	DefaultTimerMs       = 35
	DefaultTheme         = "minimal"
	DefaultLogLevel      = "info"
	DefaultBackground    = "#ff0000"
	DefaultParticleColor = "#ffffff"
	DefaultEdgeColor     = "#ffffff"
	DefaultMouseColor    = "#0000ff"
)

type Config struct {
	Canvas    CanvasConfig   `yaml:"canvas" toml:"canvas"`
	Particles ParticleConfig `yaml:"particles" toml:"particles"`
	Mouse     MouseConfig    `yaml:"mouse" toml:"mouse"`
	Edges     EdgeConfig     `yaml:"edges" toml:"edges"`
	Colors    ColorConfig    `yaml:"colors" toml:"colors"`
	TimerMs   int            `yaml:"timer_ms" toml:"timer_ms"`
	Seed      int64          `yaml:"seed" toml:"seed"`
	Theme     string         `yaml:"theme" toml:"theme"`
	LogLevel  string         `yaml:"log_level" toml:"log_level"`
}

type CanvasConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

type ParticleConfig struct {
	Count     int     `yaml:"count" toml:"count"`
	Step      float64 `yaml:"step" toml:"step"`
	MinRadius int     `yaml:"min_radius" toml:"min_radius"`
	MaxRadius int     `yaml:"max_radius" toml:"max_radius"`
}

type MouseConfig struct {
	Radius float64 `yaml:"radius" toml:"radius"`
}

type EdgeConfig struct {
	Thickness   float64 `yaml:"thickness" toml:"thickness"`
	MinDistance int     `yaml:"min_distance" toml:"min_distance"`
}

type ColorConfig struct {
	Background string `yaml:"background" toml:"background"`
	Particle   string `yaml:"particle" toml:"particle"`
	Edge       string `yaml:"edge" toml:"edge"`
	Mouse      string `yaml:"mouse" toml:"mouse"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Particles: ParticleConfig{
			Count:     DefaultCount,
			Step:      DefaultStep,
			MinRadius: DefaultMinRadius,
			MaxRadius: DefaultMaxRadius,
		},
		Mouse: MouseConfig{Radius: DefaultMouseRadius},
		Edges: EdgeConfig{Thickness: DefaultThickness, MinDistance: DefaultEdgeDistance},
		Colors: ColorConfig{
			Background: DefaultBackground,
			Particle:   DefaultParticleColor,
			Edge:       DefaultEdgeColor,
			Mouse:      DefaultMouseColor,
		},
		TimerMs:  DefaultTimerMs,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML or TOML file over the defaults. The codec is chosen by
// extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch format(path) {
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	switch format(path) {
	case "yaml":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		data = out
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	return os.WriteFile(path, data, 0644)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

// Validate checks every numeric field against its valid range.
func (c *Config) Validate() error {
	checks := []struct {
		ok    bool
		field string
		value any
	}{
		{c.Canvas.Width >= 1, "canvas.width", c.Canvas.Width},
		{c.Canvas.Height >= 1, "canvas.height", c.Canvas.Height},
		{c.Particles.Count >= 1, "particles.count", c.Particles.Count},
		{c.Particles.Step > 0, "particles.step", c.Particles.Step},
		{c.Particles.MinRadius >= 1, "particles.min_radius", c.Particles.MinRadius},
		{c.Particles.MaxRadius >= c.Particles.MinRadius, "particles.max_radius", c.Particles.MaxRadius},
		{c.Mouse.Radius > 0, "mouse.radius", c.Mouse.Radius},
		{c.Edges.Thickness > 0, "edges.thickness", c.Edges.Thickness},
		{c.Edges.MinDistance >= sim.MinEdgeDistance && c.Edges.MinDistance <= sim.MaxEdgeDistance, "edges.min_distance", c.Edges.MinDistance},
		{c.TimerMs >= 1, "timer_ms", c.TimerMs},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%s = %v: %w", ch.field, ch.value, ErrParameterBounds)
		}
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.TimerMs) * time.Millisecond
}

// Params validates the config and converts it into session parameters.
func (c *Config) Params() (sim.Params, error) {
	if err := c.Validate(); err != nil {
		return sim.Params{}, err
	}

	p := sim.Params{
		Count:              c.Particles.Count,
		Step:               c.Particles.Step,
		Radii:              particle.Range{Min: c.Particles.MinRadius, Max: c.Particles.MaxRadius},
		MouseRadius:        c.Mouse.Radius,
		EdgeThickness:      c.Edges.Thickness,
		MinDistToDrawEdges: c.Edges.MinDistance,
		Interval:           c.Interval(),
	}

	colors := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", c.Colors.Background, &p.Background},
		{"particle", c.Colors.Particle, &p.ParticleColor},
		{"edge", c.Colors.Edge, &p.EdgeColor},
		{"mouse", c.Colors.Mouse, &p.MouseColor},
	}
	for _, col := range colors {
		rgba, err := ParseColor(col.hex)
		if err != nil {
			return sim.Params{}, fmt.Errorf("colors.%s: %w", col.name, err)
		}
		*col.dst = rgba
	}
	return p, nil
}

// ParseColor parses a #rrggbb hex string into an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", hex, ErrInvalidColor)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
