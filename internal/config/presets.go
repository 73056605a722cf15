package config

import (
	"fmt"
	"sort"
)

func preset(apply func(c *Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"dense": preset(func(c *Config) {
		c.Particles.Count = 400
		c.Particles.MaxRadius = 5
		c.Edges.MinDistance = 60
	}),
	"sparse": preset(func(c *Config) {
		c.Particles.Count = 80
		c.Edges.MinDistance = 220
		c.Edges.Thickness = 3
	}),
	"calm": preset(func(c *Config) {
		c.Particles.Step = 1
		c.Mouse.Radius = 30
		c.TimerMs = 50
	}),
	"frenzy": preset(func(c *Config) {
		c.Particles.Step = 5
		c.Mouse.Radius = 80
		c.Edges.MinDistance = 140
		c.TimerMs = 20
	}),
	"night": preset(func(c *Config) {
		c.Colors = ColorConfig{
			Background: "#0a0a0a",
			Particle:   "#b4b4b4",
			Edge:       "#8c8c8c",
			Mouse:      "#00ffff",
		}
		c.Theme = "ocean"
	}),
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// LookupPreset is GetPreset with an error for unknown names.
func LookupPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%q (available: %v): %w", name, ListPresets(), ErrUnknownPreset)
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
