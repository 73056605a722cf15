package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/plexus/internal/sim"
)

type ExportData struct {
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Seed         int64              `json:"seed"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Count        int                `json:"count"`
	EdgeDistance int                `json:"edge_distance"`
	Ticks        int                `json:"ticks"`
	Frames       []FrameStats       `json:"frames"`
	Metrics      map[string]float64 `json:"metrics"`
}

type FrameStats struct {
	Tick        int     `json:"tick"`
	Edges       int     `json:"edges"`
	Collisions  int     `json:"collisions"`
	Respawns    int     `json:"respawns"`
	Deflections int     `json:"deflections"`
	EdgeWidth   float64 `json:"edge_width"`
}

// ExportJSON writes a run's metadata and per-frame stats as one document.
func ExportJSON(w io.Writer, meta *RunMetadata, stats []sim.Stats) error {
	data := ExportData{
		ID:           meta.ID,
		Preset:       meta.Preset,
		Seed:         meta.Seed,
		Width:        meta.Width,
		Height:       meta.Height,
		Count:        meta.Count,
		EdgeDistance: meta.EdgeDistance,
		Ticks:        len(stats),
		Frames:       make([]FrameStats, len(stats)),
		Metrics:      meta.Metrics,
	}

	for i, s := range stats {
		data.Frames[i] = FrameStats{
			Tick:        s.Tick,
			Edges:       s.Edges,
			Collisions:  s.Collisions,
			Respawns:    s.Respawns,
			Deflections: s.Deflections,
			EdgeWidth:   s.EdgeWidth,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
