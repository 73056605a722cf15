package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/plexus/internal/experiment"
	"github.com/san-kum/plexus/internal/sim"
)

// Columns of stats.csv after the leading tick column.
var Columns = []string{"edges", "collisions", "respawns", "deflections", "edge_width"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Ticks        int                `json:"ticks"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Count        int                `json:"count"`
	EdgeDistance int                `json:"edge_distance"`
	IntervalMs   int64              `json:"interval_ms"`
	Metrics      map[string]float64 `json:"metrics"`
}

// MetadataFor fills the run parameters of cfg; ID and Timestamp are set by
// Save.
func MetadataFor(cfg experiment.Config) RunMetadata {
	return RunMetadata{
		Preset:       cfg.Preset,
		Seed:         cfg.Seed,
		Ticks:        cfg.Ticks,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Count:        cfg.Params.Count,
		EdgeDistance: cfg.Params.MinDistToDrawEdges,
		IntervalMs:   cfg.Params.Interval.Milliseconds(),
	}
}

func (s *Store) Save(meta RunMetadata, result *experiment.Result) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "stats.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteStatsCSV(csvFile, result.Stats); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteStatsCSV writes a header row and one row per frame.
func WriteStatsCSV(out io.Writer, stats []sim.Stats) error {
	w := csv.NewWriter(out)

	header := append([]string{"tick"}, Columns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, st := range stats {
		row := []string{
			strconv.Itoa(st.Tick),
			strconv.Itoa(st.Edges),
			strconv.Itoa(st.Collisions),
			strconv.Itoa(st.Respawns),
			strconv.Itoa(st.Deflections),
			strconv.FormatFloat(st.EdgeWidth, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStats reads stats.csv back. Rows that fail to parse are skipped.
func (s *Store) LoadStats(runID string) ([]sim.Stats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "stats.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Stats{}, nil
	}

	stats := make([]sim.Stats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(Columns)+1 {
			continue
		}

		var ints [5]int
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.Atoi(record[j])
			if err != nil {
				ok = false
				break
			}
			ints[j] = v
		}
		width, err := strconv.ParseFloat(record[5], 64)
		if !ok || err != nil {
			continue
		}

		stats = append(stats, sim.Stats{
			Tick:        ints[0],
			Edges:       ints[1],
			Collisions:  ints[2],
			Respawns:    ints[3],
			Deflections: ints[4],
			EdgeWidth:   width,
		})
	}

	return stats, nil
}

// Series extracts one column from stats. "mean_width" is derived per frame.
func Series(stats []sim.Stats, column string) ([]float64, error) {
	var pick func(sim.Stats) float64
	switch column {
	case "edges":
		pick = func(s sim.Stats) float64 { return float64(s.Edges) }
	case "collisions":
		pick = func(s sim.Stats) float64 { return float64(s.Collisions) }
	case "respawns":
		pick = func(s sim.Stats) float64 { return float64(s.Respawns) }
	case "deflections":
		pick = func(s sim.Stats) float64 { return float64(s.Deflections) }
	case "edge_width":
		pick = func(s sim.Stats) float64 { return s.EdgeWidth }
	case "mean_width":
		pick = sim.Stats.MeanEdgeWidth
	default:
		return nil, fmt.Errorf("unknown column: %s", column)
	}

	out := make([]float64, len(stats))
	for i, s := range stats {
		out[i] = pick(s)
	}
	return out, nil
}
