package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/plexus/internal/experiment"
	"github.com/san-kum/plexus/internal/sim"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		Stats: []sim.Stats{
			{Tick: 1, Edges: 3, Collisions: 1, Respawns: 0, Deflections: 0, EdgeWidth: 7.5},
			{Tick: 2, Edges: 2, Collisions: 0, Respawns: 1, Deflections: 4, EdgeWidth: 4.25},
		},
		Metrics: map[string]float64{
			"edges": 2.5,
		},
		Ticks: 2,
	}
}

func sampleMeta() RunMetadata {
	p := sim.DefaultParams()
	return MetadataFor(experiment.Config{
		Preset: "classic",
		Params: p,
		Width:  800,
		Height: 600,
		Ticks:  2,
		Seed:   42,
	})
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := sampleResult()
	runID, err := st.Save(sampleMeta(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "classic_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Preset != "classic" || meta.Seed != 42 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Count != 250 || meta.EdgeDistance != 100 || meta.IntervalMs != 35 {
		t.Errorf("run parameters not recorded: %+v", meta)
	}
	if meta.Metrics["edges"] != 2.5 {
		t.Errorf("expected edges 2.5, got %f", meta.Metrics["edges"])
	}

	stats, err := st.LoadStats(runID)
	if err != nil {
		t.Fatalf("load stats failed: %v", err)
	}
	if !reflect.DeepEqual(stats, result.Stats) {
		t.Errorf("stats mismatch:\n got %+v\nwant %+v", stats, result.Stats)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(sampleMeta(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := st.Save(sampleMeta(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleMeta(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "stats.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	data, err := os.ReadFile(filepath.Join(runDir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	firstLine := strings.SplitN(string(data), "\n", 2)[0]
	if firstLine != "tick,edges,collisions,respawns,deflections,edge_width" {
		t.Errorf("unexpected header %q", firstLine)
	}
}

func TestSeries(t *testing.T) {
	stats := sampleResult().Stats

	edges, err := Series(stats, "edges")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(edges, []float64{3, 2}) {
		t.Errorf("unexpected edges series %v", edges)
	}

	mean, err := Series(stats, "mean_width")
	if err != nil {
		t.Fatal(err)
	}
	if mean[0] != 2.5 || mean[1] != 2.125 {
		t.Errorf("unexpected mean width series %v", mean)
	}

	if _, err := Series(stats, "energy"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestExportJSON(t *testing.T) {
	meta := sampleMeta()
	meta.ID = "classic_1"
	meta.Metrics = map[string]float64{"edges": 2.5}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, &meta, sampleResult().Stats); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.ID != "classic_1" || data.Ticks != 2 || len(data.Frames) != 2 {
		t.Errorf("unexpected export: %+v", data)
	}
	if data.Frames[1].Deflections != 4 {
		t.Errorf("expected 4 deflections, got %d", data.Frames[1].Deflections)
	}
}
