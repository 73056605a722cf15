package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plexus/internal/analysis"
	"github.com/san-kum/plexus/internal/automation"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/experiment"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/gui/ebwindow"
	"github.com/san-kum/plexus/internal/gui/rlwindow"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/storage"
	"github.com/san-kum/plexus/internal/viz"
	"github.com/spf13/cobra"
)

var backends = map[string]gui.Backend{
	"raylib": rlwindow.Run,
	"ebiten": ebwindow.Run,
}

func newSession(cfg *config.Config) (*sim.Session, sim.Params, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, sim.Params{}, err
	}
	s := sim.New(params, cfg.Seed)
	s.SetLogger(newLogger(cfg))
	return s, params, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, params, err := newSession(cfg)
	if err != nil {
		return err
	}

	return gui.Run(s, gui.Options{
		Backend:  backend,
		Title:    "plexus",
		Width:    cfg.Canvas.Width,
		Height:   cfg.Canvas.Height,
		Interval: params.Interval,
		Log:      newLogger(cfg),
	}, backends)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	// The terminal belongs to Bubble Tea; keep logs off it unless asked.
	log := newLogger(cfg)
	if !cmd.Flags().Changed("log-level") {
		log = nil
	}

	s := sim.New(params, cfg.Seed)
	m := viz.NewModel(s, params.Interval, cfg.Theme, log)
	m.SetGIFPath(gifPath)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func experimentConfig(cfg *config.Config, params sim.Params, n int) experiment.Config {
	name := preset
	if name == "" {
		name = "custom"
	}
	return experiment.Config{
		Preset: name,
		Params: params,
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		Ticks:  n,
		Seed:   cfg.Seed,
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	expCfg := experimentConfig(cfg, params, ticks)
	exp := experiment.New(expCfg)
	if err := exp.Setup(experiment.NewRegistry().DefaultMetrics()); err != nil {
		return err
	}
	exp.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d particles for %d ticks...\n", params.Count, ticks)
	start := time.Now()

	var result *experiment.Result
	if paced {
		result, err = exp.RunPaced(ctx, params.Interval)
	} else {
		result, err = exp.Run(ctx)
	}
	if err != nil {
		if result == nil {
			return err
		}
		log.Warn("run interrupted, storing partial stats", "ticks", result.Ticks)
	}
	elapsed := time.Since(start)

	meta := storage.MetadataFor(expCfg)
	meta.Ticks = result.Ticks
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}
	log.Debug("run stored", "id", runID, "dir", dataDir)

	if svgPath != "" {
		svg := export.FrameToSVG(result.Final, expCfg.Width, expCfg.Height)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("final frame: %s\n", svgPath)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %-12s %.4f\n", name, metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tTICKS\tCOUNT\tDIST\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Count,
			run.EdgeDistance,
			run.Seed,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Stats, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	stats, err := st.LoadStats(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(stats) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, stats, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, stats, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(stats))

	captions := map[string]string{
		"edges":       "edges per frame",
		"collisions":  "collisions per frame",
		"deflections": "mouse deflections per frame",
		"mean_width":  "mean edge width",
	}
	for _, col := range []string{"edges", "collisions", "deflections", "mean_width"} {
		data, err := storage.Series(stats, col)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[col]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" {
		data, err := storage.Series(stats, column)
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgPath, []byte(export.SeriesToSVG(data, 800, 300, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("%s chart: %s\n", column, svgPath)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, stats, err := loadRun(args[0])
	if err != nil {
		return err
	}
	data, err := storage.Series(stats, column)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("column: %s\n\n", column)

	sum := analysis.Summarize(data)
	fmt.Printf("mean:   %.3f\n", sum.Mean)
	fmt.Printf("stddev: %.3f\n", sum.StdDev)
	fmt.Printf("min:    %.3f\n", sum.Min)
	fmt.Printf("max:    %.3f\n\n", sum.Max)

	if len(data) < 8 {
		return nil
	}

	ps := analysis.PowerSpectrum(analysis.PadPow2(data))
	plotData := ps[1 : len(ps)/4+1]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", column)),
	)
	fmt.Println(graph)
	fmt.Println()

	period := analysis.DominantPeriod(data)
	if period == 0 {
		fmt.Println("no dominant period")
		return nil
	}
	fmt.Printf("dominant period: %.1f ticks", period)
	if meta.IntervalMs > 0 {
		fmt.Printf(" (%.2f s)", period*float64(meta.IntervalMs)/1000)
	}
	fmt.Println()
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, stats, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteStatsCSV(os.Stdout, stats)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, stats, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, stats)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNT\tSTEP\tMOUSE\tDIST\tTIMER")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.0f\t%d\t%dms\n",
			name, p.Particles.Count, p.Particles.Step, p.Mouse.Radius, p.Edges.MinDistance, p.TimerMs)
	}
	return w.Flush()
}

func replayScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Width == 0 && sc.Height == 0 {
		sc.Width, sc.Height = cfg.Canvas.Width, cfg.Canvas.Height
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := automation.RunScenario(ctx, sc, params, newLogger(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Printf("steps: %d\n", len(sc.Steps))
	fmt.Printf("frames: %d\n", len(res.Frames))
	fmt.Printf("particles: %d\n", len(res.Particles))
	fmt.Printf("status: %s\n", res.Status)

	edges := 0
	collisions := 0
	deflections := 0
	for _, s := range res.Stats {
		edges += s.Edges
		collisions += s.Collisions
		deflections += s.Deflections
	}
	fmt.Printf("edges: %d  collisions: %d  deflections: %d\n", edges, collisions, deflections)

	if svgPath != "" && len(res.Frames) > 0 {
		last := res.Frames[len(res.Frames)-1]
		if err := os.WriteFile(svgPath, []byte(export.FrameToSVG(last, last.Width, last.Height)), 0644); err != nil {
			return err
		}
		fmt.Printf("last frame: %s\n", svgPath)
	}
	return nil
}

func sweepDistance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sw := automation.Sweep{
		Base: experimentConfig(cfg, params, ticks),
		Min:  sweepMin,
		Max:  sweepMax,
		Step: sweepStep,
		Runs: runs,
	}
	results, err := automation.RunSweep(ctx, sw, experiment.NewRegistry(), newLogger(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIST\tEDGES\tCOLLISIONS\tWIDTH")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.2f\t%.1f\t%.3f\n", r.EdgeDistance, r.MeanEdges, r.MeanCollisions, r.MeanThickness)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	edges := make([]float64, len(results))
	for i, r := range results {
		edges[i] = r.MeanEdges
	}
	if len(edges) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(edges, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("mean edges vs distance")))
	}
	return nil
}

func benchmark(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d ticks x %d runs\n\n", ticks, runs)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNT\tTICKS\tTIME\tTICKS/SEC")

	for _, n := range []int{100, 250, 500, 1000} {
		p := params
		p.Count = n
		expCfg := experimentConfig(cfg, p, ticks)
		if expCfg.Seed == 0 {
			expCfg.Seed = 42
		}

		start := time.Now()
		results, err := experiment.NewEnsemble(expCfg, runs, expCfg.Seed, nil).Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		total := 0
		for _, r := range results {
			total += r.Ticks
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())
	}

	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "plexus.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
