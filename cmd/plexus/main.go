package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	seed     int64
	count    int
	ticks    int
	width    int
	height   int
	distance int

	backend string
	gifPath string
	svgPath string
	column  string
	runs    int
	force   bool
	paced   bool

	sweepMin  int
	sweepMax  int
	sweepStep int
)

// main registers the commands and opens the window when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "plexus",
		Short:        "particles joined by edges that thin with distance",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plexus", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	rootCmd.PersistentFlags().IntVar(&count, "count", 0, "particle count")
	rootCmd.PersistentFlags().IntVar(&distance, "distance", 0, "edge distance threshold")
	rootCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend (raylib, ebiten)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend (raylib, ebiten)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&gifPath, "gif", "plexus.gif", "where G recordings are written")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store per-frame stats",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 500, "number of ticks")
	runCmd.Flags().IntVar(&width, "width", 0, "canvas width (default from config)")
	runCmd.Flags().IntVar(&height, "height", 0, "canvas height (default from config)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")
	runCmd.Flags().BoolVar(&paced, "realtime", false, "tick at the configured timer interval")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-frame stats of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the selected column as an SVG chart")
	plotCmd.Flags().StringVar(&column, "column", "edges", "column for --svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary and frequency analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "edges", "column to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run stats as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [scenario]",
		Short: "replay a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  replayScenario,
	}
	replayCmd.Flags().StringVar(&svgPath, "svg", "", "write the last rendered frame as SVG")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the edge distance threshold",
		Args:  cobra.NoArgs,
		RunE:  sweepDistance,
	}
	sweepCmd.Flags().IntVar(&sweepMin, "min", 20, "smallest edge distance")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 200, "largest edge distance")
	sweepCmd.Flags().IntVar(&sweepStep, "step", 20, "edge distance increment")
	sweepCmd.Flags().IntVar(&runs, "runs", 3, "seeds per point")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 200, "ticks per run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure tick and render throughput",
		Args:  cobra.NoArgs,
		RunE:  benchmark,
	}
	benchCmd.Flags().IntVar(&ticks, "ticks", 200, "ticks per run")
	benchCmd.Flags().IntVar(&runs, "runs", 1, "concurrent runs per size")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd,
		exportJSONCmd, presetsCmd, replayCmd, sweepCmd, benchCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the preset, the config file and flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.LookupPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("count") {
		cfg.Particles.Count = count
	}
	if flags.Changed("distance") {
		cfg.Edges.MinDistance = distance
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.LogLevel, os.Stderr)
}
