// Package analysis summarizes per-frame series recorded by headless runs.
//
//   - [Summarize]: mean, extremes and spread of a series
//   - [PowerSpectrum]: FFT magnitudes of a series
//   - [DominantPeriod]: strongest oscillation period, in ticks
//
// A run's edge count rises and falls as clusters of particles form and drift
// apart; the dominant period measures how fast that happens:
//
//	edges, _ := storage.Series(stats, "edges")
//	period := analysis.DominantPeriod(edges)
package analysis
