// Package telemetry provides step timing, collision counters and CSV output
// for the physics sandbox and benchmark.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/asteroid/systems"
)

// Summary holds distribution statistics of a sample.
type Summary struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// Summarize computes mean, standard deviation and empirical percentiles.
// values must be sorted ascending. Returns zeros for an empty slice.
func Summarize(sorted []float64) Summary {
	if len(sorted) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 || math.IsNaN(std) {
		std = 0
	}
	return Summary{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// WindowStats holds collision statistics over a window of fixed steps.
type WindowStats struct {
	WindowStartStep uint64  `csv:"-"`
	WindowEndStep   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Entity counts at window end
	Bodies    int `csv:"bodies"`
	Despawned int `csv:"despawned"`

	// Detector work during window
	Candidates int     `csv:"candidates"`
	Pruned     int     `csv:"pruned"`
	Tested     int     `csv:"tested"`
	Hits       int     `csv:"hits"`
	PruneRate  float64 `csv:"prune_rate"`
	HitRate    float64 `csv:"hit_rate"`

	// Per-step hit distribution
	HitsMean float64 `csv:"hits_mean"`
	HitsStd  float64 `csv:"hits_std"`
	HitsP50  float64 `csv:"hits_p50"`
	HitsP90  float64 `csv:"hits_p90"`
}

// CollisionCollector accumulates detector counters for one window.
type CollisionCollector struct {
	windowSize int
	start      uint64
	steps      int
	totals     systems.DetectStats
	despawned  int
	hits       []float64
}

// NewCollisionCollector creates a collector emitting every windowSize steps.
func NewCollisionCollector(windowSize int) *CollisionCollector {
	if windowSize < 1 {
		windowSize = 64
	}
	return &CollisionCollector{
		windowSize: windowSize,
		hits:       make([]float64, 0, windowSize),
	}
}

// RecordStep adds one step's detector stats. It returns true when the window
// is full and Flush should be called.
func (c *CollisionCollector) RecordStep(step uint64, s systems.DetectStats, despawned int) bool {
	if c.steps == 0 {
		c.start = step
	}
	c.steps++
	c.totals.Candidates += s.Candidates
	c.totals.Pruned += s.Pruned
	c.totals.Tested += s.Tested
	c.totals.Hits += s.Hits
	c.despawned += despawned
	c.hits = append(c.hits, float64(s.Hits))
	return c.steps >= c.windowSize
}

// Flush returns the window's stats and starts a new window.
func (c *CollisionCollector) Flush(endStep uint64, simTime float64, bodies int) WindowStats {
	ws := WindowStats{
		WindowStartStep: c.start,
		WindowEndStep:   endStep,
		SimTimeSec:      simTime,
		Bodies:          bodies,
		Despawned:       c.despawned,
		Candidates:      c.totals.Candidates,
		Pruned:          c.totals.Pruned,
		Tested:          c.totals.Tested,
		Hits:            c.totals.Hits,
	}
	if ws.Candidates > 0 {
		ws.PruneRate = float64(ws.Pruned) / float64(ws.Candidates)
	}
	if ws.Tested > 0 {
		ws.HitRate = float64(ws.Hits) / float64(ws.Tested)
	}

	sort.Float64s(c.hits)
	summary := Summarize(c.hits)
	ws.HitsMean = summary.Mean
	ws.HitsStd = summary.Std
	ws.HitsP50 = summary.P50
	ws.HitsP90 = summary.P90

	c.steps = 0
	c.totals = systems.DetectStats{}
	c.despawned = 0
	c.hits = c.hits[:0]
	return ws
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartStep),
		slog.Uint64("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("despawned", s.Despawned),
		slog.Int("candidates", s.Candidates),
		slog.Int("pruned", s.Pruned),
		slog.Int("tested", s.Tested),
		slog.Int("hits", s.Hits),
		slog.Float64("prune_rate", s.PruneRate),
		slog.Float64("hit_rate", s.HitRate),
		slog.Float64("hits_mean", s.HitsMean),
		slog.Float64("hits_p90", s.HitsP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("collisions",
		"window_end", s.WindowEndStep,
		"sim_time", s.SimTimeSec,
		"bodies", s.Bodies,
		"tested", s.Tested,
		"hits", s.Hits,
		"prune_rate", s.PruneRate,
	)
}
