package game

import (
	"log/slog"
)

// flushTelemetry closes the current collision window and reports it.
func (g *Game) flushTelemetry(step uint64) {
	simTime := float64(step) * g.phys.Clock().FixedDT()
	stats := g.collector.Flush(step, simTime, g.bodyCount())
	perfStats := g.phys.Perf().Stats()

	// Call stats callback if provided
	if g.onStats != nil {
		g.onStats(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteCollisions(stats); err != nil {
			slog.Error("failed to write collisions", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndStep); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
