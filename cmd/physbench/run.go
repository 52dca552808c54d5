package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/asteroid/config"
	"github.com/pthm-cable/asteroid/game"
	"github.com/pthm-cable/asteroid/telemetry"
)

var (
	flagOutputDir string
	flagLogStats  bool
	flagWorkers   int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sandbox headless and report statistics",
	Long: `Run the sandbox for --ticks fixed steps with the autopilot flying.
Collision and perf windows are written as CSV when --output-dir is set.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory for CSV logs and config snapshot")
	runCmd.Flags().BoolVar(&flagLogStats, "log-stats", false, "Log every stats window")
	runCmd.Flags().IntVar(&flagWorkers, "workers", -1, "Worker pool size (-1 = config, 0 = GOMAXPROCS)")
}

// runResult summarizes one headless run.
type runResult struct {
	Ticks   uint64
	Score   int
	Kills   int
	Lives   int
	Windows []telemetry.WindowStats
	Elapsed time.Duration
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagWorkers >= 0 {
		cfg.Physics.Workers = flagWorkers
	}

	res, err := simulate(cfg, flagSeed, flagTicks, flagOutputDir, flagLogStats)
	if err != nil {
		return err
	}

	hits := 0
	for _, w := range res.Windows {
		hits += w.Hits
	}
	slog.Info("run complete",
		"ticks", res.Ticks,
		"score", res.Score,
		"kills", res.Kills,
		"lives", res.Lives,
		"windows", len(res.Windows),
		"hits", hits,
		"elapsed", res.Elapsed.Round(time.Millisecond),
		"steps_per_sec", fmt.Sprintf("%.0f", float64(res.Ticks)/res.Elapsed.Seconds()),
	)
	return nil
}

// simulate runs one autopilot game for ticks fixed steps, stopping early on
// game over.
func simulate(cfg *config.Config, seed int64, ticks int, outputDir string, logStats bool) (runResult, error) {
	var res runResult
	g, err := game.NewGameWithOptions(game.Options{
		Config:    cfg,
		Seed:      seed,
		Headless:  true,
		Autopilot: true,
		LogStats:  logStats,
		OutputDir: outputDir,
		OnStats: func(s telemetry.WindowStats) {
			res.Windows = append(res.Windows, s)
		},
	})
	if err != nil {
		return res, err
	}
	defer g.Unload()

	start := time.Now()
	for int(g.Tick()) < ticks && !g.GameOver() {
		g.UpdateHeadless()
	}
	res.Elapsed = time.Since(start)

	res.Ticks = g.Tick()
	res.Score = g.Score()
	res.Kills = g.Kills()
	res.Lives = g.Lives()
	return res, nil
}
