package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/asteroid/config"
)

var flagParallelWorkers int

var determinismCmd = &cobra.Command{
	Use:   "determinism",
	Short: "Check that runs with the same seed match",
	Long: `Run the sandbox twice serially with the same seed, then once with the
worker pool forced on, and compare scores and every collision window.`,
	Args: cobra.NoArgs,
	RunE: runDeterminism,
}

func init() {
	determinismCmd.Flags().IntVar(&flagParallelWorkers, "parallel-workers", 4, "Workers for the parallel run")
}

func runDeterminism(cmd *cobra.Command, args []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}

	serial := *base
	serial.Physics.Workers = 1

	parallel := *base
	parallel.Physics.Workers = flagParallelWorkers
	parallel.Physics.ParallelThreshold = 1

	runs := []struct {
		name string
		cfg  *config.Config
	}{
		{"serial", &serial},
		{"serial-repeat", &serial},
		{"parallel", &parallel},
	}

	var ref runResult
	for i, r := range runs {
		res, err := simulate(r.cfg, flagSeed, flagTicks, "", false)
		if err != nil {
			return fmt.Errorf("%s run: %w", r.name, err)
		}
		slog.Info("run finished", "run", r.name, "ticks", res.Ticks, "score", res.Score, "kills", res.Kills)
		if i == 0 {
			ref = res
			continue
		}
		if err := compareRuns(ref, res); err != nil {
			return fmt.Errorf("%s run diverged: %w", r.name, err)
		}
	}

	slog.Info("runs are deterministic", "ticks", ref.Ticks, "windows", len(ref.Windows))
	return nil
}

// compareRuns returns an error describing the first difference between two
// runs, ignoring wall-clock timing.
func compareRuns(a, b runResult) error {
	if a.Ticks != b.Ticks {
		return fmt.Errorf("ticks %d != %d", a.Ticks, b.Ticks)
	}
	if a.Score != b.Score || a.Kills != b.Kills || a.Lives != b.Lives {
		return fmt.Errorf("score/kills/lives %d/%d/%d != %d/%d/%d",
			a.Score, a.Kills, a.Lives, b.Score, b.Kills, b.Lives)
	}
	if len(a.Windows) != len(b.Windows) {
		return fmt.Errorf("window count %d != %d", len(a.Windows), len(b.Windows))
	}
	for i := range a.Windows {
		if a.Windows[i] != b.Windows[i] {
			return fmt.Errorf("window %d differs: %+v != %+v", i, a.Windows[i], b.Windows[i])
		}
	}
	return nil
}
