// physbench runs the asteroid sandbox headless for benchmarking and
// determinism checks.
//
// Usage:
//
//	physbench run --ticks 6000 --output-dir out/    - Autopilot run with CSV output
//	physbench determinism --ticks 3000              - Compare repeated and parallel runs
//
// Global flags:
//
//	--config <path>     - Config file (YAML or TOML, empty = defaults)
//	--seed <value>      - RNG seed (0 = spawn.seed from config)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/asteroid/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagTicks    int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "physbench",
	Short: "Headless runs of the asteroid physics sandbox",
	Long: `physbench drives the sandbox without a window, with the autopilot
flying the ship, and reports detector and step timing statistics.

Examples:
  physbench run --ticks 6000 --output-dir out/
  physbench determinism --ticks 3000 --seed 7`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(flagLogLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (empty = use defaults)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = spawn.seed from config)")
	rootCmd.PersistentFlags().IntVar(&flagTicks, "ticks", 3000, "Fixed steps to simulate")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(determinismCmd)
}

// setupLogging routes slog through a charm logger on stderr.
func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}
