package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/asteroid/config"
	"github.com/pthm-cable/asteroid/systems"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		want   Summary
	}{
		{"empty slice", []float64{}, Summary{}},
		{"single element", []float64{5}, Summary{Mean: 5, P10: 5, P50: 5, P90: 5}},
		{
			"one to ten",
			[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			Summary{Mean: 5.5, Std: 3.0277, P10: 1, P50: 5, P90: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.sorted)
			check := func(field string, got, want float64) {
				if math.Abs(got-want) > 0.001 {
					t.Errorf("%s = %v, want %v", field, got, want)
				}
			}
			check("mean", got.Mean, tt.want.Mean)
			check("std", got.Std, tt.want.Std)
			check("p10", got.P10, tt.want.P10)
			check("p50", got.P50, tt.want.P50)
			check("p90", got.P90, tt.want.P90)
		})
	}
}

func TestCollisionCollectorWindow(t *testing.T) {
	c := NewCollisionCollector(4)

	steps := []systems.DetectStats{
		{Candidates: 10, Pruned: 5, Tested: 5, Hits: 0},
		{Candidates: 10, Pruned: 4, Tested: 6, Hits: 2},
		{Candidates: 10, Pruned: 6, Tested: 4, Hits: 1},
		{Candidates: 10, Pruned: 5, Tested: 5, Hits: 1},
	}
	for i, s := range steps {
		full := c.RecordStep(uint64(100+i), s, 1)
		if full != (i == len(steps)-1) {
			t.Fatalf("step %d: full = %v", i, full)
		}
	}

	ws := c.Flush(103, 1.6, 12)
	if ws.WindowStartStep != 100 || ws.WindowEndStep != 103 {
		t.Errorf("window = [%d,%d], want [100,103]", ws.WindowStartStep, ws.WindowEndStep)
	}
	if ws.Candidates != 40 || ws.Pruned != 20 || ws.Tested != 20 || ws.Hits != 4 {
		t.Errorf("totals = %+v", ws)
	}
	if ws.Despawned != 4 || ws.Bodies != 12 {
		t.Errorf("despawned = %d, bodies = %d", ws.Despawned, ws.Bodies)
	}
	if math.Abs(ws.PruneRate-0.5) > 1e-9 || math.Abs(ws.HitRate-0.2) > 1e-9 {
		t.Errorf("prune rate = %v, hit rate = %v", ws.PruneRate, ws.HitRate)
	}
	if math.Abs(ws.HitsMean-1) > 1e-9 {
		t.Errorf("hits mean = %v, want 1", ws.HitsMean)
	}

	// Next window starts clean
	c.RecordStep(104, systems.DetectStats{Hits: 3, Tested: 3}, 0)
	next := c.Flush(104, 1.7, 12)
	if next.WindowStartStep != 104 || next.Hits != 3 || next.Despawned != 0 {
		t.Errorf("second window = %+v", next)
	}
}

func TestOutputManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := om.WriteCollisions(WindowStats{WindowEndStep: uint64(i), Hits: i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{AvgStep: 100, PhaseShare: [phaseCount]float64{PhaseDetect: 0.4}}, 64); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "collisions.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("collisions.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("header = %q", lines[0])
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(perf), "detect_pct") || !strings.Contains(string(perf), ",40") {
		t.Errorf("perf.csv = %q", perf)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	if err := om.WriteCollisions(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}
