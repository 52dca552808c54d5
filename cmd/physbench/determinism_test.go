package main

import (
	"testing"

	"github.com/pthm-cable/asteroid/config"
	"github.com/pthm-cable/asteroid/telemetry"
)

func TestCompareRuns(t *testing.T) {
	base := runResult{
		Ticks:   100,
		Score:   20,
		Kills:   2,
		Lives:   3,
		Windows: []telemetry.WindowStats{{WindowEndStep: 50, Hits: 3}, {WindowEndStep: 100, Hits: 1}},
	}

	tests := []struct {
		name    string
		mutate  func(r *runResult)
		wantErr bool
	}{
		{"identical", func(r *runResult) {}, false},
		{"ticks", func(r *runResult) { r.Ticks = 99 }, true},
		{"score", func(r *runResult) { r.Score = 21 }, true},
		{"window count", func(r *runResult) { r.Windows = r.Windows[:1] }, true},
		{"window content", func(r *runResult) { r.Windows[1].Hits = 2 }, true},
		{"elapsed ignored", func(r *runResult) { r.Elapsed = 5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			other.Windows = append([]telemetry.WindowStats(nil), base.Windows...)
			tt.mutate(&other)
			err := compareRuns(base, other)
			if (err != nil) != tt.wantErr {
				t.Errorf("compareRuns() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSimulateSerialMatchesParallel(t *testing.T) {
	base := config.Default()

	serial := *base
	serial.Physics.Workers = 1

	parallel := *base
	parallel.Physics.Workers = 4
	parallel.Physics.ParallelThreshold = 1

	a, err := simulate(&serial, 3, 600, "", false)
	if err != nil {
		t.Fatalf("serial run: %v", err)
	}
	b, err := simulate(&parallel, 3, 600, "", false)
	if err != nil {
		t.Fatalf("parallel run: %v", err)
	}
	if err := compareRuns(a, b); err != nil {
		t.Errorf("serial and parallel runs differ: %v", err)
	}
}
