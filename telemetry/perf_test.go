package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.BeginStep()
		pc.Mark(PhaseIntegrate)
		time.Sleep(20 * time.Microsecond)
		pc.Mark(PhaseDetect)
		time.Sleep(300 * time.Microsecond)
		pc.EndStep()
	}

	stats := pc.Stats()
	if stats.AvgStep <= 0 {
		t.Fatal("expected positive average step duration")
	}
	if stats.PhaseAvg[PhaseIntegrate] <= 0 || stats.PhaseAvg[PhaseDetect] <= 0 {
		t.Errorf("phase averages = %v, want integrate and detect timed", stats.PhaseAvg)
	}
	if stats.PhaseAvg[PhaseScale] != 0 {
		t.Errorf("scale average = %v, want 0 for an unmarked phase", stats.PhaseAvg[PhaseScale])
	}
	if stats.Share(PhaseDetect) <= stats.Share(PhaseIntegrate) {
		t.Errorf("detect share %v should exceed integrate share %v",
			stats.Share(PhaseDetect), stats.Share(PhaseIntegrate))
	}
	if sum := stats.Share(PhaseIntegrate) + stats.Share(PhaseDetect); sum > 1.0001 {
		t.Errorf("phase shares sum to %v, want <= 1", sum)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.BeginStep()
		pc.Mark(PhaseIntegrate)
		pc.EndStep()
	}

	stats := pc.Stats()
	if stats.StepsPerSecond <= 0 {
		t.Error("expected positive steps per second")
	}
	if stats.P50Step < stats.MinStep || stats.P99Step > stats.MaxStep {
		t.Errorf("percentiles outside range: min %v p50 %v p99 %v max %v",
			stats.MinStep, stats.P50Step, stats.P99Step, stats.MaxStep)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgStep != 0 || stats.StepsPerSecond != 0 {
		t.Errorf("empty collector stats = %+v, want zero", stats)
	}
	if got := stats.Share(phaseCount); got != 0 {
		t.Errorf("Share(out of range) = %v, want 0", got)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("frame duration = %v, want >= 15ms", stats.FrameDuration)
	}
	// Sleep overshoot only lowers FPS
	if stats.FPS <= 0 || stats.FPS > 67 {
		t.Errorf("FPS = %v, want in (0, 67]", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseScale, "scale"},
		{PhaseIntegrate, "integrate"},
		{PhaseBorder, "border"},
		{PhaseDetect, "detect"},
		{phaseCount, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
	if len(Phases()) != int(phaseCount) {
		t.Errorf("Phases() has %d entries, want %d", len(Phases()), phaseCount)
	}
}
