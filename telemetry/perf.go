package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one timed section of a fixed step.
type Phase uint8

// Fixed-step phases in execution order.
const (
	PhaseScale Phase = iota
	PhaseIntegrate
	PhaseBorder
	PhaseDetect
	phaseCount
)

var phaseNames = [phaseCount]string{"scale", "integrate", "border", "detect"}

func (ph Phase) String() string {
	if ph < phaseCount {
		return phaseNames[ph]
	}
	return "unknown"
}

// Phases returns every phase in execution order.
func Phases() []Phase {
	out := make([]Phase, phaseCount)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// stepSample is the timing of one fixed step.
type stepSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
}

// PerfCollector keeps a ring of recent step timings. It allocates nothing
// per step.
type PerfCollector struct {
	samples []stepSample
	next    int
	filled  int

	current    stepSample
	stepStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window steps.
// Non-positive windows fall back to 64 (one second at 64 Hz).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 64
	}
	return &PerfCollector{samples: make([]stepSample, window)}
}

// BeginStep starts timing a fixed step.
func (p *PerfCollector) BeginStep() {
	p.stepStart = time.Now()
	p.current = stepSample{}
	p.inPhase = false
}

// Mark closes the running phase, if any, and starts ph.
func (p *PerfCollector) Mark(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < phaseCount {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndStep closes the running phase and stores the step in the ring.
func (p *PerfCollector) EndStep() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.stepStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// RecordFrame records the time since the previous render frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the steps in the window.
type PerfStats struct {
	AvgStep time.Duration
	MinStep time.Duration
	MaxStep time.Duration
	P50Step time.Duration
	P99Step time.Duration
	StdStep time.Duration

	// Mean time per phase and its share of the mean step in [0, 1]
	PhaseAvg   [phaseCount]time.Duration
	PhaseShare [phaseCount]float64

	StepsPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Share returns the fraction of step time spent in ph.
func (s PerfStats) Share(ph Phase) float64 {
	if ph >= phaseCount {
		return 0
	}
	return s.PhaseShare[ph]
}

// Stats computes the window summary.
func (p *PerfCollector) Stats() PerfStats {
	var out PerfStats
	out.FrameDuration = p.frame
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return out
	}

	n := time.Duration(p.filled)
	durations := make([]float64, p.filled)
	var total time.Duration
	var phaseSum [phaseCount]time.Duration
	for i := 0; i < p.filled; i++ {
		s := &p.samples[i]
		durations[i] = float64(s.total)
		total += s.total
		for ph := range phaseSum {
			phaseSum[ph] += s.phases[ph]
		}
	}

	out.AvgStep = total / n
	for ph := range phaseSum {
		out.PhaseAvg[ph] = phaseSum[ph] / n
		if out.AvgStep > 0 {
			out.PhaseShare[ph] = float64(out.PhaseAvg[ph]) / float64(out.AvgStep)
		}
	}
	if out.AvgStep > 0 {
		out.StepsPerSecond = float64(time.Second) / float64(out.AvgStep)
	}

	sort.Float64s(durations)
	summary := Summarize(durations)
	out.MinStep = time.Duration(durations[0])
	out.MaxStep = time.Duration(durations[len(durations)-1])
	out.P50Step = time.Duration(summary.P50)
	out.P99Step = time.Duration(stat.Quantile(0.99, stat.Empirical, durations, nil))
	out.StdStep = time.Duration(summary.Std)
	return out
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgStep.Microseconds()),
		slog.Int64("min_step_us", s.MinStep.Microseconds()),
		slog.Int64("max_step_us", s.MaxStep.Microseconds()),
		slog.Int64("p99_step_us", s.P99Step.Microseconds()),
		slog.Int("steps_per_sec", int(s.StepsPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases() {
		if share := s.Share(ph); share > 0.001 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(share*1000))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MinStepUS    int64   `csv:"min_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	P50StepUS    int64   `csv:"p50_step_us"`
	P99StepUS    int64   `csv:"p99_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	FPS          float64 `csv:"fps"`
	ScalePct     float64 `csv:"scale_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	BorderPct    float64 `csv:"border_pct"`
	DetectPct    float64 `csv:"detect_pct"`
}

// CSVRow flattens the summary for a window ending at windowEnd.
func (s PerfStats) CSVRow(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgStepUS:    s.AvgStep.Microseconds(),
		MinStepUS:    s.MinStep.Microseconds(),
		MaxStepUS:    s.MaxStep.Microseconds(),
		P50StepUS:    s.P50Step.Microseconds(),
		P99StepUS:    s.P99Step.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		FPS:          s.FPS,
		ScalePct:     100 * s.Share(PhaseScale),
		IntegratePct: 100 * s.Share(PhaseIntegrate),
		BorderPct:    100 * s.Share(PhaseBorder),
		DetectPct:    100 * s.Share(PhaseDetect),
	}
}
