// Package physics assembles the fixed-step physics core: scale, integrate,
// border and detect on every fixed step, and render extrapolation once per
// frame.
package physics

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/config"
	"github.com/pthm-cable/asteroid/systems"
	"github.com/pthm-cable/asteroid/telemetry"
)

// Options configures a Physics instance.
type Options struct {
	FixedDT           float64 // seconds per step
	MaxStepsPerFrame  int     // 0 = unlimited
	Pairs             []systems.Pair
	ProximityRadius   float32 // 0 disables the pre-filter
	Bounds            systems.Bounds
	Workers           int // 0 = GOMAXPROCS
	ParallelThreshold int // 0 = systems.DefaultParallelThreshold
	PerfWindow        int

	// OnStep, if set, is called after each fixed step.
	OnStep func(step uint64, stats systems.DetectStats, despawned int)
}

// FrameResult reports what one Update did.
type FrameResult struct {
	Steps    int
	Capped   bool
	Overstep float32
}

// Physics owns the systems and the fixed-step clock for one world.
type Physics struct {
	world *ecs.World
	clock *FixedClock
	pool  *systems.WorkerPool

	scale       *systems.ScaleSystem
	movement    *systems.MovementSystem
	border      *systems.BorderSystem
	collision   *systems.CollisionSystem
	extrapolate *systems.ExtrapolateSystem

	events     *systems.EventBuffer
	perf       *telemetry.PerfCollector
	onStep     func(step uint64, stats systems.DetectStats, despawned int)
	lastDetect systems.DetectStats
	despawned  []ecs.Entity
	step       uint64
}

// New assembles the physics core. Panics if opts.FixedDT is not positive.
func New(world *ecs.World, opts Options) *Physics {
	pool := systems.NewWorkerPool(opts.Workers, opts.ParallelThreshold)

	p := &Physics{
		world:       world,
		clock:       NewFixedClock(opts.FixedDT, opts.MaxStepsPerFrame),
		pool:        pool,
		scale:       systems.NewScaleSystem(world),
		movement:    systems.NewMovementSystem(world, pool),
		border:      systems.NewBorderSystem(world, opts.Bounds),
		collision:   systems.NewCollisionSystem(world, opts.Pairs, opts.ProximityRadius, pool),
		extrapolate: systems.NewExtrapolateSystem(world),
		events:      systems.NewEventBuffer(),
		perf:        telemetry.NewPerfCollector(opts.PerfWindow),
		onStep:      opts.OnStep,
	}

	names := make([]string, len(opts.Pairs))
	for i, pair := range opts.Pairs {
		names[i] = pair.Name
	}
	slog.Info("physics assembled",
		"fixed_dt", opts.FixedDT,
		"max_steps_per_frame", opts.MaxStepsPerFrame,
		"pairs", names,
		"proximity_radius", opts.ProximityRadius,
		"workers", pool.Workers(),
	)
	return p
}

// FromConfig assembles the physics core from configuration.
func FromConfig(world *ecs.World, cfg *config.Config) (*Physics, error) {
	pairs, err := ResolvePairs(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving collision pairs: %w", err)
	}
	return New(world, Options{
		FixedDT:          cfg.Physics.FixedDT,
		MaxStepsPerFrame: cfg.Physics.MaxStepsPerFrame,
		Pairs:            pairs,
		ProximityRadius:  cfg.Derived.ProximityRadius32,
		Bounds: systems.Bounds{
			HalfWidth:  cfg.Derived.HalfWidth32,
			HalfHeight: cfg.Derived.HalfHeight32,
			Margin:     float32(cfg.Border.Margin),
		},
		Workers:           cfg.Physics.Workers,
		ParallelThreshold: cfg.Physics.ParallelThreshold,
		PerfWindow:        cfg.Telemetry.PerfWindow,
	}), nil
}

// SetOnStep replaces the per-step callback.
func (p *Physics) SetOnStep(fn func(step uint64, stats systems.DetectStats, despawned int)) {
	p.onStep = fn
}

// Update advances the clock by a frame delta in seconds, runs every due fixed
// step, then writes render transforms once for the remaining overstep.
func (p *Physics) Update(frameDelta float64) FrameResult {
	steps, capped := p.clock.Advance(frameDelta)
	for i := 0; i < steps; i++ {
		p.Step()
	}
	if capped {
		slog.Debug("fixed step cap hit",
			"steps", steps,
			"dropped_s", p.clock.Dropped(),
		)
	}

	f := p.clock.Overstep()
	p.Extrapolate(f)
	p.perf.RecordFrame()
	return FrameResult{Steps: steps, Capped: capped, Overstep: f}
}

// Step runs one fixed step: scale, integrate, border, detect.
// Integration completes before detection reads the new state.
func (p *Physics) Step() systems.DetectStats {
	dt := p.clock.FixedDT32()
	p.step++

	p.perf.BeginStep()

	p.perf.Mark(telemetry.PhaseScale)
	p.scale.Update()

	p.perf.Mark(telemetry.PhaseIntegrate)
	p.movement.Update(dt)

	p.perf.Mark(telemetry.PhaseBorder)
	outside := p.border.Update()
	removed := len(outside)
	for _, e := range outside {
		p.world.RemoveEntity(e)
	}
	p.despawned = append(p.despawned, outside...)

	p.perf.Mark(telemetry.PhaseDetect)
	p.lastDetect = p.collision.Detect(p.step, p.events)

	p.perf.EndStep()

	if p.onStep != nil {
		p.onStep(p.step, p.lastDetect, removed)
	}
	return p.lastDetect
}

// Extrapolate writes render transforms for overstep fraction f.
func (p *Physics) Extrapolate(f float32) {
	p.extrapolate.Update(p.clock.FixedDT32(), f)
}

// Events returns the collision event sink. Consumers drain it between frames.
func (p *Physics) Events() *systems.EventBuffer { return p.events }

// TakeDespawned returns entities removed by the border since the last call.
func (p *Physics) TakeDespawned() []ecs.Entity {
	out := p.despawned
	p.despawned = nil
	return out
}

// Clock returns the fixed-step clock.
func (p *Physics) Clock() *FixedClock { return p.clock }

// Perf returns the step timing collector.
func (p *Physics) Perf() *telemetry.PerfCollector { return p.perf }

// StepCount returns the number of fixed steps run.
func (p *Physics) StepCount() uint64 { return p.step }

// LastDetect returns the stats of the most recent detection pass.
func (p *Physics) LastDetect() systems.DetectStats { return p.lastDetect }

// Bounds returns the play area.
func (p *Physics) Bounds() systems.Bounds { return p.border.Bounds() }

// Pairs returns the registered detection pairs.
func (p *Physics) Pairs() []systems.Pair { return p.collision.Pairs() }

// Close stops the worker pool.
func (p *Physics) Close() {
	p.pool.Stop()
}
