package physics

import (
	"fmt"
	"math"
)

// FixedClock turns variable frame deltas into a whole number of fixed steps.
// It owns the accumulator, so no global timer state is involved.
type FixedClock struct {
	fixedDT     float64
	maxSteps    int // 0 = unlimited
	accumulated float64
	steps       uint64
	dropped     float64
}

// NewFixedClock creates a clock stepping every dt seconds. maxSteps caps the
// steps run for one frame (0 = unlimited). Panics if dt is not positive.
func NewFixedClock(dt float64, maxSteps int) *FixedClock {
	if !(dt > 0) || math.IsInf(dt, 0) {
		panic(fmt.Sprintf("physics: fixed timestep must be positive and finite, got %v", dt))
	}
	if maxSteps < 0 {
		maxSteps = 0
	}
	return &FixedClock{fixedDT: dt, maxSteps: maxSteps}
}

// Advance adds a frame delta in seconds and returns how many fixed steps are
// due. When the cap is hit, whole steps beyond it are dropped and capped is
// true; the fractional remainder is kept. Negative and non-finite deltas are
// ignored.
func (c *FixedClock) Advance(delta float64) (steps int, capped bool) {
	if delta > 0 && !math.IsInf(delta, 1) {
		c.accumulated += delta
	}
	for c.accumulated >= c.fixedDT {
		if c.maxSteps > 0 && steps == c.maxSteps {
			rest := math.Mod(c.accumulated, c.fixedDT)
			c.dropped += c.accumulated - rest
			c.accumulated = rest
			capped = true
			break
		}
		c.accumulated -= c.fixedDT
		steps++
	}
	c.steps += uint64(steps)
	return steps, capped
}

// Overstep is how far the next fixed step has progressed, in [0, 1).
func (c *FixedClock) Overstep() float32 {
	f := float32(c.accumulated / c.fixedDT)
	if f < 0 {
		return 0
	}
	if f >= 1 {
		return math.Nextafter32(1, 0)
	}
	return f
}

// FixedDT returns the step length in seconds.
func (c *FixedClock) FixedDT() float64 { return c.fixedDT }

// FixedDT32 returns the step length as float32.
func (c *FixedClock) FixedDT32() float32 { return float32(c.fixedDT) }

// Steps returns the total fixed steps granted so far.
func (c *FixedClock) Steps() uint64 { return c.steps }

// Accumulated returns the time not yet consumed by a step.
func (c *FixedClock) Accumulated() float64 { return c.accumulated }

// Dropped returns the total time discarded by the step cap.
func (c *FixedClock) Dropped() float64 { return c.dropped }
