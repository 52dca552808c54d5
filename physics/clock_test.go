package physics

import (
	"math"
	"math/rand"
	"testing"
)

func TestFixedClockAdvance(t *testing.T) {
	tests := []struct {
		name        string
		maxSteps    int
		deltas      []float64
		wantSteps   []int
		wantCapped  bool
		wantAccum   float64
		wantDropped float64
	}{
		{
			name:      "accumulates partial frames",
			deltas:    []float64{0.1, 0.1, 0.1},
			wantSteps: []int{0, 0, 1},
			wantAccum: 0.05,
		},
		{
			name:      "several steps in one frame",
			deltas:    []float64{0.6},
			wantSteps: []int{2},
			wantAccum: 0.1,
		},
		{
			name:        "cap drops whole steps",
			maxSteps:    2,
			deltas:      []float64{1.1},
			wantSteps:   []int{2},
			wantCapped:  true,
			wantAccum:   0.1,
			wantDropped: 0.5,
		},
		{
			name:      "negative delta ignored",
			deltas:    []float64{-1, 0.25},
			wantSteps: []int{0, 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewFixedClock(0.25, tc.maxSteps)
			var capped bool
			total := 0
			for i, d := range tc.deltas {
				steps, cp := c.Advance(d)
				if steps != tc.wantSteps[i] {
					t.Errorf("frame %d: steps = %d, want %d", i, steps, tc.wantSteps[i])
				}
				capped = capped || cp
				total += steps
			}
			if capped != tc.wantCapped {
				t.Errorf("capped = %v, want %v", capped, tc.wantCapped)
			}
			if math.Abs(c.Accumulated()-tc.wantAccum) > 1e-9 {
				t.Errorf("accumulated = %v, want %v", c.Accumulated(), tc.wantAccum)
			}
			if math.Abs(c.Dropped()-tc.wantDropped) > 1e-9 {
				t.Errorf("dropped = %v, want %v", c.Dropped(), tc.wantDropped)
			}
			if c.Steps() != uint64(total) {
				t.Errorf("Steps() = %d, want %d", c.Steps(), total)
			}
		})
	}
}

func TestFixedClockOverstep(t *testing.T) {
	c := NewFixedClock(1.0/64.0, 8)
	if f := c.Overstep(); f != 0 {
		t.Errorf("initial overstep = %v, want 0", f)
	}

	c.Advance(1.0 / 128.0)
	if f := c.Overstep(); math.Abs(float64(f)-0.5) > 1e-6 {
		t.Errorf("overstep = %v, want 0.5", f)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		c.Advance(rng.Float64() / 20)
		if f := c.Overstep(); f < 0 || f >= 1 {
			t.Fatalf("overstep %v outside [0,1)", f)
		}
	}
}

func TestFixedClockRejectsBadTimestep(t *testing.T) {
	for _, dt := range []float64{0, -1.0 / 60.0, math.NaN(), math.Inf(1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewFixedClock(%v) did not panic", dt)
				}
			}()
			NewFixedClock(dt, 0)
		}()
	}
}

func TestFixedClockIgnoresNonFiniteDelta(t *testing.T) {
	for _, maxSteps := range []int{0, 8} {
		c := NewFixedClock(1.0/64.0, maxSteps)
		for _, delta := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			if steps, capped := c.Advance(delta); steps != 0 || capped {
				t.Errorf("maxSteps %d: Advance(%v) = %d, %v, want 0, false", maxSteps, delta, steps, capped)
			}
		}
		if steps, _ := c.Advance(2.0 / 64.0); steps != 2 {
			t.Errorf("maxSteps %d: steps after bad deltas = %d, want 2", maxSteps, steps)
		}
		if f := c.Overstep(); f != 0 {
			t.Errorf("maxSteps %d: overstep = %v, want 0", maxSteps, f)
		}
	}
}
