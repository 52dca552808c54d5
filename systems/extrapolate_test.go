package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
)

func TestExtrapolate(t *testing.T) {
	m := components.Movement{
		Position:        mgl32.Vec2{10, -4},
		Velocity:        mgl32.Vec2{64, 32},
		Rotation:        1.25,
		AngularVelocity: 3,
		MaxSpeed:        100,
	}

	tests := []struct {
		name    string
		f       float32
		wantPos mgl32.Vec2
		wantRot float32
		eps     float64
	}{
		{"start of step", 0, mgl32.Vec2{10, -4}, 1.25, 0},
		{"half step", 0.5, mgl32.Vec2{10.5, -3.75}, 1.25 + 1.5*testDT, 1e-5},
		{"near end of step", 0.999, mgl32.Vec2{11, -3.5}, 1.25 + 3*testDT, 1e-2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := m
			got := Extrapolate(&m, testDT, tc.f)
			if !near(got.Position, tc.wantPos, tc.eps) {
				t.Errorf("position = %v, want %v", got.Position, tc.wantPos)
			}
			if math.Abs(float64(got.Rotation-tc.wantRot)) > tc.eps {
				t.Errorf("rotation = %v, want %v", got.Rotation, tc.wantRot)
			}
			if m != before {
				t.Error("Extrapolate modified movement")
			}
		})
	}
}

func TestExtrapolateSystem(t *testing.T) {
	w := ecs.NewWorld()
	bodies := ecs.NewMap2[components.Movement, components.RenderTransform](w)
	moveOnly := ecs.NewMap1[components.Movement](w)

	m := components.Movement{Position: mgl32.Vec2{1, 2}, Velocity: mgl32.Vec2{64, 0}, MaxSpeed: 100}
	e := bodies.NewEntity(&m, &components.RenderTransform{})
	other := components.Movement{Position: mgl32.Vec2{5, 5}, MaxSpeed: 100}
	moveOnly.NewEntity(&other)

	sys := NewExtrapolateSystem(w)
	if n := sys.Update(testDT, 0.25); n != 1 {
		t.Fatalf("updated %d transforms, want 1", n)
	}

	_, rt := bodies.Get(e)
	want := mgl32.Vec2{1.25, 2}
	if !near(rt.Position, want, 1e-5) {
		t.Errorf("render position = %v, want %v", rt.Position, want)
	}
	mv, _ := bodies.Get(e)
	if mv.Position != (mgl32.Vec2{1, 2}) {
		t.Errorf("movement position changed to %v", mv.Position)
	}
}
