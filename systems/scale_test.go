package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
	"github.com/pthm-cable/asteroid/shape"
)

func TestScaleSystemAppliesOnce(t *testing.T) {
	w := ecs.NewWorld()
	bodies := ecs.NewMap2[components.Scaled, components.Collider](w)

	col := components.FromShape(shape.FromCircle(shape.NewCircle(mgl32.Vec2{}, 4)))
	e := bodies.NewEntity(&components.Scaled{Factor: 1.5}, &col)

	sys := NewScaleSystem(w)
	if n := sys.Update(); n != 1 {
		t.Fatalf("first update scaled %d, want 1", n)
	}
	if n := sys.Update(); n != 0 {
		t.Fatalf("second update scaled %d, want 0", n)
	}

	sc, got := bodies.Get(e)
	if got.Shape.Radius != 6 {
		t.Errorf("radius = %v, want 6", got.Shape.Radius)
	}
	if !sc.Applied {
		t.Error("Scaled not marked applied")
	}
}
