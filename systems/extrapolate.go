package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
)

// Extrapolate returns the render pose a fraction f into the next fixed step.
// f = 0 yields the simulated pose exactly; f -> 1 approaches the pose one
// step ahead at the current velocity. m is not modified.
func Extrapolate(m *components.Movement, fixedDT, f float32) components.RenderTransform {
	future := m.Position.Add(m.Velocity.Mul(fixedDT))
	futureRotation := m.Rotation + m.AngularVelocity*fixedDT
	return components.RenderTransform{
		Position: mgl32.Vec2{
			lerp(m.Position[0], future[0], f),
			lerp(m.Position[1], future[1], f),
		},
		Rotation: lerp(m.Rotation, futureRotation, f),
	}
}

// ExtrapolateSystem writes RenderTransform from Movement once per frame.
type ExtrapolateSystem struct {
	filter *ecs.Filter2[components.Movement, components.RenderTransform]
}

// NewExtrapolateSystem creates the render-pose writer.
func NewExtrapolateSystem(w *ecs.World) *ExtrapolateSystem {
	return &ExtrapolateSystem{
		filter: ecs.NewFilter2[components.Movement, components.RenderTransform](w),
	}
}

// Update writes render transforms for overstep fraction f.
func (s *ExtrapolateSystem) Update(fixedDT, f float32) int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		m, rt := query.Get()
		*rt = Extrapolate(m, fixedDT, f)
		n++
	}
	return n
}
