package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/asteroid/shape"
)

// Collider couples a local-space shape with an enable flag.
// A disabled collider is ignored by detection (e.g. invincibility windows).
type Collider struct {
	Enabled bool
	Shape   shape.Shape
}

// FromShape creates an enabled collider.
func FromShape(s shape.Shape) Collider {
	return Collider{Enabled: true, Shape: s}
}

// DefaultCollider is an enabled unit box (half size 1) at the entity origin.
func DefaultCollider() Collider {
	return FromShape(shape.FromAabb(shape.NewAabb(mgl32.Vec2{}, mgl32.Vec2{1, 1})))
}

// WorldShape returns the shape moved into world space by m.
// A nil Movement is a static collider and keeps its local shape.
func (c *Collider) WorldShape(m *Movement) shape.Shape {
	if m == nil {
		return c.Shape
	}
	return c.Shape.TransformedBy(m.Position, m.Rotation)
}
