package systems

import (
	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
)

// Bounds is the play area, centered at the origin.
type Bounds struct {
	HalfWidth, HalfHeight float32
	Margin                float32 // extra room outside the visible area
}

// Contains reports whether (x, y) lies inside the bounds plus margin.
func (b Bounds) Contains(x, y float32) bool {
	return math32.Abs(x) <= b.HalfWidth+b.Margin && math32.Abs(y) <= b.HalfHeight+b.Margin
}

// BorderSystem wraps TunnelBorder entities and finds DespawnBorder entities
// that left the play area.
type BorderSystem struct {
	tunnel  *ecs.Filter1[components.Movement]
	despawn *ecs.Filter1[components.Movement]
	bounds  Bounds
	outside []ecs.Entity
}

// NewBorderSystem creates the border system.
func NewBorderSystem(w *ecs.World, bounds Bounds) *BorderSystem {
	return &BorderSystem{
		tunnel:  ecs.NewFilter1[components.Movement](w).With(ecs.C[components.TunnelBorder]()),
		despawn: ecs.NewFilter1[components.Movement](w).With(ecs.C[components.DespawnBorder]()),
		bounds:  bounds,
	}
}

// Bounds returns the play area.
func (s *BorderSystem) Bounds() Bounds {
	return s.bounds
}

// Update wraps tunneling entities and returns the entities to remove.
// The returned slice is reused by the next call. Removal is left to the
// caller since the world is locked while queries run.
func (s *BorderSystem) Update() []ecs.Entity {
	limitX := s.bounds.HalfWidth + s.bounds.Margin
	limitY := s.bounds.HalfHeight + s.bounds.Margin

	query := s.tunnel.Query()
	for query.Next() {
		m := query.Get()
		m.Position[0] = wrap(m.Position[0], limitX)
		m.Position[1] = wrap(m.Position[1], limitY)
	}

	s.outside = s.outside[:0]
	dq := s.despawn.Query()
	for dq.Next() {
		m := dq.Get()
		if !s.bounds.Contains(m.Position[0], m.Position[1]) {
			s.outside = append(s.outside, dq.Entity())
		}
	}
	return s.outside
}
