package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
)

// ScaleSystem applies pending Scaled factors to collider shapes.
type ScaleSystem struct {
	filter *ecs.Filter2[components.Scaled, components.Collider]
}

// NewScaleSystem creates the scale system.
func NewScaleSystem(w *ecs.World) *ScaleSystem {
	return &ScaleSystem{filter: ecs.NewFilter2[components.Scaled, components.Collider](w)}
}

// Update scales each collider once and returns how many were scaled.
func (s *ScaleSystem) Update() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		sc, col := query.Get()
		if sc.Applied {
			continue
		}
		col.Shape = col.Shape.Scaled(sc.Factor)
		sc.Applied = true
		n++
	}
	return n
}
