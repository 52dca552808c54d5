package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
)

// Integrate advances m by one fixed step of dt seconds.
// Friction is linear damping of the current velocity, applied per step.
// The speed cap holds after every call.
func Integrate(m *components.Movement, dt float32) {
	m.Velocity = m.Velocity.Add(m.Acceleration.Mul(dt)).Sub(m.Velocity.Mul(m.Friction))
	m.Velocity = clampLength(m.Velocity, m.MaxSpeed)
	m.Position = m.Position.Add(m.Velocity.Mul(dt))
	m.Rotation += m.AngularVelocity * dt
}

// MovementSystem integrates every entity with a Movement.
type MovementSystem struct {
	filter *ecs.Filter1[components.Movement]
	pool   *WorkerPool
	bodies []*components.Movement
}

// NewMovementSystem creates the integrator. pool may be nil.
func NewMovementSystem(w *ecs.World, pool *WorkerPool) *MovementSystem {
	return &MovementSystem{
		filter: ecs.NewFilter1[components.Movement](w),
		pool:   pool,
		bodies: make([]*components.Movement, 0, 256),
	}
}

// Update integrates all bodies and returns how many were stepped.
// Each body only reads its own state, so chunks need no coordination.
func (s *MovementSystem) Update(dt float32) int {
	s.bodies = s.bodies[:0]
	query := s.filter.Query()
	for query.Next() {
		s.bodies = append(s.bodies, query.Get())
	}

	bodies := s.bodies
	s.pool.Run(len(bodies), func(_, start, end int) {
		for i := start; i < end; i++ {
			Integrate(bodies[i], dt)
		}
	})
	return len(bodies)
}
