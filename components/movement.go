package components

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is the kinematic state of a simulated entity.
// Acceleration and AngularVelocity are inputs written by gameplay code;
// the integrator owns Position, Velocity and Rotation.
type Movement struct {
	Position        mgl32.Vec2
	Velocity        mgl32.Vec2
	Acceleration    mgl32.Vec2
	Rotation        float32 // radians, counter-clockwise
	AngularVelocity float32 // radians per second
	Friction        float32 // linear damping per step, >= 0
	MaxSpeed        float32 // velocity magnitude cap
}

// DefaultMovement returns a resting body with no friction and no speed cap.
func DefaultMovement() Movement {
	return Movement{MaxSpeed: math32.MaxFloat32}
}

// NewMovement creates a resting body at position.
// Panics on negative friction or max speed.
func NewMovement(position mgl32.Vec2, friction, maxSpeed float32) Movement {
	if friction < 0 {
		panic(fmt.Sprintf("components: negative friction %v", friction))
	}
	if maxSpeed < 0 {
		panic(fmt.Sprintf("components: negative max speed %v", maxSpeed))
	}
	return Movement{Position: position, Friction: friction, MaxSpeed: maxSpeed}
}

// Direction returns the unit vector the entity faces (local +Y rotated by Rotation).
func (m *Movement) Direction() mgl32.Vec2 {
	return mgl32.Rotate2D(m.Rotation).Mul2x1(mgl32.Vec2{0, 1})
}

// Speed returns the current velocity magnitude.
func (m *Movement) Speed() float32 {
	return m.Velocity.Len()
}
