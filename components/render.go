package components

import "github.com/go-gl/mathgl/mgl32"

// RenderTransform is the display-only pose written once per frame.
// Simulation code never reads it back.
type RenderTransform struct {
	Position mgl32.Vec2
	Rotation float32
}
