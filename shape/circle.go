package shape

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Circle is a bounding circle.
type Circle struct {
	Center mgl32.Vec2
	Radius float32
}

// NewCircle creates a Circle. Panics on a negative radius.
func NewCircle(center mgl32.Vec2, radius float32) Circle {
	if radius < 0 {
		panic(fmt.Sprintf("shape: negative radius %v", radius))
	}
	return Circle{Center: center, Radius: radius}
}

// IntersectsCircle compares squared center distance with the squared radius sum.
func (c Circle) IntersectsCircle(other Circle) bool {
	d := c.Center.Sub(other.Center)
	r := c.Radius + other.Radius
	return d.Dot(d) <= r*r
}

// TransformedBy rotates the center around the origin and translates it.
func (c Circle) TransformedBy(translation mgl32.Vec2, rotation float32) Circle {
	center := c.Center
	if rotation != 0 {
		center = mgl32.Rotate2D(rotation).Mul2x1(center)
	}
	return Circle{Center: center.Add(translation), Radius: c.Radius}
}
