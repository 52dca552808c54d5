package shape

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Aabb is an axis-aligned box given by its center and half extents.
type Aabb struct {
	Center   mgl32.Vec2
	HalfSize mgl32.Vec2
}

// NewAabb creates an Aabb. Panics on negative half extents.
func NewAabb(center, halfSize mgl32.Vec2) Aabb {
	checkHalfSize(halfSize)
	return Aabb{Center: center, HalfSize: halfSize}
}

// Min returns the lower-left corner.
func (a Aabb) Min() mgl32.Vec2 {
	return a.Center.Sub(a.HalfSize)
}

// Max returns the upper-right corner.
func (a Aabb) Max() mgl32.Vec2 {
	return a.Center.Add(a.HalfSize)
}

// IntersectsAabb tests interval overlap on both axes.
func (a Aabb) IntersectsAabb(b Aabb) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return aMin[0] <= bMax[0] && aMax[0] >= bMin[0] &&
		aMin[1] <= bMax[1] && aMax[1] >= bMin[1]
}

// IntersectsCircle uses the closest point on the box to the circle center.
func (a Aabb) IntersectsCircle(c Circle) bool {
	return boxIntersectsCircle(c.Center.Sub(a.Center), a.HalfSize, c.Radius)
}

// TransformedBy rotates the box around the origin and translates it.
// The result stays axis-aligned and grows to enclose the rotated box.
func (a Aabb) TransformedBy(translation mgl32.Vec2, rotation float32) Aabb {
	if rotation == 0 {
		return Aabb{Center: a.Center.Add(translation), HalfSize: a.HalfSize}
	}
	rot := mgl32.Rotate2D(rotation)
	cos, sin := math32.Abs(rot[0]), math32.Abs(rot[1])
	return Aabb{
		Center: rot.Mul2x1(a.Center).Add(translation),
		HalfSize: mgl32.Vec2{
			cos*a.HalfSize[0] + sin*a.HalfSize[1],
			sin*a.HalfSize[0] + cos*a.HalfSize[1],
		},
	}
}

// boxIntersectsCircle tests a circle against a box centered at the origin of
// its own frame. local is the circle center expressed in that frame.
func boxIntersectsCircle(local, halfSize mgl32.Vec2, radius float32) bool {
	clamped := mgl32.Vec2{
		mgl32.Clamp(local[0], -halfSize[0], halfSize[0]),
		mgl32.Clamp(local[1], -halfSize[1], halfSize[1]),
	}
	d := local.Sub(clamped)
	return d.Dot(d) <= radius*radius
}

func checkHalfSize(halfSize mgl32.Vec2) {
	if halfSize[0] < 0 || halfSize[1] < 0 {
		panic(fmt.Sprintf("shape: negative half size (%v, %v)", halfSize[0], halfSize[1]))
	}
}
