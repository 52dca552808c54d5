package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Obb is an oriented box: an Aabb rotated around its own center.
type Obb struct {
	Center   mgl32.Vec2
	HalfSize mgl32.Vec2
	Rotation float32 // radians, counter-clockwise
}

// NewObb creates an Obb. Panics on negative half extents.
func NewObb(center, halfSize mgl32.Vec2, rotation float32) Obb {
	checkHalfSize(halfSize)
	return Obb{Center: center, HalfSize: halfSize, Rotation: rotation}
}

// Axes returns the box's local x and y axes in world space.
func (o Obb) Axes() [2]mgl32.Vec2 {
	rot := mgl32.Rotate2D(o.Rotation)
	return [2]mgl32.Vec2{
		rot.Mul2x1(mgl32.Vec2{1, 0}),
		rot.Mul2x1(mgl32.Vec2{0, 1}),
	}
}

// Corners returns the four corners in world space.
func (o Obb) Corners() [4]mgl32.Vec2 {
	rot := mgl32.Rotate2D(o.Rotation)
	hx, hy := o.HalfSize[0], o.HalfSize[1]
	return [4]mgl32.Vec2{
		o.Center.Add(rot.Mul2x1(mgl32.Vec2{hx, hy})),
		o.Center.Add(rot.Mul2x1(mgl32.Vec2{-hx, hy})),
		o.Center.Add(rot.Mul2x1(mgl32.Vec2{hx, -hy})),
		o.Center.Add(rot.Mul2x1(mgl32.Vec2{-hx, -hy})),
	}
}

// project returns the [min, max] interval of the corners on axis.
func (o Obb) project(corners [4]mgl32.Vec2, axis mgl32.Vec2) (float32, float32) {
	lo, hi := float32(math32.MaxFloat32), float32(-math32.MaxFloat32)
	for _, c := range corners {
		p := axis.Dot(c)
		lo = math32.Min(lo, p)
		hi = math32.Max(hi, p)
	}
	return lo, hi
}

// IntersectsObb runs the separating axis test over both boxes' local axes.
func (o Obb) IntersectsObb(other Obb) bool {
	cornersA, cornersB := o.Corners(), other.Corners()
	axesA, axesB := o.Axes(), other.Axes()
	axes := [4]mgl32.Vec2{axesA[0], axesA[1], axesB[0], axesB[1]}

	for _, axis := range axes {
		minA, maxA := o.project(cornersA, axis)
		minB, maxB := other.project(cornersB, axis)
		if maxA < minB || maxB < minA {
			return false
		}
	}
	return true
}

// IntersectsAabb treats the Aabb as a zero-rotation Obb.
func (o Obb) IntersectsAabb(a Aabb) bool {
	return o.IntersectsObb(Obb{Center: a.Center, HalfSize: a.HalfSize})
}

// IntersectsCircle moves the circle center into box space and uses the
// closest point on the box.
func (o Obb) IntersectsCircle(c Circle) bool {
	inverse := mgl32.Rotate2D(-o.Rotation)
	local := inverse.Mul2x1(c.Center.Sub(o.Center))
	return boxIntersectsCircle(local, o.HalfSize, c.Radius)
}

// TransformedBy rotates the box around the origin and translates it.
func (o Obb) TransformedBy(translation mgl32.Vec2, rotation float32) Obb {
	rot := mgl32.Rotate2D(rotation)
	return Obb{
		Center:   rot.Mul2x1(o.Center).Add(translation),
		HalfSize: o.HalfSize,
		Rotation: o.Rotation + rotation,
	}
}

// Bounds returns the smallest Aabb enclosing the box.
func (o Obb) Bounds() Aabb {
	return Aabb{HalfSize: o.HalfSize}.TransformedBy(o.Center, o.Rotation)
}
