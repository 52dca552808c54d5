// Package shape implements the 2D collision shapes used by the physics core:
// axis-aligned boxes, oriented boxes and circles, with exact intersection tests.
//
// Shapes are immutable values defined in the local space of their owning
// entity. TransformedBy produces the world-space version for a single query.
package shape

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies which variant a Shape holds.
type Kind uint8

const (
	KindAabb Kind = iota
	KindObb
	KindCircle
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindAabb:
		return "aabb"
	case KindObb:
		return "obb"
	case KindCircle:
		return "circle"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Shape is a closed union over Aabb, Obb and Circle.
// Only the fields relevant to Kind are meaningful:
// HalfSize for boxes, Rotation for Obb, Radius for Circle.
type Shape struct {
	Kind     Kind
	Center   mgl32.Vec2
	HalfSize mgl32.Vec2
	Rotation float32 // radians
	Radius   float32
}

// FromAabb wraps an Aabb.
func FromAabb(a Aabb) Shape {
	return Shape{Kind: KindAabb, Center: a.Center, HalfSize: a.HalfSize}
}

// FromObb wraps an Obb.
func FromObb(o Obb) Shape {
	return Shape{Kind: KindObb, Center: o.Center, HalfSize: o.HalfSize, Rotation: o.Rotation}
}

// FromCircle wraps a Circle.
func FromCircle(c Circle) Shape {
	return Shape{Kind: KindCircle, Center: c.Center, Radius: c.Radius}
}

// Aabb returns the box variant. Only valid for KindAabb.
func (s Shape) Aabb() Aabb {
	return Aabb{Center: s.Center, HalfSize: s.HalfSize}
}

// Obb returns the oriented box variant. An Aabb is returned as a zero-rotation Obb.
func (s Shape) Obb() Obb {
	if s.Kind == KindAabb {
		return Obb{Center: s.Center, HalfSize: s.HalfSize}
	}
	return Obb{Center: s.Center, HalfSize: s.HalfSize, Rotation: s.Rotation}
}

// Circle returns the circle variant. Only valid for KindCircle.
func (s Shape) Circle() Circle {
	return Circle{Center: s.Center, Radius: s.Radius}
}

// Intersects reports whether two shapes overlap. Touching counts as overlap.
// Mixed pairs delegate to one canonical test so both argument orders agree.
func (s Shape) Intersects(other Shape) bool {
	switch s.Kind {
	case KindAabb:
		switch other.Kind {
		case KindAabb:
			return s.Aabb().IntersectsAabb(other.Aabb())
		case KindObb:
			return other.Obb().IntersectsAabb(s.Aabb())
		case KindCircle:
			return s.Aabb().IntersectsCircle(other.Circle())
		}
	case KindObb:
		switch other.Kind {
		case KindAabb:
			return s.Obb().IntersectsAabb(other.Aabb())
		case KindObb:
			return s.Obb().IntersectsObb(other.Obb())
		case KindCircle:
			return s.Obb().IntersectsCircle(other.Circle())
		}
	case KindCircle:
		switch other.Kind {
		case KindAabb:
			return other.Aabb().IntersectsCircle(s.Circle())
		case KindObb:
			return other.Obb().IntersectsCircle(s.Circle())
		case KindCircle:
			return s.Circle().IntersectsCircle(other.Circle())
		}
	}
	return false
}

// TransformedBy maps a local-space shape into world space: the shape is
// rotated around the local origin by rotation, then moved by translation.
// The result is only valid for the current step and must not be cached.
func (s Shape) TransformedBy(translation mgl32.Vec2, rotation float32) Shape {
	switch s.Kind {
	case KindAabb:
		return FromAabb(s.Aabb().TransformedBy(translation, rotation))
	case KindObb:
		return FromObb(s.Obb().TransformedBy(translation, rotation))
	case KindCircle:
		return FromCircle(s.Circle().TransformedBy(translation, rotation))
	}
	return s
}

// Scaled scales half extents or radius around the shape's own center.
// A zero factor is allowed and yields a degenerate shape.
func (s Shape) Scaled(factor float32) Shape {
	if factor < 0 {
		panic(fmt.Sprintf("shape: negative scale factor %v", factor))
	}
	switch s.Kind {
	case KindAabb, KindObb:
		s.HalfSize = s.HalfSize.Mul(factor)
	case KindCircle:
		s.Radius *= factor
	}
	return s
}

// Bounds returns the world-space axis-aligned bounds of the shape.
func (s Shape) Bounds() Aabb {
	switch s.Kind {
	case KindObb:
		return s.Obb().Bounds()
	case KindCircle:
		return Aabb{Center: s.Center, HalfSize: mgl32.Vec2{s.Radius, s.Radius}}
	}
	return s.Aabb()
}

// String formats the shape for logs and test failures.
func (s Shape) String() string {
	switch s.Kind {
	case KindAabb:
		return fmt.Sprintf("aabb{c=(%g,%g) h=(%g,%g)}", s.Center[0], s.Center[1], s.HalfSize[0], s.HalfSize[1])
	case KindObb:
		return fmt.Sprintf("obb{c=(%g,%g) h=(%g,%g) r=%g}", s.Center[0], s.Center[1], s.HalfSize[0], s.HalfSize[1], s.Rotation)
	case KindCircle:
		return fmt.Sprintf("circle{c=(%g,%g) r=%g}", s.Center[0], s.Center[1], s.Radius)
	}
	return s.Kind.String()
}
