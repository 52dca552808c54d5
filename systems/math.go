package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// clampLength scales v down so that |v| <= maxLen.
func clampLength(v mgl32.Vec2, maxLen float32) mgl32.Vec2 {
	l := v.Len()
	if l <= maxLen {
		return v
	}
	if l == 0 || maxLen <= 0 {
		return mgl32.Vec2{}
	}
	return v.Mul(maxLen / l)
}

// lerp blends a toward b by t using linear easing over a unit duration.
func lerp(a, b, t float32) float32 {
	return ease.Linear(t, a, b-a, 1)
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// wrap moves v by 2*limit when it leaves [-limit, limit].
func wrap(v, limit float32) float32 {
	if v > limit {
		return v - 2*limit
	}
	if v < -limit {
		return v + 2*limit
	}
	return v
}
