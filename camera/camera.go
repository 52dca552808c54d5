// Package camera provides a 2D camera for viewing an origin-centered,
// y-up world on a y-down screen.
package camera

import "github.com/go-gl/mathgl/mgl32"

// Camera controls the viewport into the simulation world.
// Supports pan and zoom, and draws wrap-around copies near play area edges.
type Camera struct {
	// Center is the world point shown at the viewport center
	Center mgl32.Vec2

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera looking at the origin with 1:1 zoom.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// WorldToScreen converts world coordinates to screen pixels.
func (c *Camera) WorldToScreen(p mgl32.Vec2) (sx, sy float32) {
	d := p.Sub(c.Center)
	sx = c.ViewportW/2 + d[0]*c.Zoom
	sy = c.ViewportH/2 - d[1]*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen pixels to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) mgl32.Vec2 {
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (c.ViewportH/2 - sy) / c.Zoom
	return c.Center.Add(mgl32.Vec2{dx, dy})
}

// ScreenRotation converts a counter-clockwise world rotation in radians to
// the clockwise degrees used for drawing on screen.
func ScreenRotation(rotation float32) float32 {
	return -mgl32.RadToDeg(rotation)
}

// Scale converts a world length to screen pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible returns true if a circle at p with given radius could be visible
// on screen (conservative check for culling).
func (c *Camera) IsVisible(p mgl32.Vec2, radius float32) bool {
	lo, hi := c.VisibleWorldBounds()
	return p[0]+radius >= lo[0] && p[0]-radius <= hi[0] &&
		p[1]+radius >= lo[1] && p[1]-radius <= hi[1]
}

// WrapGhosts returns world-space copies of p for an entity of the given
// radius that is about to wrap across a play area of half extents limit.
// Returns up to 3 copies (4 positions in total at corners).
func WrapGhosts(p mgl32.Vec2, radius float32, limit mgl32.Vec2) []mgl32.Vec2 {
	var ghosts []mgl32.Vec2

	var shiftX, shiftY float32
	if p[0] > limit[0]-radius {
		shiftX = -2 * limit[0]
	} else if p[0] < -limit[0]+radius {
		shiftX = 2 * limit[0]
	}
	if p[1] > limit[1]-radius {
		shiftY = -2 * limit[1]
	} else if p[1] < -limit[1]+radius {
		shiftY = 2 * limit[1]
	}

	if shiftX != 0 {
		ghosts = append(ghosts, mgl32.Vec2{p[0] + shiftX, p[1]})
	}
	if shiftY != 0 {
		ghosts = append(ghosts, mgl32.Vec2{p[0], p[1] + shiftY})
	}
	if shiftX != 0 && shiftY != 0 {
		ghosts = append(ghosts, mgl32.Vec2{p[0] + shiftX, p[1] + shiftY})
	}
	return ghosts
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.Center = c.Center.Add(mgl32.Vec2{dx / c.Zoom, -dy / c.Zoom})
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = mgl32.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// screen pixel (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	before := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	after := c.ScreenToWorld(sx, sy)
	c.Center = c.Center.Add(before.Sub(after))
}

// Reset returns the camera to the origin at 1:1 zoom.
func (c *Camera) Reset() {
	c.Center = mgl32.Vec2{}
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate corners of the visible area.
func (c *Camera) VisibleWorldBounds() (lo, hi mgl32.Vec2) {
	half := mgl32.Vec2{c.ViewportW / (2 * c.Zoom), c.ViewportH / (2 * c.Zoom)}
	return c.Center.Sub(half), c.Center.Add(half)
}
