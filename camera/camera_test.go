package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	if cam.Center != (mgl32.Vec2{}) {
		t.Errorf("expected camera at origin, got %v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := New(1280, 720)

	tests := []struct {
		name   string
		p      mgl32.Vec2
		sx, sy float32
	}{
		{"origin at screen center", mgl32.Vec2{0, 0}, 640, 360},
		{"up is toward top of screen", mgl32.Vec2{0, 100}, 640, 260},
		{"right is right", mgl32.Vec2{100, 0}, 740, 360},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tc.p)
			if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
				t.Errorf("expected (%f, %f), got (%f, %f)", tc.sx, tc.sy, sx, sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.Center = mgl32.Vec2{-200, 75}
	cam.SetZoom(1.5)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		p := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(p)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> %v -> (%f,%f)", tc.sx, tc.sy, p, sx, sy)
		}
	}
}

func TestPanAndZoom(t *testing.T) {
	cam := New(1280, 720)
	cam.SetZoom(2)
	cam.Pan(100, 50)

	want := mgl32.Vec2{50, -25}
	if cam.Center != want {
		t.Errorf("center after pan = %v, want %v", cam.Center, want)
	}

	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want clamped to %v", cam.Zoom, cam.MaxZoom)
	}

	cam.Reset()
	if cam.Center != (mgl32.Vec2{}) || cam.Zoom != 1 {
		t.Errorf("reset camera = %+v", cam)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720)

	if !cam.IsVisible(mgl32.Vec2{0, 0}, 10) {
		t.Error("origin should be visible")
	}
	if cam.IsVisible(mgl32.Vec2{700, 0}, 10) {
		t.Error("point beyond right edge should not be visible")
	}
	if !cam.IsVisible(mgl32.Vec2{645, 0}, 10) {
		t.Error("circle overlapping right edge should be visible")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1280, 720)
	cam.Center = mgl32.Vec2{100, -50}
	cam.SetZoom(2)

	lo, hi := cam.VisibleWorldBounds()
	if lo != (mgl32.Vec2{-220, -230}) || hi != (mgl32.Vec2{420, 130}) {
		t.Errorf("bounds = %v..%v, want [-220 -230]..[420 130]", lo, hi)
	}

	// The screen corners map onto the bounds
	if p := cam.ScreenToWorld(0, 720); p != lo {
		t.Errorf("bottom-left corner = %v, want %v", p, lo)
	}
	if p := cam.ScreenToWorld(1280, 0); p != hi {
		t.Errorf("top-right corner = %v, want %v", p, hi)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	tests := []struct {
		name   string
		factor float32
		sx, sy float32
	}{
		{"zoom in at corner", 1.5, 100, 80},
		{"zoom out off center", 0.5, 1000, 600},
		{"clamped", 100, 300, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := New(1280, 720)
			cam.Center = mgl32.Vec2{30, 40}
			before := cam.ScreenToWorld(tc.sx, tc.sy)

			cam.ZoomAt(tc.factor, tc.sx, tc.sy)

			after := cam.ScreenToWorld(tc.sx, tc.sy)
			if after.Sub(before).Len() > 1e-3 {
				t.Errorf("world point under cursor moved from %v to %v", before, after)
			}
		})
	}
}

func TestWrapGhosts(t *testing.T) {
	limit := mgl32.Vec2{100, 50}

	tests := []struct {
		name string
		p    mgl32.Vec2
		want int
	}{
		{"interior", mgl32.Vec2{0, 0}, 0},
		{"near right edge", mgl32.Vec2{95, 0}, 1},
		{"near bottom edge", mgl32.Vec2{0, -48}, 1},
		{"near corner", mgl32.Vec2{-97, 46}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ghosts := WrapGhosts(tc.p, 10, limit)
			if len(ghosts) != tc.want {
				t.Fatalf("got %d ghosts, want %d", len(ghosts), tc.want)
			}
			for _, g := range ghosts {
				d := g.Sub(tc.p)
				if (d[0] != 0 && math.Abs(float64(d[0])) != 200) || (d[1] != 0 && math.Abs(float64(d[1])) != 100) {
					t.Errorf("ghost offset %v is not a whole wrap", d)
				}
			}
		})
	}
}

func TestScreenRotation(t *testing.T) {
	if got := ScreenRotation(math.Pi / 2); math.Abs(float64(got+90)) > 1e-4 {
		t.Errorf("ScreenRotation(pi/2) = %v, want -90", got)
	}
}
