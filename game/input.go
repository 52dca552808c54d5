package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// controlsLegend is drawn at the bottom of the screen.
const controlsLegend = "Arrows: steer | Z: fire | P: pause | N: step | ,/.: speed | I: invincible | G/V/W/B/X: overlays | Tab: panel | F3: perf | RMB drag/wheel: camera"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if g.paused && rl.IsKeyPressed(rl.KeyN) {
		g.StepOnce()
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > MinSpeed {
		g.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < MaxSpeed {
		g.speed++
	}

	if rl.IsKeyPressed(rl.KeyI) {
		g.SetInvincible(!g.invincible)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}

	g.handleCameraInput()

	if !g.autopilot {
		g.handleShipInput()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.camera.ViewportW && h == g.camera.ViewportH {
		return
	}
	g.camera.Resize(w, h)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(1+wheel*0.1, mouse.X, mouse.Y)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleShipInput writes keyboard steering into every player's ShipControl.
func (g *Game) handleShipInput() {
	var turn, forward float32
	if rl.IsKeyDown(rl.KeyLeft) {
		turn--
	}
	if rl.IsKeyDown(rl.KeyRight) {
		turn++
	}
	if rl.IsKeyDown(rl.KeyUp) {
		forward = 1
	}
	fire := rl.IsKeyDown(rl.KeyZ)

	query := g.shipFilter.Query()
	for query.Next() {
		_, ctl, _ := query.Get()
		ctl.Turn = turn
		ctl.Forward = forward
		ctl.Fire = fire
	}
}
