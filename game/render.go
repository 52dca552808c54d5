package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/asteroid/camera"
	"github.com/pthm-cable/asteroid/components"
	"github.com/pthm-cable/asteroid/shape"
	"github.com/pthm-cable/asteroid/ui"
)

var (
	backgroundColor = rl.Color{R: 8, G: 10, B: 18, A: 255}
	boundsColor     = rl.Color{R: 60, G: 70, B: 90, A: 255}
	playerColor     = rl.Color{R: 120, G: 200, B: 255, A: 255}
	enemyColor      = rl.Color{R: 200, G: 170, B: 130, A: 255}
	projectileColor = rl.Color{R: 255, G: 240, B: 160, A: 255}
	gizmoOn         = rl.Color{R: 80, G: 220, B: 100, A: 255}
	gizmoOff        = rl.Color{R: 110, G: 110, B: 110, A: 255}
	velocityColor   = rl.Color{R: 230, G: 90, B: 90, A: 255}
	simPoseColor    = rl.Color{R: 200, G: 80, B: 220, A: 160}
)

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	if g.overlays.IsEnabled(ui.OverlayBounds) {
		g.drawBounds()
	}

	bounds := g.phys.Bounds()
	limit := mgl32.Vec2{bounds.HalfWidth + bounds.Margin, bounds.HalfHeight + bounds.Margin}
	ghosts := g.overlays.IsEnabled(ui.OverlayWrapGhosts)
	gizmos := g.overlays.IsEnabled(ui.OverlayColliders)

	query := g.bodyFilter.Query()
	for query.Next() {
		entity := query.Entity()
		rt, col, tags := query.Get()

		color, kind := g.bodyStyle(tags)
		radius := boundingRadius(col.Shape)
		if g.camera.IsVisible(rt.Position, radius) {
			g.drawBody(kind, rt.Position, rt.Rotation, radius, color)
		}

		if ghosts && g.tunnelMap.Has(entity) {
			for _, p := range camera.WrapGhosts(rt.Position, radius, limit) {
				if g.camera.IsVisible(p, radius) {
					g.drawBody(kind, p, rt.Rotation, radius, color)
				}
			}
		}

		if !g.moveMap.Has(entity) {
			if gizmos {
				g.drawShape(col.Shape, gizmoColor(col))
			}
			continue
		}
		m := g.moveMap.Get(entity)
		if gizmos {
			g.drawShape(col.WorldShape(m), gizmoColor(col))
		}
		if g.overlays.IsEnabled(ui.OverlayVelocity) {
			g.drawLine(m.Position, m.Position.Add(m.Velocity.Mul(0.25)), velocityColor)
		}
		if g.overlays.IsEnabled(ui.OverlaySimPose) {
			sx, sy := g.camera.WorldToScreen(m.Position)
			rl.DrawCircleLines(int32(sx), int32(sy), 3, simPoseColor)
		}
	}

	g.debrisFX.Draw(g.debris.Particles, g.toScreen, g.camera.Scale)

	g.drawUI()

	rl.EndDrawing()
}

type bodyKind uint8

const (
	kindOther bodyKind = iota
	kindPlayer
	kindEnemy
	kindProjectile
)

func (g *Game) bodyStyle(tags *components.Tags) (rl.Color, bodyKind) {
	switch {
	case tags.Groups.Contains(g.playerGroup):
		return playerColor, kindPlayer
	case tags.Groups.Contains(g.enemyGroup):
		return enemyColor, kindEnemy
	case tags.Groups.Contains(g.projectileGroup):
		return projectileColor, kindProjectile
	}
	return rl.LightGray, kindOther
}

// boundingRadius returns the radius of a circle around the shape's center
// that contains it.
func boundingRadius(s shape.Shape) float32 {
	if s.Kind == shape.KindCircle {
		return s.Radius
	}
	return s.HalfSize.Len()
}

func gizmoColor(col *components.Collider) rl.Color {
	if col.Enabled {
		return gizmoOn
	}
	return gizmoOff
}

// drawBody draws the visual for one entity at its render pose.
func (g *Game) drawBody(kind bodyKind, pos mgl32.Vec2, rotation, radius float32, color rl.Color) {
	sx, sy := g.camera.WorldToScreen(pos)
	center := rl.Vector2{X: sx, Y: sy}
	r := g.camera.Scale(radius)

	switch kind {
	case kindPlayer:
		// Ship triangle pointing along local +Y
		rot := mgl32.Rotate2D(rotation)
		nose := g.toScreen(pos.Add(rot.Mul2x1(mgl32.Vec2{0, radius})))
		left := g.toScreen(pos.Add(rot.Mul2x1(mgl32.Vec2{-radius * 0.6, -radius * 0.7})))
		right := g.toScreen(pos.Add(rot.Mul2x1(mgl32.Vec2{radius * 0.6, -radius * 0.7})))
		rl.DrawTriangleLines(nose, left, right, color)
	case kindEnemy:
		rl.DrawPolyLines(center, 7, r, camera.ScreenRotation(rotation), color)
	case kindProjectile:
		rl.DrawCircleV(center, max(r, 2), color)
	default:
		rl.DrawCircleLines(int32(sx), int32(sy), r, color)
	}
}

// drawShape draws a world-space collider outline.
func (g *Game) drawShape(s shape.Shape, color rl.Color) {
	if s.Kind == shape.KindCircle {
		c := s.Circle()
		sx, sy := g.camera.WorldToScreen(c.Center)
		rl.DrawCircleLines(int32(sx), int32(sy), g.camera.Scale(c.Radius), color)
		return
	}
	corners := s.Obb().Corners()
	for i := range corners {
		g.drawLine(corners[i], corners[(i+1)%len(corners)], color)
	}
}

func (g *Game) drawBounds() {
	b := g.phys.Bounds()
	hw, hh := b.HalfWidth, b.HalfHeight
	corners := [4]mgl32.Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	for i := range corners {
		g.drawLine(corners[i], corners[(i+1)%len(corners)], boundsColor)
	}
}

func (g *Game) drawLine(a, b mgl32.Vec2, color rl.Color) {
	rl.DrawLineV(g.toScreen(a), g.toScreen(b), color)
}

func (g *Game) toScreen(p mgl32.Vec2) rl.Vector2 {
	sx, sy := g.camera.WorldToScreen(p)
	return rl.Vector2{X: sx, Y: sy}
}

// drawUI draws the HUD and panels.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:      "Asteroid Physics Sandbox",
		Score:      g.score,
		Lives:      g.lives,
		Enemies:    g.enemies,
		Bodies:     g.bodyCount(),
		Tick:       g.Tick(),
		Speed:      g.speed,
		FPS:        rl.GetFPS(),
		Paused:     g.paused,
		Invincible: g.invincible,
		GameOver:   g.gameOver,
	})
	g.hud.DrawControls(int32(g.camera.ViewportH), controlsLegend)

	state := ui.ControlsState{
		Paused:     g.paused,
		Invincible: g.invincible,
		Speed:      g.speed,
		MinSpeed:   MinSpeed,
		MaxSpeed:   MaxSpeed,
	}
	actions := g.controls.Draw(&state, g.overlays)
	g.paused = state.Paused
	g.speed = state.Speed
	if actions.ToggledInvul {
		g.SetInvincible(state.Invincible)
	}
	if actions.Step && g.paused {
		g.StepOnce()
	}
	if actions.ResetCamera {
		g.camera.Reset()
	}

	if g.showPerf {
		g.perfPanel.SetPosition(int32(g.camera.ViewportW)-230, 10)
		g.perfPanel.Draw(g.phys.Perf().Stats())
	}
}
