package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/asteroid/systems"
)

// applyShipControls turns steering input into the acceleration and angular
// velocity the integrator consumes. Positive Turn steers clockwise.
func (g *Game) applyShipControls() {
	thrust := float32(g.cfg.Player.Thrust)
	turnRate := float32(g.cfg.Player.TurnRate)

	query := g.shipFilter.Query()
	for query.Next() {
		m, ctl, _ := query.Get()
		m.AngularVelocity = -ctl.Turn * turnRate
		m.Acceleration = m.Direction().Mul(thrust * ctl.Forward)
	}
}

// updateShips counts down fire cooldowns and queues shots for ships that
// are firing. Shots are spawned once the query is done.
func (g *Game) updateShips(dt float32) {
	cooldown := float32(g.cfg.Player.FireCooldown)
	nose := float32(g.cfg.Player.HalfHeight)

	g.pendingShot = g.pendingShot[:0]
	query := g.shipFilter.Query()
	for query.Next() {
		m, ctl, player := query.Get()
		if ctl.Cooldown > 0 {
			ctl.Cooldown -= dt
		}
		if !ctl.Fire || ctl.Cooldown > 0 {
			continue
		}
		dir := m.Direction()
		g.pendingShot = append(g.pendingShot, shot{
			owner:     player.ID,
			position:  m.Position.Add(dir.Mul(nose)),
			direction: dir,
			rotation:  m.Rotation,
		})
		ctl.Cooldown = cooldown
	}

	for _, s := range g.pendingShot {
		g.spawnProjectile(s)
	}
}

// steerAutopilot aims every ship at the nearest asteroid and fires when
// roughly lined up.
func (g *Game) steerAutopilot() {
	var targets []mgl32.Vec2
	eq := g.enemyFilter.Query()
	for eq.Next() {
		m, _ := eq.Get()
		targets = append(targets, m.Position)
	}

	query := g.shipFilter.Query()
	for query.Next() {
		m, ctl, _ := query.Get()
		ctl.Forward = 0
		ctl.Turn = 0
		ctl.Fire = false

		best := float32(-1)
		var aim mgl32.Vec2
		for _, t := range targets {
			d := t.Sub(m.Position)
			if l := d.Dot(d); best < 0 || l < best {
				best = l
				aim = d
			}
		}
		if best < 0 {
			continue
		}

		// Facing is local +Y, so the heading angle is rotation + Pi/2
		want := math32.Atan2(aim[1], aim[0])
		diff := systems.NormalizeAngle(want - (m.Rotation + math32.Pi/2))
		ctl.Turn = mgl32.Clamp(-2*diff, -1, 1)
		ctl.Fire = math32.Abs(diff) < 0.15
	}
}
