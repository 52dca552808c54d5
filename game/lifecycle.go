package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/renderer"
	"github.com/pthm-cable/asteroid/systems"
)

// fixedStep runs the gameplay response after every physics step. The physics
// queries are finished, so entities may be added and removed here.
func (g *Game) fixedStep(step uint64, stats systems.DetectStats, despawned int) {
	dt := g.phys.Clock().FixedDT32()

	// Only projectiles carry DespawnBorder, so border removals are misses.
	g.misses += len(g.phys.TakeDespawned())

	g.resolveCollisions()
	g.removeDead()
	g.updateInvincibility(dt)
	g.updateShips(dt)
	g.updateRespawn(dt)
	g.updateSpawner(dt)

	if g.collector.RecordStep(step, stats, despawned) {
		g.flushTelemetry(step)
	}
}

// resolveCollisions drains the step's events, applies damage in both
// directions and marks DespawnOnCollision entities.
func (g *Game) resolveCollisions() {
	for _, ev := range g.phys.Events().Drain() {
		g.applyDamage(ev.First, ev.Second)
		g.applyDamage(ev.Second, ev.First)
		g.markDespawn(ev.First)
		g.markDespawn(ev.Second)
	}
}

// applyDamage lets damager hurt target.
func (g *Game) applyDamage(damager, target ecs.Entity) {
	if !g.world.Alive(damager) || !g.world.Alive(target) {
		return
	}
	if !g.damagerMap.Has(damager) || !g.healthMap.Has(target) {
		return
	}
	if g.invincibleMap.Has(target) {
		return
	}

	health := g.healthMap.Get(target)
	if health.Dead() {
		return
	}
	health.Damage(g.damagerMap.Get(damager).DamageTo(health))
	if health.Dead() {
		g.dying = append(g.dying, target)
	}
}

func (g *Game) markDespawn(e ecs.Entity) {
	if g.world.Alive(e) && g.despawnHitMap.Has(e) {
		g.despawning = append(g.despawning, e)
	}
}

// removeDead scores destroyed asteroids, takes a life for destroyed ships and
// removes every dead or spent entity.
func (g *Game) removeDead() {
	for _, e := range g.dying {
		if !g.world.Alive(e) {
			continue
		}
		switch {
		case g.enemyMap.Has(e):
			g.kills++
			g.enemies--
			scale := float32(1)
			if g.scaledMap.Has(e) {
				scale = g.scaledMap.Get(e).Factor
			}
			g.score += int(float32(g.cfg.Spawn.ScorePerKill) * scale)
			g.emitDebris(renderer.BurstAsteroid, e, float32(g.cfg.Spawn.EnemyRadius)*scale)
		case g.playerMap.Has(e):
			g.loseLife()
			g.emitDebris(renderer.BurstShip, e, float32(g.cfg.Player.HalfHeight))
		}
		g.world.RemoveEntity(e)
	}
	for _, e := range g.despawning {
		if g.world.Alive(e) {
			g.emitDebris(renderer.BurstImpact, e, 4*float32(g.cfg.Spawn.ProjectileRadius))
			g.world.RemoveEntity(e)
		}
	}
	g.dying = g.dying[:0]
	g.despawning = g.despawning[:0]
}

// emitDebris starts a burst at the entity's position. No-op when headless.
func (g *Game) emitDebris(t renderer.BurstType, e ecs.Entity, radius float32) {
	if g.debris == nil || !g.moveMap.Has(e) {
		return
	}
	g.debris.Emit(t, g.moveMap.Get(e).Position, radius)
}

func (g *Game) loseLife() {
	g.lives--
	if g.lives > 0 {
		g.respawnIn = float32(g.cfg.Player.RespawnDelay)
		slog.Debug("player destroyed", "lives", g.lives, "tick", g.Tick())
		return
	}
	g.gameOver = true
	slog.Info("game over", "score", g.score, "kills", g.kills, "tick", g.Tick())
}

// updateInvincibility counts down invincibility windows and re-enables the
// collider when one ends.
func (g *Game) updateInvincibility(dt float32) {
	var expired []ecs.Entity
	query := g.invincibleFilter.Query()
	for query.Next() {
		inv, _ := query.Get()
		inv.Remaining -= dt
		if inv.Remaining <= 0 {
			expired = append(expired, query.Entity())
		}
	}

	for _, e := range expired {
		g.invincibleMap.Remove(e)
		g.colliderMap.Get(e).Enabled = !g.invincible
	}
}

// SetInvincible toggles a permanent invincibility that disables every player
// collider.
func (g *Game) SetInvincible(on bool) {
	g.invincible = on
	query := g.shipFilter.Query()
	var ships []ecs.Entity
	for query.Next() {
		ships = append(ships, query.Entity())
	}
	for _, e := range ships {
		g.colliderMap.Get(e).Enabled = !on && !g.invincibleMap.Has(e)
	}
}

// Invincible reports whether the invincibility toggle is on.
func (g *Game) Invincible() bool { return g.invincible }

func (g *Game) updateRespawn(dt float32) {
	if g.respawnIn <= 0 {
		return
	}
	g.respawnIn -= dt
	if g.respawnIn <= 0 {
		g.respawnIn = 0
		g.spawnPlayer()
	}
}

// updateSpawner adds an asteroid every enemy interval up to the cap.
func (g *Game) updateSpawner(dt float32) {
	interval := float32(g.cfg.Spawn.EnemyInterval)
	if interval <= 0 {
		return
	}
	g.spawnTimer += dt
	if g.spawnTimer < interval {
		return
	}
	g.spawnTimer -= interval
	if g.enemies < g.cfg.Spawn.MaxEnemies {
		g.spawnEnemy()
	}
}

// bodyCount returns the number of entities with a collider.
func (g *Game) bodyCount() int {
	n := 0
	query := g.bodyFilter.Query()
	for query.Next() {
		n++
	}
	return n
}
