package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
	"github.com/pthm-cable/asteroid/shape"
)

// shot is a projectile waiting to be spawned after the ship query ends.
type shot struct {
	owner     int
	position  mgl32.Vec2
	direction mgl32.Vec2
	rotation  float32
}

// spawnBody creates the physics part shared by every sandbox entity and
// attaches the group's configured collision layers.
func (g *Game) spawnBody(group components.Group, m components.Movement, col components.Collider) ecs.Entity {
	rt := components.RenderTransform{Position: m.Position, Rotation: m.Rotation}
	tags := components.Tags{Groups: components.Of(group)}
	entity := g.bodyMapper.NewEntity(&m, &rt, &col, &tags)

	if layers, ok := g.bodyLayers[group]; ok {
		g.layerMap.Add(entity, &layers)
	}
	return entity
}

// spawnPlayer creates a ship at the origin, invincible for the configured
// window after spawn.
func (g *Game) spawnPlayer() ecs.Entity {
	pc := g.cfg.Player

	m := components.NewMovement(mgl32.Vec2{}, float32(pc.Friction), float32(pc.MaxSpeed))
	col := components.FromShape(shape.FromObb(shape.NewObb(
		mgl32.Vec2{},
		mgl32.Vec2{float32(pc.HalfWidth), float32(pc.HalfHeight)},
		0,
	)))

	invincibleFor := float32(pc.Invincibility)
	col.Enabled = invincibleFor <= 0 && !g.invincible

	entity := g.spawnBody(g.playerGroup, m, col)

	g.nextShipID++
	g.playerMap.Add(entity, &components.Player{ID: g.nextShipID})
	g.shipMap.Add(entity, &components.ShipControl{})
	health := components.NewHealth(pc.Health)
	g.healthMap.Add(entity, &health)
	g.tunnelMap.Add(entity, &components.TunnelBorder{})
	if invincibleFor > 0 {
		g.invincibleMap.Add(entity, &components.Invincible{Remaining: invincibleFor})
	}
	return entity
}

// spawnEnemy creates an asteroid at a random corner of the play area with a
// random heading, speed, spin and size.
func (g *Game) spawnEnemy() ecs.Entity {
	sc := g.cfg.Spawn
	bounds := g.phys.Bounds()

	corner := mgl32.Vec2{bounds.HalfWidth, bounds.HalfHeight}
	if g.rng.Intn(2) == 0 {
		corner[0] = -corner[0]
	}
	if g.rng.Intn(2) == 0 {
		corner[1] = -corner[1]
	}

	angle := g.rng.Float64() * 2 * math.Pi
	speed := float32(sc.EnemySpeed) * (0.5 + g.rng.Float32())
	velocity := mgl32.Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))}.Mul(speed)
	spin := float32(sc.EnemySpin) * (2*g.rng.Float32() - 1)
	scale := 1 + float32(sc.SizeVariation)*(2*g.rng.Float32()-1)

	m := components.DefaultMovement()
	m.Position = corner
	m.Velocity = velocity
	m.AngularVelocity = spin

	col := components.FromShape(shape.FromCircle(shape.NewCircle(mgl32.Vec2{}, float32(sc.EnemyRadius))))
	entity := g.spawnBody(g.enemyGroup, m, col)

	g.enemyMap.Add(entity, &components.Enemy{})
	health := components.NewHealth(sc.EnemyHealth)
	g.healthMap.Add(entity, &health)
	g.damagerMap.Add(entity, &components.Damager{Kill: true})
	g.tunnelMap.Add(entity, &components.TunnelBorder{})
	g.scaledMap.Add(entity, &components.Scaled{Factor: scale})

	g.enemies++
	return entity
}

// spawnProjectile creates a shot travelling along direction.
func (g *Game) spawnProjectile(s shot) ecs.Entity {
	sc := g.cfg.Spawn

	m := components.DefaultMovement()
	m.Position = s.position
	m.Velocity = s.direction.Mul(float32(sc.ProjectileSpeed))
	m.Rotation = s.rotation

	col := components.FromShape(shape.FromCircle(shape.NewCircle(mgl32.Vec2{}, float32(sc.ProjectileRadius))))
	entity := g.spawnBody(g.projectileGroup, m, col)

	g.projectileMap.Add(entity, &components.Projectile{Owner: s.owner})
	g.damagerMap.Add(entity, &components.Damager{Amount: sc.ProjectileDamage})
	g.despawnHitMap.Add(entity, &components.DespawnOnCollision{})
	g.despawnMap.Add(entity, &components.DespawnBorder{})
	return entity
}
