// Package game is the asteroid sandbox built on the physics core: ships,
// asteroids and projectiles, collision response, and the raylib viewer.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/camera"
	"github.com/pthm-cable/asteroid/components"
	"github.com/pthm-cable/asteroid/config"
	"github.com/pthm-cable/asteroid/physics"
	"github.com/pthm-cable/asteroid/renderer"
	"github.com/pthm-cable/asteroid/telemetry"
	"github.com/pthm-cable/asteroid/ui"
)

// Group names the sandbox requires in the collision config.
const (
	PlayerGroup     = "player"
	EnemyGroup      = "enemy"
	ProjectileGroup = "projectile"
)

// Simulation speed limits for the viewer.
const (
	MinSpeed = 1
	MaxSpeed = 10
)

// Options configures a Game.
type Options struct {
	Config    *config.Config // nil = config.Cfg()
	Seed      int64          // 0 = Spawn.Seed from config
	Headless  bool
	Autopilot bool // steer and fire the player automatically
	LogStats  bool
	OutputDir string

	// OnStats, if set, receives every flushed collision window.
	OnStats func(telemetry.WindowStats)
}

// Game holds the complete sandbox state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	phys  *physics.Physics
	rng   *rand.Rand
	seed  int64

	playerGroup     components.Group
	enemyGroup      components.Group
	projectileGroup components.Group
	bodyLayers      map[components.Group]components.CollisionLayers

	// Entity mappers
	bodyMapper *ecs.Map4[
		components.Movement,
		components.RenderTransform,
		components.Collider,
		components.Tags,
	]
	moveMap       *ecs.Map[components.Movement]
	colliderMap   *ecs.Map[components.Collider]
	layerMap      *ecs.Map[components.CollisionLayers]
	playerMap     *ecs.Map[components.Player]
	shipMap       *ecs.Map[components.ShipControl]
	enemyMap      *ecs.Map[components.Enemy]
	projectileMap *ecs.Map[components.Projectile]
	healthMap     *ecs.Map[components.Health]
	damagerMap    *ecs.Map[components.Damager]
	despawnHitMap *ecs.Map[components.DespawnOnCollision]
	invincibleMap *ecs.Map[components.Invincible]
	tunnelMap     *ecs.Map[components.TunnelBorder]
	despawnMap    *ecs.Map[components.DespawnBorder]
	scaledMap     *ecs.Map[components.Scaled]

	// Filters
	shipFilter       *ecs.Filter3[components.Movement, components.ShipControl, components.Player]
	enemyFilter      *ecs.Filter2[components.Movement, components.Enemy]
	invincibleFilter *ecs.Filter2[components.Invincible, components.Collider]
	bodyFilter       *ecs.Filter3[components.RenderTransform, components.Collider, components.Tags]

	// Gameplay state
	score       int
	lives       int
	respawnIn   float32 // seconds until the player returns, 0 = none pending
	spawnTimer  float32
	enemies     int
	kills       int
	misses      int
	nextShipID  int
	gameOver    bool
	invincible  bool // keeps player colliders disabled
	dying       []ecs.Entity
	despawning  []ecs.Entity
	pendingShot []shot

	// Viewer state
	headless  bool
	autopilot bool
	paused    bool
	speed     int
	showPerf  bool
	camera    *camera.Camera
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlsPanel
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	debris    *renderer.ParticleSystem
	debrisFX  *renderer.ParticleRenderer

	// Telemetry
	collector     *telemetry.CollisionCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	onStats       func(telemetry.WindowStats)
}

// NewGame creates a sandbox with default options.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a sandbox, spawns the player and the initial
// asteroids, and wires the collision response into the fixed step.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()
	phys, err := physics.FromConfig(world, cfg)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Spawn.Seed
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		phys:  phys,
		rng:   rand.New(rand.NewSource(seed)),
		seed:  seed,
		bodyMapper: ecs.NewMap4[
			components.Movement,
			components.RenderTransform,
			components.Collider,
			components.Tags,
		](world),
		moveMap:       ecs.NewMap[components.Movement](world),
		colliderMap:   ecs.NewMap[components.Collider](world),
		layerMap:      ecs.NewMap[components.CollisionLayers](world),
		playerMap:     ecs.NewMap[components.Player](world),
		shipMap:       ecs.NewMap[components.ShipControl](world),
		enemyMap:      ecs.NewMap[components.Enemy](world),
		projectileMap: ecs.NewMap[components.Projectile](world),
		healthMap:     ecs.NewMap[components.Health](world),
		damagerMap:    ecs.NewMap[components.Damager](world),
		despawnHitMap: ecs.NewMap[components.DespawnOnCollision](world),
		invincibleMap: ecs.NewMap[components.Invincible](world),
		tunnelMap:     ecs.NewMap[components.TunnelBorder](world),
		despawnMap:    ecs.NewMap[components.DespawnBorder](world),
		scaledMap:     ecs.NewMap[components.Scaled](world),

		shipFilter:       ecs.NewFilter3[components.Movement, components.ShipControl, components.Player](world),
		enemyFilter:      ecs.NewFilter2[components.Movement, components.Enemy](world),
		invincibleFilter: ecs.NewFilter2[components.Invincible, components.Collider](world),
		bodyFilter:       ecs.NewFilter3[components.RenderTransform, components.Collider, components.Tags](world),

		lives:     cfg.Player.Lives,
		headless:  opts.Headless,
		autopilot: opts.Autopilot,
		speed:     1,
		collector: telemetry.NewCollisionCollector(cfg.Telemetry.StatsWindow),
		logStats:  opts.LogStats,
		onStats:   opts.OnStats,
	}

	if err := g.resolveGroups(); err != nil {
		phys.Close()
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		phys.Close()
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if !g.headless {
		g.camera = camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height))
		g.overlays = ui.NewOverlayRegistry()
		g.controls = ui.NewControlsPanel(10, 100, 200)
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(cfg.Screen.Width)-230, 10, 220)
		g.debris = renderer.NewParticleSystem(1000, seed)
		g.debrisFX = renderer.NewParticleRenderer()
	}

	phys.SetOnStep(g.fixedStep)

	g.spawnPlayer()
	for i := 0; i < cfg.Spawn.InitialEnemies; i++ {
		g.spawnEnemy()
	}

	slog.Info("game created",
		"seed", seed,
		"headless", g.headless,
		"autopilot", g.autopilot,
		"initial_enemies", cfg.Spawn.InitialEnemies,
	)
	return g, nil
}

// resolveGroups looks up the sandbox groups and their spawn layers.
func (g *Game) resolveGroups() error {
	var err error
	if g.playerGroup, err = physics.Group(g.cfg, PlayerGroup); err != nil {
		return fmt.Errorf("sandbox groups: %w", err)
	}
	if g.enemyGroup, err = physics.Group(g.cfg, EnemyGroup); err != nil {
		return fmt.Errorf("sandbox groups: %w", err)
	}
	if g.projectileGroup, err = physics.Group(g.cfg, ProjectileGroup); err != nil {
		return fmt.Errorf("sandbox groups: %w", err)
	}
	if g.bodyLayers, err = physics.ResolveBodyLayers(g.cfg); err != nil {
		return err
	}
	return nil
}

// Update handles input and advances the simulation by one rendered frame.
func (g *Game) Update(frameDelta float64) {
	g.handleInput()

	if g.paused {
		return
	}
	delta := frameDelta * float64(g.speed)
	g.Advance(delta)
	g.debris.Update(float32(delta))
}

// UpdateHeadless advances the simulation by exactly one fixed step worth of
// time, without input or rendering.
func (g *Game) UpdateHeadless() physics.FrameResult {
	return g.Advance(g.phys.Clock().FixedDT())
}

// Advance steers ships and runs the physics for frameDelta seconds.
func (g *Game) Advance(frameDelta float64) physics.FrameResult {
	if g.autopilot {
		g.steerAutopilot()
	}
	g.applyShipControls()
	return g.phys.Update(frameDelta)
}

// StepOnce runs a single fixed step, used while paused.
func (g *Game) StepOnce() {
	g.applyShipControls()
	g.phys.Step()
	g.phys.Extrapolate(0)
}

// Tick returns the number of fixed steps run.
func (g *Game) Tick() uint64 {
	return g.phys.StepCount()
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining player lives.
func (g *Game) Lives() int { return g.lives }

// Kills returns the number of destroyed asteroids.
func (g *Game) Kills() int { return g.kills }

// Misses returns the number of projectiles that left the play area.
func (g *Game) Misses() int { return g.misses }

// Enemies returns the number of live asteroids.
func (g *Game) Enemies() int { return g.enemies }

// GameOver reports whether the player ran out of lives.
func (g *Game) GameOver() bool { return g.gameOver }

// World returns the ECS world.
func (g *Game) World() *ecs.World { return g.world }

// Physics returns the physics core.
func (g *Game) Physics() *physics.Physics { return g.phys }

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 { return g.seed }

// Unload releases resources.
func (g *Game) Unload() {
	g.phys.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
