package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
	"github.com/pthm-cable/asteroid/config"
	"github.com/pthm-cable/asteroid/shape"
	"github.com/pthm-cable/asteroid/systems"
)

const (
	groupPlayer components.Group = iota
	groupEnemy
)

type scene struct {
	world  *ecs.World
	bodies *ecs.Map4[components.Tags, components.Collider, components.Movement, components.RenderTransform]
}

func newScene() *scene {
	w := ecs.NewWorld()
	return &scene{
		world:  w,
		bodies: ecs.NewMap4[components.Tags, components.Collider, components.Movement, components.RenderTransform](w),
	}
}

func (s *scene) spawn(g components.Group, radius float32, m components.Movement) ecs.Entity {
	tags := components.Tags{Groups: components.Of(g)}
	col := components.FromShape(shape.FromCircle(shape.NewCircle(mgl32.Vec2{}, radius)))
	return s.bodies.NewEntity(&tags, &col, &m, &components.RenderTransform{})
}

func testOptions() Options {
	return Options{
		FixedDT:          1.0 / 64.0,
		MaxStepsPerFrame: 8,
		Pairs:            []systems.Pair{systems.NewPair(groupPlayer, groupEnemy, components.AllLayers, components.AllLayers)},
		ProximityRadius:  128,
		Bounds:           systems.Bounds{HalfWidth: 500, HalfHeight: 500},
	}
}

func TestPhysicsApproachAndCollide(t *testing.T) {
	s := newScene()
	player := components.NewMovement(mgl32.Vec2{-50, 0}, 0, 1000)
	player.Velocity = mgl32.Vec2{64, 0}
	p1 := s.spawn(groupPlayer, 10, player)
	e1 := s.spawn(groupEnemy, 10, components.NewMovement(mgl32.Vec2{0, 0}, 0, 1000))

	p := New(s.world, testOptions())
	defer p.Close()

	// 30 units closes in 30 steps at 1 unit per step.
	var first uint64
	for i := 0; i < 40 && first == 0; i++ {
		p.Step()
		for _, ev := range p.Events().Drain() {
			if ev.First != p1 || ev.Second != e1 {
				t.Fatalf("unexpected event %+v", ev)
			}
			if first == 0 {
				first = ev.Step
			}
		}
	}
	if first != 30 {
		t.Errorf("first contact at step %d, want 30", first)
	}
}

func TestPhysicsUpdateStepsAndExtrapolates(t *testing.T) {
	s := newScene()
	m := components.NewMovement(mgl32.Vec2{0, 0}, 0, 1000)
	m.Velocity = mgl32.Vec2{64, 0}
	e := s.spawn(groupPlayer, 1, m)

	p := New(s.world, testOptions())
	defer p.Close()

	res := p.Update(2.5 / 64.0)
	if res.Steps != 2 || res.Capped {
		t.Fatalf("Update = %+v, want 2 uncapped steps", res)
	}

	_, _, mv, rt := s.bodies.Get(e)
	if !near(mv.Position, mgl32.Vec2{2, 0}, 1e-5) {
		t.Errorf("simulated position = %v, want (2,0)", mv.Position)
	}
	if !near(rt.Position, mgl32.Vec2{2.5, 0}, 1e-4) {
		t.Errorf("render position = %v, want (2.5,0)", rt.Position)
	}
}

// TestPhysicsFrameRateIndependent checks that the simulated state depends only
// on elapsed time, not on how it is split into frames.
func TestPhysicsFrameRateIndependent(t *testing.T) {
	run := func(frameDelta float64, frames int) components.Movement {
		s := newScene()
		m := components.NewMovement(mgl32.Vec2{0, 0}, 0.02, 300)
		m.Acceleration = mgl32.Vec2{120, 40}
		m.AngularVelocity = 1.5
		e := s.spawn(groupPlayer, 1, m)

		p := New(s.world, testOptions())
		defer p.Close()
		for i := 0; i < frames; i++ {
			p.Update(frameDelta)
		}
		if p.StepCount() != 128 {
			t.Fatalf("ran %d steps, want 128", p.StepCount())
		}
		_, _, mv, _ := s.bodies.Get(e)
		return *mv
	}

	fast := run(1.0/128.0, 256)
	slow := run(1.0/32.0, 64)
	if fast != slow {
		t.Errorf("state differs across frame rates:\n%+v\n%+v", fast, slow)
	}
}

func TestPhysicsBorderDespawn(t *testing.T) {
	s := newScene()
	m := components.NewMovement(mgl32.Vec2{485, 0}, 0, 1000)
	m.Velocity = mgl32.Vec2{640, 0}
	e := s.spawn(groupEnemy, 1, m)
	ecs.NewMap1[components.DespawnBorder](s.world).Add(e, &components.DespawnBorder{})

	var despawnedInCallback int
	opts := testOptions()
	opts.OnStep = func(_ uint64, _ systems.DetectStats, despawned int) {
		despawnedInCallback += despawned
	}
	p := New(s.world, opts)
	defer p.Close()

	p.Step()
	if !s.world.Alive(e) {
		t.Fatal("entity removed before leaving bounds")
	}
	p.Step()
	if s.world.Alive(e) {
		t.Fatal("entity still alive outside bounds")
	}
	if got := p.TakeDespawned(); len(got) != 1 || got[0] != e {
		t.Errorf("TakeDespawned = %v, want [%v]", got, e)
	}
	if got := p.TakeDespawned(); len(got) != 0 {
		t.Errorf("second TakeDespawned = %v, want empty", got)
	}
	if despawnedInCallback != 1 {
		t.Errorf("callback saw %d despawns, want 1", despawnedInCallback)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	p, err := FromConfig(ecs.NewWorld(), cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	defer p.Close()

	pairs := p.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].Name != "player/enemy" || pairs[1].Name != "projectile/enemy" {
		t.Errorf("pair names = %q, %q", pairs[0].Name, pairs[1].Name)
	}
	if p.Clock().FixedDT() != cfg.Physics.FixedDT {
		t.Errorf("fixed dt = %v", p.Clock().FixedDT())
	}
	if b := p.Bounds(); b.HalfWidth != 640 || b.Margin != 40 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestResolveLayers(t *testing.T) {
	cfg := config.Default()

	layers, err := ResolveBodyLayers(cfg)
	if err != nil {
		t.Fatalf("ResolveBodyLayers: %v", err)
	}
	player := layers[components.Group(cfg.Derived.GroupIndex["player"])]
	enemy := layers[components.Group(cfg.Derived.GroupIndex["enemy"])]
	projectile := layers[components.Group(cfg.Derived.GroupIndex["projectile"])]

	if !player.InteractsWith(enemy) || !projectile.InteractsWith(enemy) {
		t.Error("default layers should let player and projectile hit enemies")
	}
	if player.InteractsWith(projectile) {
		t.Error("player should not interact with its own projectiles")
	}

	if _, err := LayerMask(cfg, []string{"ghost"}); err == nil {
		t.Error("expected unknown layer error")
	}
	if m, _ := LayerMask(cfg, nil); m != components.AllLayers {
		t.Errorf("empty layer list = %b, want all", m)
	}

	cfg.Collision.Pairs = append(cfg.Collision.Pairs, config.PairConfig{First: "player", Second: "asteroid"})
	if _, err := ResolvePairs(cfg); err == nil {
		t.Error("expected unknown group error")
	}
}

func near(a, b mgl32.Vec2, eps float32) bool {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx <= eps && dx >= -eps && dy <= eps && dy >= -eps
}
