// Package renderer holds viewer-only visual effects. Nothing here feeds
// back into the simulation.
package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// BurstType identifies what produced a debris burst.
type BurstType uint8

const (
	BurstAsteroid BurstType = iota
	BurstShip
	BurstImpact
)

// Particle is one piece of debris in world space.
type Particle struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Life     float32 // seconds left
	MaxLife  float32
	Size     float32
	Type     BurstType
}

// ParticleSystem manages debris particles.
type ParticleSystem struct {
	Particles    []Particle
	maxParticles int
	rng          *rand.Rand
}

// NewParticleSystem creates a particle system with its own RNG, so effects
// never consume the simulation's random stream.
func NewParticleSystem(maxParticles int, seed int64) *ParticleSystem {
	return &ParticleSystem{
		Particles:    make([]Particle, 0, maxParticles),
		maxParticles: maxParticles,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Update ages and moves all particles by dt seconds.
func (s *ParticleSystem) Update(dt float32) {
	drag := float32(math.Pow(0.2, float64(dt)))
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Velocity = p.Velocity.Mul(drag)
		p.Position = p.Position.Add(p.Velocity.Mul(dt))

		s.Particles[alive] = *p
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// Emit adds a radial burst scaled by radius.
func (s *ParticleSystem) Emit(t BurstType, pos mgl32.Vec2, radius float32) {
	count := 6
	switch t {
	case BurstAsteroid:
		count = 10 + s.rng.Intn(6)
	case BurstShip:
		count = 24
	}

	for i := 0; i < count && len(s.Particles) < s.maxParticles; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		dir := mgl32.Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))}
		speed := radius * (1 + 2*s.rng.Float32())
		life := 0.4 + 0.6*s.rng.Float32()

		s.Particles = append(s.Particles, Particle{
			Position: pos.Add(dir.Mul(radius * 0.5 * s.rng.Float32())),
			Velocity: dir.Mul(speed),
			Life:     life,
			MaxLife:  life,
			Size:     1.5 + 1.5*s.rng.Float32(),
			Type:     t,
		})
	}
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// Alpha returns the particle's opacity in [0, 1], easing out over its life.
func (p *Particle) Alpha() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	elapsed := p.MaxLife - p.Life
	return 1 - ease.OutQuad(elapsed, 0, 1, p.MaxLife)
}

// ParticleRenderer draws debris particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles. toScreen maps a world point to pixels and
// scale maps a world length.
func (r *ParticleRenderer) Draw(particles []Particle, toScreen func(mgl32.Vec2) rl.Vector2, scale func(float32) float32) {
	for i := range particles {
		p := &particles[i]
		alpha := p.Alpha()

		var color rl.Color
		switch p.Type {
		case BurstAsteroid:
			// Dust
			color = rl.Color{R: 200, G: 170, B: 130, A: uint8(alpha * 200)}
		case BurstShip:
			// Hull fragments
			color = rl.Color{R: 120, G: 200, B: 255, A: uint8(alpha * 230)}
		default:
			// Sparks
			color = rl.Color{R: 255, G: 220, B: 120, A: uint8(alpha * 255)}
		}

		size := max(scale(p.Size)*alpha, 0.5)
		rl.DrawCircleV(toScreen(p.Position), size, color)
	}
}
