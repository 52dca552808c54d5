package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParticleSystemEmitRespectsCap(t *testing.T) {
	s := NewParticleSystem(30, 1)
	s.Emit(BurstShip, mgl32.Vec2{}, 10)
	s.Emit(BurstShip, mgl32.Vec2{}, 10)

	if s.Count() != 30 {
		t.Errorf("Count() = %d, want 30", s.Count())
	}
}

func TestParticleSystemUpdateExpires(t *testing.T) {
	s := NewParticleSystem(100, 1)
	s.Emit(BurstImpact, mgl32.Vec2{5, 5}, 4)
	if s.Count() != 6 {
		t.Fatalf("Count() = %d, want 6", s.Count())
	}

	s.Update(0.1)
	if s.Count() != 6 {
		t.Errorf("Count() after 0.1s = %d, want 6", s.Count())
	}
	for i := range s.Particles {
		if s.Particles[i].Position == (mgl32.Vec2{5, 5}) {
			t.Errorf("particle %d did not move", i)
		}
	}

	// Lifetimes are at most one second
	s.Update(1)
	if s.Count() != 0 {
		t.Errorf("Count() after expiry = %d, want 0", s.Count())
	}
}

func TestParticleAlpha(t *testing.T) {
	tests := []struct {
		name string
		life float32
		want float32
	}{
		{"fresh", 1, 1},
		{"spent", 0, 0},
		{"half", 0.5, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Particle{Life: tt.life, MaxLife: 1}
			if got := p.Alpha(); got < tt.want-1e-5 || got > tt.want+1e-5 {
				t.Errorf("Alpha() = %f, want %f", got, tt.want)
			}
		})
	}
}
