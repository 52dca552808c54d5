package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	r := NewOverlayRegistry()

	tests := []struct {
		id   OverlayID
		want bool
	}{
		{OverlayColliders, false},
		{OverlayVelocity, false},
		{OverlayWrapGhosts, true},
		{OverlayBounds, true},
		{OverlaySimPose, false},
	}
	for _, tc := range tests {
		if got := r.IsEnabled(tc.id); got != tc.want {
			t.Errorf("IsEnabled(%s) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestOverlayToggleAndKeys(t *testing.T) {
	r := NewOverlayRegistry()

	if !r.Toggle(OverlayColliders) {
		t.Error("first toggle should enable colliders")
	}
	if r.Toggle(OverlayColliders) {
		t.Error("second toggle should disable colliders")
	}
	if r.Toggle("missing") {
		t.Error("unknown overlay should not toggle")
	}

	id, state, ok := r.HandleKeyPress(rl.KeyV)
	if !ok || id != OverlayVelocity || !state {
		t.Errorf("HandleKeyPress(V) = (%s, %v, %v), want (velocity, true, true)", id, state, ok)
	}
	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle anything")
	}
}

func TestOverlayExclusive(t *testing.T) {
	r := NewOverlayRegistry()
	r.Register(OverlayDescriptor{ID: "solo", Exclusive: []OverlayID{OverlayBounds}})

	r.SetEnabled("solo", true)
	if r.IsEnabled(OverlayBounds) {
		t.Error("enabling an exclusive overlay should disable bounds")
	}
}
