package components

// Gameplay components used by the sandbox. The physics core never reads them.

// Player marks a controllable ship.
type Player struct {
	ID int
}

// Enemy marks an asteroid.
type Enemy struct{}

// Projectile marks a shot fired by a player.
type Projectile struct {
	Owner int // player ID
}

// ShipControl holds the current steering input of a ship.
// Turn is in [-1, 1] with positive turning right; Forward is in [0, 1].
type ShipControl struct {
	Turn     float32
	Forward  float32
	Fire     bool
	Cooldown float32 // seconds until the next shot
}

// Health tracks hit points. An entity at zero health is dead.
type Health struct {
	Max     int
	Current int
}

// NewHealth creates full health.
func NewHealth(max int) Health {
	return Health{Max: max, Current: max}
}

// Damage subtracts amount, clamped to [0, Max].
func (h *Health) Damage(amount int) {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Dead reports whether health is exhausted.
func (h *Health) Dead() bool {
	return h.Current <= 0
}

// Damager deals damage to the other side of a collision.
// Kill removes all of the target's health regardless of Amount.
type Damager struct {
	Amount int
	Kill   bool
}

// DamageTo returns the damage dealt to h.
func (d Damager) DamageTo(h *Health) int {
	if d.Kill {
		return h.Max
	}
	return d.Amount
}

// DespawnOnCollision removes the entity after its first collision.
type DespawnOnCollision struct{}

// Invincible ignores damage and disables the collider until Remaining runs out.
type Invincible struct {
	Remaining float32 // seconds
}
