package components

// TunnelBorder marks entities that wrap around to the opposite edge
// when they leave the play area.
type TunnelBorder struct{}

// DespawnBorder marks entities that are removed once outside the play area.
type DespawnBorder struct{}
