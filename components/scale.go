package components

// Scaled requests a one-time scale of the entity's collider shape.
// The scale system sets Applied after scaling so it never compounds.
type Scaled struct {
	Factor  float32
	Applied bool
}
