package components

// LayerMask is a bitset of collision layers.
type LayerMask uint32

const (
	NoLayers  LayerMask = 0
	AllLayers LayerMask = ^LayerMask(0)
)

// Gameplay layers used by the sandbox.
const (
	PlayerLayer LayerMask = 1 << iota
	EnemyLayer
	ProjectileLayer
)

// MaxLayers is the number of distinct layers a LayerMask can hold.
const MaxLayers = 32

// Layer returns the mask with only bit i set.
func Layer(i int) LayerMask {
	return LayerMask(1) << uint(i)
}

// Has reports whether any bit of other is set in m.
func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

// CollisionLayers holds the layers an entity belongs to and the layers it
// wants to hit. The default belongs everywhere and hits nothing.
type CollisionLayers struct {
	Members LayerMask
	Filters LayerMask
}

// DefaultCollisionLayers returns {AllLayers, NoLayers}; callers opt in via Filters.
func DefaultCollisionLayers() CollisionLayers {
	return CollisionLayers{Members: AllLayers, Filters: NoLayers}
}

// NewCollisionLayers creates a layer pair.
func NewCollisionLayers(members, filters LayerMask) CollisionLayers {
	return CollisionLayers{Members: members, Filters: filters}
}

// InteractsWith is true only if each side's filters select the other's members.
func (l CollisionLayers) InteractsWith(other CollisionLayers) bool {
	return l.Members.Has(other.Filters) && l.Filters.Has(other.Members)
}
