package components

// Group identifies a gameplay tag group (player, enemy, projectile, ...).
// Groups are resolved from config names at startup.
type Group uint8

// MaxGroups is the number of distinct groups a GroupSet can hold.
const MaxGroups = 32

// GroupSet is a bitset of groups.
type GroupSet uint32

// Of builds a set from groups.
func Of(groups ...Group) GroupSet {
	var s GroupSet
	for _, g := range groups {
		s = s.With(g)
	}
	return s
}

// With returns the set with g added.
func (s GroupSet) With(g Group) GroupSet {
	return s | GroupSet(1)<<g
}

// Contains reports whether g is in the set.
func (s GroupSet) Contains(g Group) bool {
	return s&(GroupSet(1)<<g) != 0
}

// Tags marks which detection groups an entity belongs to.
type Tags struct {
	Groups GroupSet
}
