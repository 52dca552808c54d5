package physics

import (
	"fmt"

	"github.com/pthm-cable/asteroid/components"
	"github.com/pthm-cable/asteroid/config"
	"github.com/pthm-cable/asteroid/systems"
)

// Group returns the group registered under name.
func Group(cfg *config.Config, name string) (components.Group, error) {
	idx, ok := cfg.Derived.GroupIndex[name]
	if !ok {
		return 0, fmt.Errorf("unknown group %q", name)
	}
	return components.Group(idx), nil
}

// LayerMask ORs the named layers together. No names selects all layers.
func LayerMask(cfg *config.Config, names []string) (components.LayerMask, error) {
	if len(names) == 0 {
		return components.AllLayers, nil
	}
	var mask components.LayerMask
	for _, name := range names {
		idx, ok := cfg.Derived.LayerIndex[name]
		if !ok {
			return 0, fmt.Errorf("unknown layer %q", name)
		}
		mask |= components.Layer(int(idx))
	}
	return mask, nil
}

// ResolvePairs turns the configured pair list into detection jobs.
func ResolvePairs(cfg *config.Config) ([]systems.Pair, error) {
	pairs := make([]systems.Pair, 0, len(cfg.Collision.Pairs))
	for i, pc := range cfg.Collision.Pairs {
		first, err := Group(cfg, pc.First)
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		second, err := Group(cfg, pc.Second)
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		firstMask, err := LayerMask(cfg, pc.FirstLayers)
		if err != nil {
			return nil, fmt.Errorf("pair %d first layers: %w", i, err)
		}
		secondMask, err := LayerMask(cfg, pc.SecondLayers)
		if err != nil {
			return nil, fmt.Errorf("pair %d second layers: %w", i, err)
		}

		p := systems.NewPair(first, second, firstMask, secondMask)
		p.Name = pc.First + "/" + pc.Second
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// ResolveBodyLayers returns the CollisionLayers to attach to each group's
// entities at spawn. Empty members mean all layers, empty filters none.
func ResolveBodyLayers(cfg *config.Config) (map[components.Group]components.CollisionLayers, error) {
	out := make(map[components.Group]components.CollisionLayers, len(cfg.Collision.Bodies))
	for _, bc := range cfg.Collision.Bodies {
		g, err := Group(cfg, bc.Group)
		if err != nil {
			return nil, fmt.Errorf("body layers: %w", err)
		}
		members, err := LayerMask(cfg, bc.Members)
		if err != nil {
			return nil, fmt.Errorf("body layers %s members: %w", bc.Group, err)
		}
		filters := components.NoLayers
		if len(bc.Filters) > 0 {
			if filters, err = LayerMask(cfg, bc.Filters); err != nil {
				return nil, fmt.Errorf("body layers %s filters: %w", bc.Group, err)
			}
		}
		out[g] = components.NewCollisionLayers(members, filters)
	}
	return out, nil
}
