package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/asteroid/components"
	"github.com/pthm-cable/asteroid/shape"
)

// Pair registers one ordered detection job: every enabled collider of group
// First is tested against every enabled collider of group Second.
// An entity takes part only if its layer members overlap the side's mask;
// entities without CollisionLayers belong to all layers.
type Pair struct {
	Name       string
	First      components.Group
	Second     components.Group
	FirstMask  components.LayerMask
	SecondMask components.LayerMask
}

// NewPair creates a pair registration.
func NewPair(first, second components.Group, firstMask, secondMask components.LayerMask) Pair {
	return Pair{
		Name:       fmt.Sprintf("%d-%d", first, second),
		First:      first,
		Second:     second,
		FirstMask:  firstMask,
		SecondMask: secondMask,
	}
}

// DetectStats counts the work done by one detection pass.
type DetectStats struct {
	Candidates int // pairs considered after enable and group filtering
	Pruned     int // rejected by layers or proximity
	Tested     int // exact shape tests run
	Hits       int // events emitted
}

func (s *DetectStats) add(o DetectStats) {
	s.Candidates += o.Candidates
	s.Pruned += o.Pruned
	s.Tested += o.Tested
	s.Hits += o.Hits
}

// proxy is the per-step world-space view of one collider.
type proxy struct {
	entity    ecs.Entity
	groups    components.GroupSet
	origin    mgl32.Vec2
	shape     shape.Shape
	layers    components.CollisionLayers
	hasLayers bool
}

func (p *proxy) participates(g components.Group, mask components.LayerMask) bool {
	if !p.groups.Contains(g) {
		return false
	}
	return !p.hasLayers || p.layers.Members.Has(mask)
}

// CollisionSystem runs the registered pairwise scans once per fixed step.
type CollisionSystem struct {
	filter   *ecs.Filter2[components.Tags, components.Collider]
	moveMap  *ecs.Map[components.Movement]
	layerMap *ecs.Map[components.CollisionLayers]
	pool     *WorkerPool

	pairs      []Pair
	proximity2 float32 // 0 disables the pre-filter

	proxies     []proxy
	first       []int
	second      []int
	chunkEvents [][]CollisionEvent
	chunkStats  []DetectStats
	merged      []CollisionEvent
}

// NewCollisionSystem creates the detector for the given pairs.
// proximityRadius <= 0 disables the distance pre-filter. pool may be nil.
func NewCollisionSystem(w *ecs.World, pairs []Pair, proximityRadius float32, pool *WorkerPool) *CollisionSystem {
	var r2 float32
	if proximityRadius > 0 {
		r2 = proximityRadius * proximityRadius
	}
	n := pool.Workers()
	return &CollisionSystem{
		filter:      ecs.NewFilter2[components.Tags, components.Collider](w),
		moveMap:     ecs.NewMap[components.Movement](w),
		layerMap:    ecs.NewMap[components.CollisionLayers](w),
		pool:        pool,
		pairs:       append([]Pair(nil), pairs...),
		proximity2:  r2,
		chunkEvents: make([][]CollisionEvent, n),
		chunkStats:  make([]DetectStats, n),
	}
}

// Pairs returns the registered pairs.
func (s *CollisionSystem) Pairs() []Pair {
	return s.pairs
}

// Detect scans all pairs against the current Movement state and pushes one
// event per intersecting pair into sink. Within a step, events are ordered by
// pair, then first entity, then second entity, for any worker count.
func (s *CollisionSystem) Detect(step uint64, sink *EventBuffer) DetectStats {
	s.buildProxies()

	var total DetectStats
	for pi := range s.pairs {
		pair := &s.pairs[pi]
		s.first = s.collect(s.first[:0], pair.First, pair.FirstMask)
		s.second = s.collect(s.second[:0], pair.Second, pair.SecondMask)
		if len(s.first) == 0 || len(s.second) == 0 {
			continue
		}

		chunks := s.pool.Run(len(s.first), func(chunk, start, end int) {
			s.scan(chunk, pi, step, start, end)
		})

		s.merged = s.merged[:0]
		for c := 0; c < chunks; c++ {
			s.merged = append(s.merged, s.chunkEvents[c]...)
			total.add(s.chunkStats[c])
		}
		sink.PushBatch(s.merged)
	}
	return total
}

// buildProxies snapshots every enabled collider in world space.
func (s *CollisionSystem) buildProxies() {
	s.proxies = s.proxies[:0]
	query := s.filter.Query()
	for query.Next() {
		tags, col := query.Get()
		if !col.Enabled {
			continue
		}
		e := query.Entity()

		var m *components.Movement
		if s.moveMap.Has(e) {
			m = s.moveMap.Get(e)
		}
		p := proxy{
			entity: e,
			groups: tags.Groups,
			shape:  col.WorldShape(m),
		}
		if m != nil {
			p.origin = m.Position
		} else {
			p.origin = p.shape.Center
		}
		if s.layerMap.Has(e) {
			p.layers = *s.layerMap.Get(e)
			p.hasLayers = true
		}
		s.proxies = append(s.proxies, p)
	}
}

func (s *CollisionSystem) collect(dst []int, g components.Group, mask components.LayerMask) []int {
	for i := range s.proxies {
		if s.proxies[i].participates(g, mask) {
			dst = append(dst, i)
		}
	}
	return dst
}

// scan tests s.first[start:end] against all of s.second into chunk's buffers.
// When both proxies qualify for both sides of the pair, only the ordering
// with the lower proxy index first is tested.
func (s *CollisionSystem) scan(chunk, pair int, step uint64, start, end int) {
	events := s.chunkEvents[chunk][:0]
	var stats DetectStats
	p := &s.pairs[pair]

	for _, ai := range s.first[start:end] {
		a := &s.proxies[ai]
		for _, bi := range s.second {
			if ai == bi {
				continue
			}
			b := &s.proxies[bi]
			if bi < ai && b.participates(p.First, p.FirstMask) && a.participates(p.Second, p.SecondMask) {
				continue
			}
			stats.Candidates++

			if a.hasLayers && b.hasLayers && !a.layers.InteractsWith(b.layers) {
				stats.Pruned++
				continue
			}
			if s.proximity2 > 0 {
				d := a.origin.Sub(b.origin)
				if d.Dot(d) > s.proximity2 {
					stats.Pruned++
					continue
				}
			}

			stats.Tested++
			if a.shape.Intersects(b.shape) {
				stats.Hits++
				events = append(events, CollisionEvent{
					First:  a.entity,
					Second: b.entity,
					Pair:   pair,
					Step:   step,
				})
			}
		}
	}

	s.chunkEvents[chunk] = events
	s.chunkStats[chunk] = stats
}
