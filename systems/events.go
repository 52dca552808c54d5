package systems

import (
	"sync"

	"github.com/mlange-42/ark/ecs"
)

// CollisionEvent reports one intersecting pair from one detection pass.
// First belongs to the pair's first group, Second to its second.
type CollisionEvent struct {
	First  ecs.Entity
	Second ecs.Entity
	Pair   int    // index into the registered pairs
	Step   uint64 // fixed step that produced the event
}

// EventBuffer is a lock-protected collision event sink.
// Producers may push from any goroutine; consumers drain between steps.
type EventBuffer struct {
	mu     sync.Mutex
	events []CollisionEvent
}

// NewEventBuffer creates an empty buffer.
func NewEventBuffer() *EventBuffer {
	return &EventBuffer{events: make([]CollisionEvent, 0, 64)}
}

// Push appends a single event.
func (b *EventBuffer) Push(e CollisionEvent) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

// PushBatch appends events in order under one lock.
func (b *EventBuffer) PushBatch(events []CollisionEvent) {
	if len(events) == 0 {
		return
	}
	b.mu.Lock()
	b.events = append(b.events, events...)
	b.mu.Unlock()
}

// Drain returns all buffered events and empties the buffer.
func (b *EventBuffer) Drain() []CollisionEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = make([]CollisionEvent, 0, cap(out))
	return out
}

// Read returns a copy of the buffered events without consuming them.
func (b *EventBuffer) Read() []CollisionEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]CollisionEvent, len(b.events))
	copy(out, b.events)
	return out
}

// Len returns the number of buffered events.
func (b *EventBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// Clear drops all buffered events.
func (b *EventBuffer) Clear() {
	b.mu.Lock()
	b.events = b.events[:0]
	b.mu.Unlock()
}
