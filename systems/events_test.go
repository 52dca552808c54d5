package systems

import (
	"sync"
	"testing"
)

func TestEventBufferConcurrentPush(t *testing.T) {
	buf := NewEventBuffer()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				buf.Push(CollisionEvent{Pair: g, Step: uint64(i)})
			}
		}(g)
	}
	wg.Wait()

	if n := buf.Len(); n != 800 {
		t.Fatalf("Len = %d, want 800", n)
	}
	if n := len(buf.Read()); n != 800 {
		t.Errorf("Read returned %d, want 800", n)
	}

	perPair := map[int]int{}
	for _, e := range buf.Drain() {
		perPair[e.Pair]++
	}
	for g := 0; g < 8; g++ {
		if perPair[g] != 100 {
			t.Errorf("pair %d: %d events, want 100", g, perPair[g])
		}
	}
	if n := buf.Len(); n != 0 {
		t.Errorf("Len after Drain = %d, want 0", n)
	}
}

func TestEventBufferBatchOrder(t *testing.T) {
	buf := NewEventBuffer()
	buf.PushBatch([]CollisionEvent{{Step: 1}, {Step: 2}})
	buf.PushBatch(nil)
	buf.Push(CollisionEvent{Step: 3})

	got := buf.Drain()
	for i, e := range got {
		if e.Step != uint64(i+1) {
			t.Errorf("event %d step = %d, want %d", i, e.Step, i+1)
		}
	}
	buf.Push(CollisionEvent{})
	buf.Clear()
	if buf.Len() != 0 {
		t.Error("Clear left events behind")
	}
}
