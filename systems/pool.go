// Package systems contains the ECS systems of the physics core.
package systems

import (
	"runtime"
	"sync"
)

// DefaultParallelThreshold is the minimum item count to use the worker pool.
// Below this, single-threaded is faster due to goroutine overhead.
const DefaultParallelThreshold = 64

// ChunkFunc processes items [start, end). chunk is the index of the range,
// in ascending item order, and is unique within one Run.
type ChunkFunc func(chunk, start, end int)

// workChunk represents a range of items for a worker to process.
type workChunk struct {
	index, start, end int
	fn                ChunkFunc
}

// WorkerPool runs chunked work on persistent goroutines.
// Workers start on first parallel use and run until Stop.
// A nil pool runs everything on the calling goroutine.
type WorkerPool struct {
	numWorkers int
	threshold  int

	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// NewWorkerPool creates a pool. workers <= 0 uses GOMAXPROCS,
// threshold <= 0 uses DefaultParallelThreshold.
func NewWorkerPool(workers, threshold int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	return &WorkerPool{numWorkers: workers, threshold: threshold}
}

// Workers returns the maximum number of chunks a Run can produce.
func (p *WorkerPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// Run splits n items into contiguous chunks and blocks until all are done.
// Returns the number of chunks processed.
func (p *WorkerPool) Run(n int, fn ChunkFunc) int {
	if n <= 0 {
		return 0
	}
	if p == nil || p.numWorkers == 1 || n < p.threshold {
		fn(0, 0, n)
		return 1
	}

	if !p.running {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- workChunk{index: dispatched, start: start, end: end, fn: fn}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
	return dispatched
}

// start launches persistent worker goroutines.
func (p *WorkerPool) start() {
	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop signals all workers to exit and waits for them. Safe to call twice.
func (p *WorkerPool) Stop() {
	if p == nil || !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.fn(chunk.index, chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}
