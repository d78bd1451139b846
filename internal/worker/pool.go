// Package worker provides a worker pool for checking many game files in
// parallel.
package worker

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/hashing"
)

// WorkItem is one file to check.
type WorkItem struct {
	Path  string
	Index int // Original index for tracking
}

// ProcessResult is the outcome of checking one file.
type ProcessResult struct {
	Path   string
	Index  int
	Plies  int
	Result chess.Result
	Ended  string // "checkmate", "stalemate" or "" when play simply stops
	Err    error

	Signature hashing.GameSignature
}

// OK reports whether the file loaded and validated.
func (r ProcessResult) OK() bool {
	return r.Err == nil
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel file checking.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. Default: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues a work item, blocking while the buffer is full. It
// returns false without queueing when ctx is done or the pool is stopped.
func (p *Pool) Submit(ctx context.Context, item WorkItem) bool {
	if p.IsStopped() || ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.workChan <- item:
		return true
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	p.stopFlag.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopFlag.Load()
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// CheckAll runs fn over paths on a pool of n workers and returns the
// results in input order. Cancelling ctx stops the pool; files not yet
// started are left out of the results.
func CheckAll(ctx context.Context, paths []string, n int, fn ProcessFunc) []ProcessResult {
	pool := NewPool(fn, WithWorkers(n), WithBufferSize(n))
	pool.Start()

	go func() {
		defer pool.Close()
		for i, path := range paths {
			if !pool.Submit(ctx, WorkItem{Path: path, Index: i}) {
				pool.Stop()
				return
			}
		}
	}()

	results := make([]ProcessResult, 0, len(paths))
	for r := range pool.Results() {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
