package render

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/phroun/waylterm/wlext"
)

// RenderRowFunc paints one viewport row against buf. r is the
// viewport-relative row index popped off the queue (spec.md §4.5:
// grid.row_in_view(r)); the caller (Renderer) closes over the grid and
// compositor so WorkerPool itself stays ignorant of cell painting.
type RenderRowFunc func(buf *wlext.Buffer, r int)

// WorkerPool is the fixed pool of spec.md §4.5: N workers pulling row
// indices off a shared queue, rendezvousing with the main thread through a
// start/done semaphore pair plus a mutex+condvar-guarded queue. The two
// semaphores are kept as a distinct primitive from the mutex+condvar per
// spec.md §9 — they count frames, the condvar only ever guards queue
// emptiness.
type WorkerPool struct {
	count int
	renderRow RenderRowFunc

	start *semaphore.Weighted
	done  *semaphore.Weighted

	mu    sync.Mutex
	cond  *sync.Cond
	queue []int

	// currentBuffer is published by Dispatch before start is posted, and
	// is only ever read by a worker between its wait(start) and the
	// matching done post — spec.md §5's ordering guarantee. The semaphore
	// acquire/release pair is itself a happens-before edge, so no
	// additional synchronization of this field is needed.
	currentBuffer *wlext.Buffer

	wg sync.WaitGroup
}

// NewWorkerPool constructs and starts n worker goroutines. n == 0 is valid
// and yields a pool that Dispatch/Fence treat as inline-on-main-thread
// (spec.md §4.5: "N = 0 means no pool").
func NewWorkerPool(n int, renderRow RenderRowFunc) *WorkerPool {
	p := &WorkerPool{count: n, renderRow: renderRow}
	p.cond = sync.NewCond(&p.mu)
	if n > 0 {
		p.start = semaphore.NewWeighted(int64(n))
		p.done = semaphore.NewWeighted(int64(n))
		// semaphore.Weighted tracks acquired capacity, not a free-standing
		// counter: Release panics unless a matching Acquire came first. To
		// get the post-without-a-prior-wait counting-semaphore semantics
		// spec.md §4.5 needs, pre-acquire the full weight so every
		// available "slot" starts out claimed; Release(1) then behaves as
		// post (frees one slot) and Acquire(1) as wait (claims one back).
		ctx := context.Background()
		_ = p.start.Acquire(ctx, int64(n))
		_ = p.done.Acquire(ctx, int64(n))
		for i := 0; i < n; i++ {
			p.wg.Add(1)
			go p.workerLoop()
		}
	}
	return p
}

// Count returns the number of worker goroutines (0 means inline rendering).
func (p *WorkerPool) Count() int { return p.count }

func (p *WorkerPool) workerLoop() {
	defer p.wg.Done()
	ctx := context.Background()
	for {
		if err := p.start.Acquire(ctx, 1); err != nil {
			return
		}
	inner:
		for {
			p.mu.Lock()
			for len(p.queue) == 0 {
				p.cond.Wait()
			}
			r := p.queue[0]
			p.queue = p.queue[1:]
			p.mu.Unlock()

			switch {
			case r >= 0:
				p.renderRow(p.currentBuffer, r)
			case r == -1:
				p.done.Release(1)
				break inner
			default: // r == -2
				return
			}
		}
	}
}

// Dispatch publishes buf as the frame's current buffer, posts one start
// token per worker, pushes all of rows onto the shared queue under the
// queue mutex and broadcasts on the condvar, then pushes one -1
// sentinel per worker and broadcasts — spec.md §4.5's "push N -1 sentinels
// and broadcast" frame-done protocol. If the pool has no workers, rows are
// rendered inline on the calling goroutine instead.
func (p *WorkerPool) Dispatch(buf *wlext.Buffer, rows []int) {
	if p.count == 0 {
		for _, r := range rows {
			p.renderRow(buf, r)
		}
		return
	}

	p.currentBuffer = buf
	for i := 0; i < p.count; i++ {
		p.start.Release(1)
	}

	p.mu.Lock()
	p.queue = append(p.queue, rows...)
	p.cond.Broadcast()
	for i := 0; i < p.count; i++ {
		p.queue = append(p.queue, -1)
	}
	p.cond.Broadcast()
	p.mu.Unlock()
}

// Fence waits once per worker on the done semaphore — spec.md §4.5's
// "done semaphore wait count on the main thread equals N" total fence.
// After Fence returns, no worker touches the buffer this frame. A no-op
// when the pool has no workers (Dispatch already rendered inline).
func (p *WorkerPool) Fence() {
	if p.count == 0 {
		return
	}
	ctx := context.Background()
	for i := 0; i < p.count; i++ {
		_ = p.done.Acquire(ctx, 1)
	}
}

// Shutdown cooperatively stops every worker: push one -2 sentinel per
// worker, broadcast, and wait for all worker goroutines to return
// (spec.md §5's "Cancellation" — no thread is forcibly cancelled).
func (p *WorkerPool) Shutdown() {
	if p.count == 0 {
		return
	}
	p.mu.Lock()
	for i := 0; i < p.count; i++ {
		p.queue = append(p.queue, -2)
	}
	p.cond.Broadcast()
	p.mu.Unlock()

	// Workers blocked on start (between frames) also need a token to
	// observe the shutdown queue entries.
	for i := 0; i < p.count; i++ {
		p.start.Release(1)
	}
	p.wg.Wait()
}
