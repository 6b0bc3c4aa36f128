package testsurface

import (
	"fmt"
	"sync"

	"github.com/phroun/waylterm/wlext"
)

// BufferPool is an in-memory wlext.BufferPool: a fixed-size freelist of
// premultiplied-BGRA8888 buffers, reallocating only when the requested
// size changes. Grounded on spec.md §6's "acquire returns a buffer not in
// compositor use" contract, simplified to single-threaded test use.
type BufferPool struct {
	mu        sync.Mutex
	free      []*wlext.Buffer
	allocated int
	size      int
	width     int
	height    int
	exhaust   bool // test hook: force the next Acquire to fail
}

// NewBufferPool returns an empty pool that allocates buffers on demand, at
// most size of them at the current dimensions (size 0 means no limit).
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{size: size}
}

// FailNextAcquire makes the next Acquire call return
// wlext's pool-exhausted condition, for exercising render.ErrBufferAcquireFailed.
func (p *BufferPool) FailNextAcquire() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exhaust = true
}

func (p *BufferPool) Acquire(width, height, minFree int) (*wlext.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exhaust {
		p.exhaust = false
		return nil, fmt.Errorf("testsurface: pool exhausted (forced)")
	}

	if width != p.width || height != p.height {
		p.free = nil
		p.allocated = 0
		p.width, p.height = width, height
	}
	if len(p.free) == 0 {
		if p.size > 0 && p.allocated >= p.size {
			return nil, fmt.Errorf("testsurface: pool exhausted")
		}
		p.allocated++
		stride := width * 4
		return &wlext.Buffer{
			Pix: make([]byte, stride*height), Width: width, Height: height, Stride: stride, Busy: true,
		}, nil
	}
	buf := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	buf.Busy = true
	return buf, nil
}

func (p *BufferPool) Release(buf *wlext.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	buf.Busy = false
	p.free = append(p.free, buf)
}
