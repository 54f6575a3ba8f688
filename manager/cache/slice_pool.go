// Package cache keeps reusable scratch slices for per-frame recomputation.
package cache

import "time"

type PoolStats struct {
	Gets    int
	Reused  int
	Created time.Time
}

// SlicePool hands out slices from a fixed set of slots. When every slot is
// taken Get allocates instead of blocking, and the slice is simply dropped
// on Return.
type SlicePool[T any] struct {
	buffers [][]T
	free    chan uint16

	stats PoolStats
}

// Detached marks a slice that did not come from a slot.
const Detached = ^uint16(0)

func NewSlicePool[T any](n int) *SlicePool[T] {

	if n >= int(Detached) {
		n = int(Detached) - 1
	}

	free := make(chan uint16, n)
	for i := 0; i < n; i++ {
		free <- uint16(i)
	}

	return &SlicePool[T]{
		buffers: make([][]T, n),
		free:    free,
		stats:   PoolStats{Created: time.Now()},
	}
}

// Get returns an empty slice with room for at least capacity elements and
// the slot it must be returned to.
func (p *SlicePool[T]) Get(capacity int) ([]T, uint16) {

	p.stats.Gets++

	select {
	case id := <-p.free:
		buf := p.buffers[id]
		if cap(buf) < capacity {
			buf = make([]T, 0, capacity)
		} else {
			p.stats.Reused++
		}
		return buf[:0], id
	default:
		return make([]T, 0, capacity), Detached
	}
}

// Return gives the slot back, keeping buf's storage for the next Get.
func (p *SlicePool[T]) Return(id uint16, buf []T) {
	if id == Detached {
		return
	}
	p.buffers[id] = buf[:0]
	p.free <- id
}

func (p *SlicePool[T]) Stats() PoolStats {
	return p.stats
}
