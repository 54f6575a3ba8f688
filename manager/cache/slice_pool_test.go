package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlicePoolReusesStorage(t *testing.T) {

	p := NewSlicePool[float64](1)

	buf, id := p.Get(8)
	assert.Len(t, buf, 0)
	assert.GreaterOrEqual(t, cap(buf), 8)

	buf = append(buf, 1, 2, 3)
	p.Return(id, buf)

	again, id2 := p.Get(4)
	assert.Equal(t, id, id2)
	assert.Len(t, again, 0)
	assert.Equal(t, 1, p.Stats().Reused)

	// pool exhausted, falls back to a detached slice
	extra, detachedID := p.Get(2)
	assert.Equal(t, Detached, detachedID)
	assert.GreaterOrEqual(t, cap(extra), 2)
	p.Return(detachedID, extra)

	p.Return(id2, again)
	assert.Equal(t, 3, p.Stats().Gets)
}

func BenchmarkSlicePool(b *testing.B) {

	p := NewSlicePool[float64](4)

	for b.Loop() {
		buf, id := p.Get(4096)
		for i := 0; i < 4096; i += 64 {
			buf = append(buf, float64(i))
		}
		p.Return(id, buf)
	}
}
