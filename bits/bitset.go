package bits

import "math/bits"

// Bitset is a growable bitfield sized to a dataset's row count. A set bit
// means the row is excluded.
type Bitset struct {
	words []uint64
	n     int
}

func NewBitset(n int) *Bitset {
	return &Bitset{
		words: make([]uint64, (n+63)>>6),
		n:     n,
	}
}

func (b *Bitset) Len() int {
	return b.n
}

func (b *Bitset) Set(bit int) {
	word := bit >> 6 // bit / 64
	mask := uint64(1) << (bit & 63)
	b.words[word] |= mask
}

func (b *Bitset) Get(bit int) bool {
	word := bit >> 6
	return (b.words[word]>>(bit&63))&1 == 1
}

// Words exposes the backing storage. Bits past Len are always zero.
func (b *Bitset) Words() []uint64 {
	return b.words
}

// SetWord overwrites 64 bits at once, masking off anything past Len.
func (b *Bitset) SetWord(i int, w uint64) {
	if i == len(b.words)-1 {
		if tail := b.n & 63; tail != 0 {
			w &= (uint64(1) << tail) - 1
		}
	}
	b.words[i] = w
}

func (b *Bitset) ToIndices(out []uint32) int {
	filled := 0
	for wi, w := range b.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out[filled] = uint32(wi*64 + tz)
			filled += 1
			w &= w - 1 // clear lowest set bit
		}
	}
	return filled
}

func (b *Bitset) Any() bool {
	for _, w := range b.words {
		if w != 0 {
			return true
		}
	}
	return false
}

func (b *Bitset) Count() int {
	c := 0
	words := b.words
	i := 0
	for ; i+4 <= len(words); i += 4 {
		c += bits.OnesCount64(words[i+0])
		c += bits.OnesCount64(words[i+1])
		c += bits.OnesCount64(words[i+2])
		c += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		c += bits.OnesCount64(words[i])
	}
	return c
}

func (b *Bitset) Clone() *Bitset {
	cp := &Bitset{words: make([]uint64, len(b.words)), n: b.n}
	copy(cp.words, b.words)
	return cp
}

func (b *Bitset) Equal(other *Bitset) bool {
	if b.n != other.n {
		return false
	}
	for i, w := range b.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

func MergeOR(a, b *Bitset) *Bitset {
	out := NewBitset(a.n)
	for i := range a.words {
		out.words[i] = a.words[i] | b.words[i]
	}
	return out
}
