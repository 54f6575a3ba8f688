package schema

import "strconv"

type DatasetID uint64

func (id DatasetID) String() string {
	return "ds#" + strconv.FormatUint(uint64(id), 10)
}

type DimensionID uint64

func (id DimensionID) String() string {
	return "dim#" + strconv.FormatUint(uint64(id), 10)
}

// KeyGenerator hands out increasing keys. A key is never handed out twice,
// even after the thing it named is gone.
type KeyGenerator[K ~uint64] struct {
	next K
}

func (g *KeyGenerator[K]) Next() K {
	k := g.next
	g.next++
	return k
}
