package ops

import (
	"fmt"
	"math/bits"

	bitset "github.com/dot5enko/column-limits/bits"
)

func popcount(w uint64) int {
	return bits.OnesCount64(w)
}

// ApplyTransitions moves counter from the old exclusion vector to the new one:
// rows going false->true get +1, rows going true->false get -1. Rows whose bit
// did not change are not touched. Returns the number of rows that changed.
func ApplyTransitions(old, next *bitset.Bitset, counter []uint32) int {

	if old.Len() != next.Len() || old.Len() != len(counter) {
		panic(fmt.Sprintf("transition length mismatch: old %d, new %d, counter %d", old.Len(), next.Len(), len(counter)))
	}

	oldWords := old.Words()
	newWords := next.Words()
	changed := 0

	for wi, nw := range newWords {

		ow := oldWords[wi]
		if ow == nw {
			continue
		}

		rising := nw &^ ow
		falling := ow &^ nw

		for rising != 0 {
			tz := bits.TrailingZeros64(rising)
			counter[wi*64+tz]++
			changed++
			rising &= rising - 1
		}

		for falling != 0 {
			tz := bits.TrailingZeros64(falling)
			row := wi*64 + tz
			if counter[row] == 0 {
				panic(fmt.Sprintf("exclusion counter underflow at row %d", row))
			}
			counter[row]--
			changed++
			falling &= falling - 1
		}
	}

	return changed
}

// AddVector adds one for every excluded row of vec.
func AddVector(vec *bitset.Bitset, counter []uint32) int {

	if vec.Len() != len(counter) {
		panic(fmt.Sprintf("vector length %d does not match counter length %d", vec.Len(), len(counter)))
	}

	added := 0
	for wi, w := range vec.Words() {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			counter[wi*64+tz]++
			added++
			w &= w - 1
		}
	}

	return added
}
