package ops

import (
	"math"

	"github.com/dot5enko/column-limits/bits"
	"github.com/dot5enko/column-limits/schema"
	"golang.org/x/exp/constraints"
)

type NumericTypes interface {
	constraints.Integer | constraints.Float
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// MarkOutside writes the exclusion vector of arr against bound into out and
// returns the number of excluded rows. A row is excluded when its value is
// not finite, below the lower edge or above the upper edge.
func MarkOutside[T NumericTypes](arr []T, bound schema.Bound, out *bits.Bitset) int {

	if len(arr) != out.Len() {
		panic("exclusion vector length does not match column length")
	}

	from, to := math.Inf(-1), math.Inf(1)
	if bound.Lower.Set {
		from = bound.Lower.Value
	}
	if bound.Upper.Set {
		to = bound.Upper.Value
	}

	n := len(arr)
	excluded := 0

	for base := 0; base < n; base += 64 {

		end := min(base+64, n)
		var word uint64
		i := base

		for ; i+7 < end; i += 8 {
			a0 := float64(arr[i+0])
			a1 := float64(arr[i+1])
			a2 := float64(arr[i+2])
			a3 := float64(arr[i+3])
			a4 := float64(arr[i+4])
			a5 := float64(arr[i+5])
			a6 := float64(arr[i+6])
			a7 := float64(arr[i+7])

			// the negated form also catches NaN
			word |= b2u(!(a0 >= from && a0 <= to)) << (i + 0 - base)
			word |= b2u(!(a1 >= from && a1 <= to)) << (i + 1 - base)
			word |= b2u(!(a2 >= from && a2 <= to)) << (i + 2 - base)
			word |= b2u(!(a3 >= from && a3 <= to)) << (i + 3 - base)
			word |= b2u(!(a4 >= from && a4 <= to)) << (i + 4 - base)
			word |= b2u(!(a5 >= from && a5 <= to)) << (i + 5 - base)
			word |= b2u(!(a6 >= from && a6 <= to)) << (i + 6 - base)
			word |= b2u(!(a7 >= from && a7 <= to)) << (i + 7 - base)
		}

		for ; i < end; i++ {
			a := float64(arr[i])
			word |= b2u(!(a >= from && a <= to)) << (i - base)
		}

		// infinities sit inside an unbounded side, reject them explicitly
		if !bound.Lower.Set || !bound.Upper.Set {
			for j := base; j < end; j++ {
				if math.IsInf(float64(arr[j]), 0) {
					word |= 1 << (j - base)
				}
			}
		}

		out.SetWord(base>>6, word)
		excluded += popcount(word)
	}

	return excluded
}

// MarkColumnOutside dispatches on the column representation.
func MarkColumnOutside(col schema.Column, bound schema.Bound, out *bits.Bitset) int {
	if ints, ok := col.Ints(); ok {
		return MarkOutside(ints, bound, out)
	}
	floats, _ := col.Floats()
	return MarkOutside(floats, bound, out)
}
