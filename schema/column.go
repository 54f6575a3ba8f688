package schema

import "math"

const maxExactInt = 1 << 53

// Column holds the values of one dimension for every row of a dataset.
// Integer columns keep their values as int64.
type Column struct {
	tag    KindTag
	floats []float64
	ints   []int64
}

func FloatColumn(values []float64) Column {
	return Column{tag: FloatKind, floats: values}
}

func IntColumn(values []int64) Column {
	return Column{tag: IntKind, ints: values}
}

// ColumnFromFloats stores values as an integer column when every one of them
// is a finite integral number, and as a float column otherwise.
func ColumnFromFloats(values []float64) Column {

	for _, v := range values {
		if !finite(v) || v != math.Trunc(v) || math.Abs(v) > maxExactInt {
			return FloatColumn(values)
		}
	}

	ints := make([]int64, len(values))
	for i, v := range values {
		ints[i] = int64(v)
	}

	return IntColumn(ints)
}

func (c Column) Tag() KindTag {
	return c.tag
}

func (c Column) Len() int {
	if c.tag == IntKind {
		return len(c.ints)
	}
	return len(c.floats)
}

func (c Column) At(row int) float64 {
	if c.tag == IntKind {
		return float64(c.ints[row])
	}
	return c.floats[row]
}

func (c Column) Ints() ([]int64, bool) {
	return c.ints, c.tag == IntKind
}

func (c Column) Floats() ([]float64, bool) {
	return c.floats, c.tag == FloatKind
}

func (c Column) Kind(uniqueLimit int) NumericKind {
	if c.tag == IntKind {
		return IntKindOf(c.ints, uniqueLimit)
	}
	return Float()
}
