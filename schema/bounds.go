package schema

import (
	"golang.org/x/exp/constraints"
)

type NumericTypes interface {
	constraints.Integer | constraints.Float
}

type Bounds[T NumericTypes] struct {
	Min T
	Max T
}

// Morph widens b to cover other, reporting whether anything changed.
func (b *Bounds[T]) Morph(other Bounds[T]) bool {

	changes := 0

	if other.Min < b.Min {
		b.Min = other.Min
		changes += 1
	}
	if other.Max > b.Max {
		b.Max = other.Max
		changes += 1
	}

	return changes != 0
}

type BoundsFloat struct {
	Min float64
	Max float64
}

func (b *BoundsFloat) Morph(other BoundsFloat) bool {

	changes := 0

	if other.Min < b.Min {
		b.Min = other.Min
		changes += 1
	}
	if other.Max > b.Max {
		b.Max = other.Max
		changes += 1
	}

	return changes != 0
}

// Degenerate is true when the range cannot be split into bins.
func (b BoundsFloat) Degenerate() bool {
	return !finite(b.Min) || !finite(b.Max) || b.Max <= b.Min
}

func GetMaxMinBounds[T NumericTypes](arr []T) (Bounds[T], bool) {

	if len(arr) == 0 {
		return Bounds[T]{}, false
	}

	resultBounds := Bounds[T]{
		Min: arr[0],
		Max: arr[0],
	}

	for _, v := range arr[1:] {
		if v < resultBounds.Min {
			resultBounds.Min = v
		}
		if v > resultBounds.Max {
			resultBounds.Max = v
		}
	}
	return resultBounds, true
}
