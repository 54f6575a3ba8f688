package distribution

import (
	"slices"

	"github.com/dot5enko/column-limits/lists"
)

// maxDenseSpan bounds the color range bucketed through a flat slice.
const maxDenseSpan = 1 << 16

// Group is the values of one color.
type Group struct {
	Color   int64
	Colored bool
	Values  []float64
}

// Partition splits values by their integer color, walking colors in
// ascending order over [lo, hi]. Colors without values produce no group.
func Partition(values []float64, colors []int64, lo, hi int64) []Group {

	if len(values) != len(colors) {
		panic("partition: values and colors differ in length")
	}

	if len(values) == 0 || hi < lo {
		return nil
	}

	span := hi - lo + 1

	if span > 0 && span <= maxDenseSpan {

		buckets := make([][]float64, span)
		for i, c := range colors {
			if c < lo || c > hi {
				continue
			}
			buckets[c-lo] = append(buckets[c-lo], values[i])
		}

		var groups []Group
		for offset, vals := range buckets {
			if len(vals) == 0 {
				continue
			}
			groups = append(groups, Group{Color: lo + int64(offset), Colored: true, Values: vals})
		}
		return groups
	}

	byColor := map[int64][]float64{}
	for i, c := range colors {
		if c < lo || c > hi {
			continue
		}
		byColor[c] = append(byColor[c], values[i])
	}

	keys := make([]int64, 0, len(byColor))
	for c := range byColor {
		keys = append(keys, c)
	}
	slices.Sort(keys)

	groups := make([]Group, 0, len(keys))
	for _, c := range keys {
		groups = append(groups, Group{Color: c, Colored: true, Values: byColor[c]})
	}

	return groups
}

type Series struct {
	Color   int64
	Colored bool
	Histogram
}

// BinGroups bins every group over the same range, dropping groups that
// produce no histogram.
func BinGroups(groups []Group, resolution int, min, max float64) []Series {

	result := make([]Series, 0, len(groups))

	for _, g := range groups {
		h, ok := Bin(g.Values, resolution, min, max)
		if !ok {
			continue
		}
		result = append(result, Series{Color: g.Color, Colored: g.Colored, Histogram: h})
	}

	return result
}

type Normalization uint8

const (
	// SameForAll scales every series by the largest bin of all of them.
	SameForAll Normalization = iota
	// PerSeries scales each series by its own largest bin.
	PerSeries
)

func (n Normalization) String() string {
	switch n {
	case SameForAll:
		return "same-for-all"
	case PerSeries:
		return "per-series"
	default:
		return ""
	}
}

// Normalizer returns the divisor for a series under n; zero means "use the
// series' own max bin".
func Normalizer(n Normalization, all [][]Series) uint64 {

	if n != SameForAll {
		return 0
	}

	var global uint64
	for _, entry := range all {
		for _, s := range entry {
			if s.MaxBin > global {
				global = s.MaxBin
			}
		}
	}

	return global
}

// Colors lists the distinct colors present across entries, ascending.
func Colors(all [][]Series) []int64 {

	var colors []int64
	for _, entry := range all {
		for _, s := range entry {
			if s.Colored {
				colors = lists.Insert(colors, s.Color)
			}
		}
	}

	return colors
}
