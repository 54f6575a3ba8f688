// Package distribution bins filtered values into histograms and turns them
// into drawable outlines.
package distribution

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// DefaultResolution is the bin count used when none is configured.
const DefaultResolution = 31

type Histogram struct {
	Bins   []uint64
	MaxBin uint64

	// MeanHeight is the mean of the binned values mapped to [0, 1] over the
	// binning range.
	MeanHeight float64

	Count int
}

// Bin counts values into resolution equal sub-ranges of [min, max]. Values
// outside the range fall into the edge bins. It refuses to bin when
// resolution < 1, the range is not finite or max <= min, and when values is
// empty.
func Bin(values []float64, resolution int, min, max float64) (Histogram, bool) {

	if resolution < 1 || len(values) == 0 {
		return Histogram{}, false
	}

	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || max <= min {
		return Histogram{}, false
	}

	r := float64(resolution)
	factor := r / (max - min)
	last := resolution - 1

	bins := make([]uint64, resolution)

	for _, v := range values {

		ratio := (v - min) * factor
		if !(ratio >= 0) {
			ratio = 0
		} else if ratio > r {
			ratio = r
		}

		idx := int(math.Floor(ratio))
		if idx > last {
			idx = last
		}

		bins[idx]++
	}

	h := Histogram{
		Bins:       bins,
		Count:      len(values),
		MeanHeight: (stats.Mean(values) - min) / (max - min),
	}

	for _, c := range bins {
		if c > h.MaxBin {
			h.MaxBin = c
		}
	}

	return h, true
}

// HasMean reports whether the mean marker falls strictly inside the range.
func (h Histogram) HasMean() bool {
	return h.MeanHeight > 0 && h.MeanHeight < 1
}

type BinCount struct {
	Index int
	Count uint64
}

// A Run is a maximal stretch of consecutive non-empty bins.
type Run []BinCount

// CompressRuns groups consecutive non-zero bins, keeping their original
// indices. Zero bins separate runs and never appear in the output.
func CompressRuns(bins []uint64) []Run {

	var runs []Run
	var current Run

	for i, c := range bins {
		if c == 0 {
			if len(current) > 0 {
				runs = append(runs, current)
				current = nil
			}
			continue
		}
		current = append(current, BinCount{Index: i, Count: c})
	}

	if len(current) > 0 {
		runs = append(runs, current)
	}

	return runs
}

func (h Histogram) Runs() []Run {
	return CompressRuns(h.Bins)
}

// Range returns the min and max of values.
func Range(values []float64) (float64, float64, bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi := stats.Bounds(values)
	return lo, hi, true
}
