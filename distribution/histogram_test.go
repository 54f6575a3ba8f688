package distribution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinThreeValues(t *testing.T) {

	h, ok := Bin([]float64{0, 0.5, 1}, 33, 0, 1)
	require.True(t, ok)

	require.Len(t, h.Bins, 33)
	assert.Equal(t, uint64(1), h.Bins[0])
	assert.Equal(t, uint64(1), h.Bins[16])
	assert.Equal(t, uint64(1), h.Bins[32])
	assert.Equal(t, uint64(1), h.MaxBin)
	assert.InDelta(t, 0.5, h.MeanHeight, 1e-12)
	assert.Equal(t, 3, h.Count)

	runs := h.Runs()
	assert.Equal(t, []Run{
		{{Index: 0, Count: 1}},
		{{Index: 16, Count: 1}},
		{{Index: 32, Count: 1}},
	}, runs)
}

func TestBinSingleBinHoldsEverything(t *testing.T) {

	values := []float64{-5, 0, 3, 100, 7}
	h, ok := Bin(values, 1, 0, 10)
	require.True(t, ok)
	assert.Equal(t, []uint64{uint64(len(values))}, h.Bins)
}

func TestBinSumMatchesInput(t *testing.T) {

	values := make([]float64, 0, 1000)
	for i := 0; i < 1000; i++ {
		values = append(values, math.Sin(float64(i))*50)
	}

	h, ok := Bin(values, DefaultResolution, -50, 50)
	require.True(t, ok)

	var sum uint64
	for _, c := range h.Bins {
		sum += c
	}
	assert.Equal(t, uint64(len(values)), sum)
}

func TestBinRefuses(t *testing.T) {

	_, ok := Bin([]float64{1}, 0, 0, 1)
	assert.False(t, ok, "resolution below one")

	_, ok = Bin([]float64{1}, 10, 1, 1)
	assert.False(t, ok, "degenerate range")

	_, ok = Bin([]float64{1}, 10, 2, 1)
	assert.False(t, ok, "inverted range")

	_, ok = Bin([]float64{1}, 10, 0, math.Inf(1))
	assert.False(t, ok, "infinite range")

	_, ok = Bin(nil, 10, 0, 1)
	assert.False(t, ok, "no values")
}

func TestCompressRuns(t *testing.T) {

	runs := CompressRuns([]uint64{0, 2, 3, 0, 0, 1, 0})
	assert.Equal(t, []Run{
		{{Index: 1, Count: 2}, {Index: 2, Count: 3}},
		{{Index: 5, Count: 1}},
	}, runs)

	assert.Empty(t, CompressRuns([]uint64{0, 0}))
}

func TestMeanMarkerOnlyInside(t *testing.T) {

	h, ok := Bin([]float64{0, 0}, 4, 0, 1)
	require.True(t, ok)
	assert.False(t, h.HasMean())

	h, _ = Bin([]float64{0, 1}, 4, 0, 1)
	assert.True(t, h.HasMean())
}

func TestRange(t *testing.T) {
	lo, hi, ok := Range([]float64{3, -1, 2})
	require.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)

	_, _, ok = Range(nil)
	assert.False(t, ok)
}

func TestBinConstantColumn(t *testing.T) {

	values := make([]float64, 10000)
	for i := range values {
		values[i] = 0.5
	}

	h, ok := Bin(values, 33, 0, 1)
	require.True(t, ok)

	assert.Equal(t, uint64(10000), h.Bins[16])
	assert.Equal(t, uint64(10000), h.MaxBin)

	runs := h.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, Run{{Index: 16, Count: 10000}}, runs[0])
}

func TestBinEdgesLandInsideRange(t *testing.T) {

	h, ok := Bin([]float64{2, 7}, 5, 2, 7)
	require.True(t, ok)

	assert.Equal(t, uint64(1), h.Bins[0], "min goes to the first bin")
	assert.Equal(t, uint64(1), h.Bins[4], "max goes to the last bin")
}
