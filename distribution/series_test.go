package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionByColor(t *testing.T) {

	groups := Partition(
		[]float64{0.1, 0.2, 0.9, 0.95},
		[]int64{0, 0, 1, 1},
		0, 1,
	)

	require.Len(t, groups, 2)
	assert.Equal(t, int64(0), groups[0].Color)
	assert.Equal(t, []float64{0.1, 0.2}, groups[0].Values)
	assert.Equal(t, int64(1), groups[1].Color)
	assert.Equal(t, []float64{0.9, 0.95}, groups[1].Values)
}

func TestPartitionSkipsEmptyColors(t *testing.T) {

	groups := Partition([]float64{1, 2}, []int64{5, 9}, 0, 10)

	require.Len(t, groups, 2)
	assert.Equal(t, int64(5), groups[0].Color)
	assert.Equal(t, int64(9), groups[1].Color)
}

func TestPartitionWideRange(t *testing.T) {

	groups := Partition([]float64{1, 2, 3}, []int64{1 << 40, -(1 << 40), 1 << 40}, -(1 << 40), 1<<40)

	require.Len(t, groups, 2)
	assert.Equal(t, int64(-(1 << 40)), groups[0].Color)
	assert.Equal(t, []float64{1, 3}, groups[1].Values)
}

func TestBinGroupsAndNormalization(t *testing.T) {

	groups := Partition(
		[]float64{0.1, 0.2, 0.9, 0.95, 0.96},
		[]int64{0, 0, 1, 1, 1},
		0, 1,
	)

	series := BinGroups(groups, 2, 0, 1)
	require.Len(t, series, 2)

	assert.Equal(t, []uint64{2, 0}, series[0].Bins)
	assert.Equal(t, []uint64{0, 3}, series[1].Bins)

	all := [][]Series{series}
	assert.Equal(t, uint64(3), Normalizer(SameForAll, all))
	assert.Equal(t, uint64(0), Normalizer(PerSeries, all))
	assert.Equal(t, []int64{0, 1}, Colors(all))
}

func TestOutline(t *testing.T) {

	h, ok := Bin([]float64{0, 0, 1}, 2, 0, 1)
	require.True(t, ok)

	shape := Outline(h, 0, 1, 0)
	require.Len(t, shape.Polygons, 1)

	polygon := shape.Polygons[0]
	require.Len(t, polygon, 8)

	// bin 0 holds the max, so it spans the whole (shrunk) slot width
	assert.InDelta(t, 0.5-0.5*barFill, polygon[0].X, 1e-12)
	assert.InDelta(t, 0.75-0.25, polygon[0].Y, 1e-12)

	// polygon closes right side in reverse order
	assert.InDelta(t, 0.5+0.25*barFill, polygon[4].X, 1e-12)

	require.True(t, shape.HasMean)
	assert.InDelta(t, 1-1.0/3, shape.Mean.Y, 1e-12)
}

func TestOutlineEmpty(t *testing.T) {
	assert.Empty(t, Outline(Histogram{}, 0, 1, 0).Polygons)
}
