package filters

import (
	"math"
	"testing"

	"github.com/dot5enko/column-limits/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dsA schema.DatasetID = 1
	dsB schema.DatasetID = 2

	dimX schema.DimensionID = 10
	dimY schema.DimensionID = 11
)

func TestAttachWithBoundsScenario(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 5)

	excluded := s.Attach(dsA, dimX, schema.FloatColumn([]float64{1, 2, 3, 4, 5}), schema.Between(2, 4))
	assert.Equal(t, 2, excluded)

	counter, ok := s.Counter(dsA)
	require.True(t, ok)
	assert.Equal(t, []uint32{1, 0, 0, 0, 1}, counter)

	assert.ElementsMatch(t, []uint32{1, 2, 3}, s.VisibleRows(dsA).ToArray())
}

func TestUpdateBoundAcrossDatasets(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 5)
	s.AddDataset(dsB, 3)

	s.Attach(dsA, dimX, schema.FloatColumn([]float64{1, 2, 3, 4, 5}), schema.Between(2, 4))
	s.Attach(dsA, dimY, schema.FloatColumn([]float64{10, 20, 30, 40, 50}), schema.Unbounded())
	s.Attach(dsB, dimX, schema.FloatColumn([]float64{0, 3, 6}), schema.Between(2, 4))

	require.True(t, s.UpdateBound(dimY, schema.Bound{Upper: schema.At(20)}))

	a, _ := s.Counter(dsA)
	assert.Equal(t, []uint32{1, 0, 1, 1, 2}, a)

	b, _ := s.Counter(dsB)
	assert.Equal(t, []uint32{1, 0, 1}, b, "dataset without the dimension untouched")

	require.True(t, s.UpdateBound(dimX, schema.Unbounded()))
	a, _ = s.Counter(dsA)
	assert.Equal(t, []uint32{0, 0, 1, 1, 1}, a)
	b, _ = s.Counter(dsB)
	assert.Equal(t, []uint32{0, 0, 0}, b)

	require.NoError(t, s.Verify(dsA))
	require.NoError(t, s.Verify(dsB))
}

func TestUpdateBoundIsIdempotent(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 4)
	s.Attach(dsA, dimX, schema.IntColumn([]int64{1, 2, 3, 4}), schema.Unbounded())

	bound := schema.Between(2, 3)
	assert.True(t, s.UpdateBound(dimX, bound))
	first, _ := s.Counter(dsA)

	assert.False(t, s.UpdateBound(dimX, bound))
	second, _ := s.Counter(dsA)

	assert.Equal(t, first, second)
}

func TestBoundaryValuesAreInside(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 3)
	s.Attach(dsA, dimX, schema.FloatColumn([]float64{2, 4, math.NaN()}), schema.Between(2, 4))

	counter, _ := s.Counter(dsA)
	assert.Equal(t, []uint32{0, 0, 1}, counter)
}

func TestRemoveDatasetReleasesDimensions(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 2)
	s.AddDataset(dsB, 2)

	s.Attach(dsA, dimX, schema.FloatColumn([]float64{1, 2}), schema.Unbounded())
	s.Attach(dsA, dimY, schema.FloatColumn([]float64{1, 2}), schema.Unbounded())
	s.Attach(dsB, dimX, schema.FloatColumn([]float64{1, 2}), schema.Unbounded())

	dims := s.RemoveDataset(dsA)
	assert.ElementsMatch(t, []schema.DimensionID{dimX, dimY}, dims)

	assert.True(t, s.References(dimX))
	assert.False(t, s.References(dimY))
	assert.False(t, s.Has(dsA))

	// removing twice is a no-op
	assert.Nil(t, s.RemoveDataset(dsA))
}

func TestCounterIsCopy(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 2)
	s.Attach(dsA, dimX, schema.FloatColumn([]float64{1, 5}), schema.Bound{Upper: schema.At(2)})

	c, _ := s.Counter(dsA)
	c[1] = 0

	again, _ := s.Counter(dsA)
	assert.Equal(t, uint32(1), again[1])
}

func TestAttachMisuse(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 2)
	s.Attach(dsA, dimX, schema.FloatColumn([]float64{1, 2}), schema.Unbounded())

	assert.Panics(t, func() { s.Attach(dsA, dimX, schema.FloatColumn([]float64{1, 2}), schema.Unbounded()) })
	assert.Panics(t, func() { s.Attach(dsA, dimY, schema.FloatColumn([]float64{1}), schema.Unbounded()) })
	assert.Panics(t, func() { s.Attach(dsB, dimY, schema.FloatColumn([]float64{1, 2}), schema.Unbounded()) })
	assert.Panics(t, func() { s.AddDataset(dsA, 2) })
}

func TestVisibleRowsUnionOfVectors(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 130)

	assert.Equal(t, uint64(130), s.VisibleRows(dsA).GetCardinality(), "nothing attached")

	xs := make([]float64, 130)
	ys := make([]float64, 130)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = float64(129 - i)
	}

	s.Attach(dsA, dimX, schema.FloatColumn(xs), schema.Unbounded())
	s.Attach(dsA, dimY, schema.FloatColumn(ys), schema.Unbounded())
	assert.Equal(t, uint64(130), s.VisibleRows(dsA).GetCardinality(), "unbounded so far")

	require.True(t, s.UpdateBound(dimX, schema.Bound{Upper: schema.At(63)}))
	require.True(t, s.UpdateBound(dimY, schema.Bound{Upper: schema.At(119)}))

	visible := s.VisibleRows(dsA)
	assert.Equal(t, uint64(54), visible.GetCardinality())
	assert.True(t, visible.Contains(10))
	assert.True(t, visible.Contains(63))
	assert.False(t, visible.Contains(9), "excluded by y")
	assert.False(t, visible.Contains(64), "excluded by x")

	require.NoError(t, s.Verify(dsA))
}

func TestVerifyCatchesStaleVector(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 3)
	s.Attach(dsA, dimX, schema.FloatColumn([]float64{1, 2, 3}), schema.Between(1, 2))
	require.NoError(t, s.Verify(dsA))

	s.pairs[pairKey{dataset: dsA, dimension: dimX}].vector.Set(0)

	err := s.Verify(dsA)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0")
}

func TestVerifyCatchesCounterDrift(t *testing.T) {

	s := NewStore(nil)
	s.AddDataset(dsA, 3)
	s.Attach(dsA, dimX, schema.FloatColumn([]float64{1, 2, 3}), schema.Between(1, 2))

	s.datasets[dsA].counter[1] = 4

	err := s.Verify(dsA)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counter mismatch")
}
