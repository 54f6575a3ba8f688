package synthetic

import (
	"context"
	"testing"

	"github.com/dot5enko/column-limits/manager/executor"
	"github.com/dot5enko/column-limits/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangleSteps(t *testing.T) {

	ds, err := Rectangle("r", 5, 10, 20, []Spec{{Label: "x", Min: 0, Max: 1}}, 16)
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, 5, ds.Rows())
	assert.Equal(t, "column,row,x", ds.Header)

	cols, ok := ds.Columns[0].Ints()
	require.True(t, ok)
	assert.Equal(t, []int64{10, 11, 12, 13, 14}, cols)

	x, ok := ds.Columns[2].Floats()
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, x)

	assert.Equal(t, schema.FloatKind, ds.Specs[2].Kind.Tag)
	assert.Equal(t, schema.IntKind, ds.Specs[0].Kind.Tag)
}

func TestRectangleDuplicateLabel(t *testing.T) {
	_, err := Rectangle("r", 3, 0, 0, []Spec{{Label: "row"}}, 16)
	assert.ErrorIs(t, err, schema.ErrDuplicateLabel)
}

func TestSimpleIntegralColumnBecomesInt(t *testing.T) {
	ds := Simple(10)
	// d2 steps 1..10 by 1
	assert.Equal(t, schema.IntKind, ds.Columns[3].Tag())
	assert.Equal(t, schema.FloatKind, ds.Columns[2].Tag())
}

func TestParseSource(t *testing.T) {

	rows, groups, err := ParseSource("rect:100:3")
	require.NoError(t, err)
	assert.Equal(t, 100, rows)
	assert.Equal(t, 3, groups)

	for _, bad := range []string{"file.csv", "rect:", "rect:0", "rect:5:x", "rect:1:2:3"} {
		_, _, err := ParseSource(bad)
		assert.ErrorIs(t, err, ErrBadSource, bad)
	}
}

func TestDecoder(t *testing.T) {

	dec := Decoder(16, nil)

	ds, err := dec.Decode(context.Background(), executor.Source{Path: "rect:6:2", Label: "six"})
	require.NoError(t, err)
	assert.Equal(t, "six", ds.Label)
	assert.Len(t, ds.Columns, 5)
	assert.Equal(t, "group", ds.Specs[4].Label)

	_, err = dec.Decode(context.Background(), executor.Source{Path: "/tmp/x.csv"})
	assert.ErrorIs(t, err, ErrBadSource)
}
