package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEdge(t *testing.T) {

	e, err := ParseEdge("  ")
	require.NoError(t, err)
	assert.False(t, e.Set)

	e, err = ParseEdge(" - ")
	require.NoError(t, err)
	assert.False(t, e.Set)

	e, err = ParseEdge("2.5")
	require.NoError(t, err)
	assert.Equal(t, At(2.5), e)

	for _, bad := range []string{"abc", "NaN", "inf", "-Inf", "1e400"} {
		_, err = ParseEdge(bad)
		assert.ErrorIs(t, err, ErrInvalidBound, bad)
	}
}

func TestBoundOutsideIsInclusive(t *testing.T) {

	b := Between(1, 3)

	assert.False(t, b.Outside(1))
	assert.False(t, b.Outside(3))
	assert.False(t, b.Outside(2))
	assert.True(t, b.Outside(0.999))
	assert.True(t, b.Outside(3.001))
	assert.True(t, b.Outside(math.NaN()))
	assert.True(t, Unbounded().Outside(math.Inf(1)))
	assert.False(t, Unbounded().Outside(-1e300))

	lowerOnly := Bound{Lower: At(0)}
	assert.True(t, lowerOnly.Outside(-1))
	assert.False(t, lowerOnly.Outside(1e9))
}

func TestBoundValidate(t *testing.T) {
	assert.NoError(t, Between(0, 1).Validate())
	assert.ErrorIs(t, Bound{Lower: At(math.NaN())}.Validate(), ErrInvalidBound)
	assert.ErrorIs(t, Bound{Upper: At(math.Inf(-1))}.Validate(), ErrInvalidBound)
}

func TestParseBoundKeepsSideInError(t *testing.T) {
	_, err := ParseBound("1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upper")
}
