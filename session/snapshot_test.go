package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dot5enko/column-limits/compression"
	"github.com/dot5enko/column-limits/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Snapshot {
	return Snapshot{
		ID:      uuid.New(),
		SavedAt: time.Unix(1700000000, 42),
		Dimensions: []DimensionState{
			{OriginalLabel: "speed", Label: "velocity", Bound: schema.Between(0, 10)},
			{OriginalLabel: "group", Label: "group", Bound: schema.Bound{Upper: schema.At(3)}},
		},
		Datasets: []DatasetState{
			{Label: "run 1", Path: "/data/run1.bin", Shown: true},
			{Label: "run 2", Path: "/data/run2.bin"},
		},
		Plotted: "speed",
	}
}

func TestEncodeDecodeEveryCodec(t *testing.T) {

	s := sample()

	for _, c := range []compression.Codec{compression.None, compression.LZ4, compression.Zstd} {
		data, err := s.Encode(c)
		require.NoError(t, err, c.String())

		got, err := Decode(data)
		require.NoError(t, err, c.String())

		assert.Equal(t, s.ID, got.ID)
		assert.True(t, s.SavedAt.Equal(got.SavedAt))
		assert.Equal(t, s.Dimensions, got.Dimensions)
		assert.Equal(t, s.Datasets, got.Datasets)
		assert.Equal(t, s.Plotted, got.Plotted)
	}
}

func TestDecodeRejectsForeignData(t *testing.T) {

	_, err := Decode([]byte("hello world, not a session"))
	assert.ErrorIs(t, err, ErrBadMagic)

	data, err := sample().Encode(compression.None)
	require.NoError(t, err)

	data[4] = 9
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeTruncated(t *testing.T) {

	data, err := sample().Encode(compression.None)
	require.NoError(t, err)

	_, err = Decode(data[:len(data)-3])
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {

	path := filepath.Join(t.TempDir(), "session.clsn")
	assert.False(t, Exists(path))

	require.NoError(t, Save(path, sample(), compression.Zstd))
	assert.True(t, Exists(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "velocity", got.Dimensions[0].Label)
}
