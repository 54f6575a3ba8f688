package io

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {

	path := filepath.Join(t.TempDir(), "nested", "state.bin")

	require.NoError(t, WriteFile(path, []byte("first version")))
	require.NoError(t, WriteFile(path, []byte("v2")))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data), "open for writing truncates")
}

func TestReadMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrFileDoesNotExist)
}

func TestNotOpened(t *testing.T) {
	fr := NewFileReader(filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, fr.WriteAt([]byte{1}, 0), ErrNotOpened)
	_, err := fr.Size()
	assert.ErrorIs(t, err, ErrNotOpened)
	assert.NoError(t, fr.Close())
}
