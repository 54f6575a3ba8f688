package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dot5enko/column-limits/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneColumn(label string) schema.Dataset {
	return schema.Dataset{
		Label:   label,
		Columns: []schema.Column{schema.FloatColumn([]float64{1, 2})},
		Specs:   []schema.DimensionSpec{{Label: "x", Kind: schema.Float()}},
	}
}

func pollUntil(t *testing.T, l *Loader, n int) []Result {
	t.Helper()

	var results []Result
	deadline := time.Now().Add(5 * time.Second)

	for len(results) < n {
		require.True(t, time.Now().Before(deadline), "loader did not finish in time")
		results = append(results, l.Poll()...)
		time.Sleep(time.Millisecond)
	}

	return results
}

func TestPollDoesNotBlock(t *testing.T) {

	release := make(chan struct{})
	l := NewLoader(DecoderFunc(func(ctx context.Context, src Source) (schema.Dataset, error) {
		<-release
		return oneColumn(src.Name()), nil
	}), Config{MaxParallel: 2})

	ticket := l.Start(context.Background(), 7, Source{Label: "slow", Bytes: []byte{}})
	assert.Equal(t, schema.DatasetID(7), ticket.Dataset)

	assert.Empty(t, l.Poll())
	assert.Equal(t, 1, l.Pending())

	close(release)

	results := pollUntil(t, l, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "slow", results[0].Data.Label)
	assert.Equal(t, ticket.ID, results[0].Ticket.ID)
	assert.Equal(t, 0, l.Pending())
}

func TestFailuresAndPanicsComeBackAsErrors(t *testing.T) {

	boom := errors.New("boom")
	l := NewLoader(DecoderFunc(func(ctx context.Context, src Source) (schema.Dataset, error) {
		if src.Label == "panic" {
			panic("bad input")
		}
		return schema.Dataset{}, boom
	}), Config{})

	l.Start(context.Background(), 1, Source{Label: "err", Bytes: []byte{}})
	l.Start(context.Background(), 2, Source{Label: "panic", Bytes: []byte{}})

	require.NoError(t, l.Wait(context.Background()))
	results := l.Poll()
	require.Len(t, results, 2)

	byDataset := map[schema.DatasetID]error{}
	for _, r := range results {
		byDataset[r.Ticket.Dataset] = r.Err
	}

	assert.ErrorIs(t, byDataset[1], boom)
	assert.ErrorContains(t, byDataset[2], "bad input")
}

func TestNoDecoder(t *testing.T) {
	l := NewLoader(nil, Config{})
	l.Start(context.Background(), 1, Source{Path: "x"})
	results := pollUntil(t, l, 1)
	assert.ErrorIs(t, results[0].Err, ErrNoDecoder)
}

func TestConcurrentPathLoadsShareDecode(t *testing.T) {

	var calls atomic.Int32
	gate := make(chan struct{})

	l := NewLoader(DecoderFunc(func(ctx context.Context, src Source) (schema.Dataset, error) {
		calls.Add(1)
		<-gate
		return oneColumn("shared"), nil
	}), Config{MaxParallel: 4})

	l.Start(context.Background(), 1, Source{Path: "/data/a.bin"})
	l.Start(context.Background(), 2, Source{Path: "/data/a.bin"})

	// give both units a chance to reach the flight group
	time.Sleep(50 * time.Millisecond)
	close(gate)

	results := pollUntil(t, l, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, "shared", r.Data.Label)
	}
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestSharedDecodeIgnoresStarterContext(t *testing.T) {

	gate := make(chan struct{})
	l := NewLoader(DecoderFunc(func(ctx context.Context, src Source) (schema.Dataset, error) {
		<-gate
		if err := ctx.Err(); err != nil {
			return schema.Dataset{}, err
		}
		return oneColumn("shared"), nil
	}), Config{MaxParallel: 4})

	first, cancel := context.WithCancel(context.Background())
	l.Start(first, 1, Source{Path: "/data/same.bin"})
	l.Start(context.Background(), 2, Source{Path: "/data/same.bin"})

	time.Sleep(50 * time.Millisecond)
	cancel()
	close(gate)

	results := pollUntil(t, l, 2)
	for _, r := range results {
		if r.Ticket.Dataset == 2 {
			require.NoError(t, r.Err)
			assert.Equal(t, "shared", r.Data.Label)
		}
	}
}

func TestBytesDecoderReadsFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	var seen string
	dec := Bytes(func(name string, data []byte) (schema.Dataset, error) {
		seen = name + ":" + string(data)
		return oneColumn(name), nil
	})

	ds, err := dec.Decode(context.Background(), Source{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "input.txt:payload", seen)
	assert.Equal(t, "input.txt", ds.Label)

	_, err = Bytes(nil).Decode(context.Background(), Source{Path: path})
	assert.ErrorIs(t, err, ErrNoDecoder)
}
