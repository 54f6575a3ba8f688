// Package session persists user choices between runs: dimension labels and
// bounds plus the sources datasets were loaded from. Derived filter state is
// never stored.
package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dot5enko/column-limits/bits"
	"github.com/dot5enko/column-limits/compression"
	"github.com/dot5enko/column-limits/schema"
	"github.com/google/uuid"
)

var (
	ErrBadMagic           = errors.New("not a session file")
	ErrUnsupportedVersion = errors.New("unsupported session version")
)

var magic = [4]byte{'C', 'L', 'S', 'N'}

const Version uint16 = 1

const headerSize = 4 + 2 + 1 + 4

// maxEntries caps list lengths read from a file.
const maxEntries = 1 << 20

type DimensionState struct {
	OriginalLabel string
	Label         string
	Bound         schema.Bound
}

type DatasetState struct {
	Label string
	Path  string
	Shown bool
}

type Snapshot struct {
	ID      uuid.UUID
	SavedAt time.Time

	Dimensions []DimensionState
	Datasets   []DatasetState

	// Plotted is the original label of the plotted dimension, empty if none.
	Plotted string
}

func putEdge(w *bits.BitWriter, e schema.Edge) {
	w.PutBool(e.Set)
	w.PutFloat64(e.Value)
}

func readEdge(r *bits.BitsReader) (schema.Edge, error) {
	set, err := r.ReadBool()
	if err != nil {
		return schema.Edge{}, err
	}
	v, err := r.ReadF64()
	if err != nil {
		return schema.Edge{}, err
	}
	return schema.Edge{Value: v, Set: set}, nil
}

func (s Snapshot) payload() []byte {

	w := bits.NewEncodeBuffer(make([]byte, 256), binary.LittleEndian)
	w.EnableGrowing()

	w.PutUUID(s.ID)
	w.PutInt64(s.SavedAt.UnixNano())

	w.PutUint32(uint32(len(s.Dimensions)))
	for _, d := range s.Dimensions {
		w.PutString(d.OriginalLabel)
		w.PutString(d.Label)
		putEdge(&w, d.Bound.Lower)
		putEdge(&w, d.Bound.Upper)
	}

	w.PutUint32(uint32(len(s.Datasets)))
	for _, d := range s.Datasets {
		w.PutString(d.Label)
		w.PutString(d.Path)
		w.PutBool(d.Shown)
	}

	w.PutString(s.Plotted)

	return w.Bytes()
}

// Encode writes the header and the payload compressed with codec.
func (s Snapshot) Encode(codec compression.Codec) ([]byte, error) {

	raw := s.payload()

	packed, err := compression.Compress(codec, raw)
	if err != nil {
		return nil, fmt.Errorf("compress session: %w", err)
	}

	w := bits.NewEncodeBuffer(make([]byte, headerSize+len(packed)), binary.LittleEndian)
	w.Write(magic[:])
	w.PutUint16(Version)
	w.WriteByte(uint8(codec))
	w.PutUint32(uint32(len(raw)))
	w.Write(packed)

	return w.Bytes(), nil
}

func Decode(data []byte) (Snapshot, error) {

	if len(data) < headerSize || !bytes.Equal(data[:4], magic[:]) {
		return Snapshot{}, ErrBadMagic
	}

	header := bits.NewReader(bytes.NewReader(data[4:headerSize]), binary.LittleEndian)

	version, _ := header.ReadU16()
	if version != Version {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	codec := compression.Codec(header.MustReadU8())
	rawSize, _ := header.ReadU32()

	raw, err := compression.Decompress(codec, data[headerSize:])
	if err != nil {
		return Snapshot{}, fmt.Errorf("decompress session: %w", err)
	}

	if len(raw) != int(rawSize) {
		return Snapshot{}, fmt.Errorf("session payload is %d bytes, header says %d: %w", len(raw), rawSize, bits.ErrReadMismatch)
	}

	return decodePayload(raw)
}

func decodePayload(raw []byte) (s Snapshot, topErr error) {

	r := bits.NewReader(bytes.NewReader(raw), binary.LittleEndian)

	if s.ID, topErr = r.ReadUUID(); topErr != nil {
		return s, fmt.Errorf("unable to decode session id: %w", topErr)
	}

	nanos, err := r.ReadI64()
	if err != nil {
		return s, fmt.Errorf("unable to decode save time: %w", err)
	}
	s.SavedAt = time.Unix(0, nanos)

	dims, err := r.ReadU32()
	if err != nil || dims > maxEntries {
		return s, fmt.Errorf("unable to decode dimension count: %w", errors.Join(err, bits.ErrTooLong))
	}

	for range dims {
		var d DimensionState
		if d.OriginalLabel, topErr = r.ReadString(); topErr != nil {
			return s, fmt.Errorf("unable to decode dimension label: %w", topErr)
		}
		if d.Label, topErr = r.ReadString(); topErr != nil {
			return s, fmt.Errorf("unable to decode dimension label: %w", topErr)
		}
		if d.Bound.Lower, topErr = readEdge(r); topErr != nil {
			return s, fmt.Errorf("unable to decode lower bound of %q: %w", d.OriginalLabel, topErr)
		}
		if d.Bound.Upper, topErr = readEdge(r); topErr != nil {
			return s, fmt.Errorf("unable to decode upper bound of %q: %w", d.OriginalLabel, topErr)
		}
		s.Dimensions = append(s.Dimensions, d)
	}

	datasets, err := r.ReadU32()
	if err != nil || datasets > maxEntries {
		return s, fmt.Errorf("unable to decode dataset count: %w", errors.Join(err, bits.ErrTooLong))
	}

	for range datasets {
		var d DatasetState
		if d.Label, topErr = r.ReadString(); topErr != nil {
			return s, fmt.Errorf("unable to decode dataset label: %w", topErr)
		}
		if d.Path, topErr = r.ReadString(); topErr != nil {
			return s, fmt.Errorf("unable to decode dataset path: %w", topErr)
		}
		if d.Shown, topErr = r.ReadBool(); topErr != nil {
			return s, fmt.Errorf("unable to decode dataset visibility: %w", topErr)
		}
		s.Datasets = append(s.Datasets, d)
	}

	if s.Plotted, topErr = r.ReadString(); topErr != nil {
		return s, fmt.Errorf("unable to decode plotted dimension: %w", topErr)
	}

	return s, nil
}
