package bits

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/google/uuid"
)

var (
	ErrReadMismatch = errors.New("read size mismatch")
	ErrTooLong      = errors.New("length prefix exceeds limit")
)

const MaxBinReaderBufferSize = 256

// MaxStringLen caps length prefixes so a corrupt file cannot ask for gigabytes.
const MaxStringLen = 1 << 20

type BitsReader struct {
	readBuffer [MaxBinReaderBufferSize]byte

	buf   io.Reader
	order binary.ByteOrder
}

func NewReader(buf io.Reader, order binary.ByteOrder) *BitsReader {
	return &BitsReader{buf: buf, order: order}
}

func (r *BitsReader) readNextBytesIntoReadBuffer(size int) error {
	_, err := io.ReadFull(r.buf, r.readBuffer[:size])

	if err == io.ErrUnexpectedEOF {
		return ErrReadMismatch
	}

	return err
}

func (r *BitsReader) ReadU8() (uint8, error) {
	err := r.readNextBytesIntoReadBuffer(1)

	if err != nil {
		return 0, err
	}

	return r.readBuffer[0], nil
}

func (r *BitsReader) MustReadU8() uint8 {
	u, er := r.ReadU8()
	if er != nil {
		panic(er)
	}
	return u
}

func (r *BitsReader) ReadBool() (bool, error) {
	u, err := r.ReadU8()
	return u != 0, err
}

func (r *BitsReader) ReadU16() (uint16, error) {

	err := r.readNextBytesIntoReadBuffer(2)

	if err != nil {
		return 0, err
	}

	return r.order.Uint16(r.readBuffer[:2]), nil
}

func (r *BitsReader) ReadU32() (uint32, error) {
	readErr := r.readNextBytesIntoReadBuffer(4)
	if readErr != nil {
		return 0, readErr
	}
	return r.order.Uint32(r.readBuffer[:4]), nil
}

func (r *BitsReader) ReadU64() (uint64, error) {

	readErr := r.readNextBytesIntoReadBuffer(8)
	if readErr != nil {
		return 0, readErr
	}

	return r.order.Uint64(r.readBuffer[:8]), nil
}

func (r *BitsReader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *BitsReader) ReadF64() (float64, error) {
	u, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

func (r *BitsReader) ReadUUID() (result uuid.UUID, err error) {
	err = r.ReadBytes(16, result[:])
	return result, err
}

func (r *BitsReader) ReadString() (string, error) {

	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}

	if n > MaxStringLen {
		return "", ErrTooLong
	}

	out := make([]byte, n)
	if err := r.ReadBytes(int(n), out); err != nil {
		return "", err
	}

	return string(out), nil
}

func (r *BitsReader) ReadBytes(n int, out []byte) error {

	_, err := io.ReadFull(r.buf, out[:n])

	if err == io.ErrUnexpectedEOF {
		return ErrReadMismatch
	}

	return err
}
