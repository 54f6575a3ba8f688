package compression

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCodec = errors.New("unknown compression codec")

type Codec uint8

const (
	None Codec = iota
	LZ4
	Zstd
)

func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

func Compress(c Codec, src []byte) ([]byte, error) {

	var out bytes.Buffer

	switch c {
	case None:
		return src, nil
	case LZ4:
		if err := CompressLz4(src, &out); err != nil {
			return nil, err
		}
	case Zstd:
		if err := CompressZstd(src, &out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(c))
	}

	return out.Bytes(), nil
}

func Decompress(c Codec, src []byte) ([]byte, error) {

	var out bytes.Buffer

	switch c {
	case None:
		return src, nil
	case LZ4:
		if err := DecompressLz4(src, &out); err != nil {
			return nil, err
		}
	case Zstd:
		if err := DecompressZstd(src, &out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(c))
	}

	return out.Bytes(), nil
}
