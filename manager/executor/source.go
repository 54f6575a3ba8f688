package executor

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/dot5enko/column-limits/io"
	"github.com/dot5enko/column-limits/schema"
)

var ErrNoDecoder = errors.New("no decoder configured")

// Source tells a decoder where a dataset comes from: either a path or
// in-memory bytes.
type Source struct {
	Path  string
	Bytes []byte
	Label string
}

// Key identifies loads that may share one decode. In-memory sources are
// never shared.
func (s Source) Key() string {
	if s.Path == "" || s.Bytes != nil {
		return ""
	}
	return s.Path
}

func (s Source) Name() string {
	if s.Label != "" {
		return s.Label
	}
	if s.Path != "" {
		return filepath.Base(s.Path)
	}
	return "unnamed"
}

type Decoder interface {
	Decode(ctx context.Context, src Source) (schema.Dataset, error)
}

type DecoderFunc func(ctx context.Context, src Source) (schema.Dataset, error)

func (f DecoderFunc) Decode(ctx context.Context, src Source) (schema.Dataset, error) {
	return f(ctx, src)
}

// ParseFunc turns raw file contents into a dataset.
type ParseFunc func(name string, data []byte) (schema.Dataset, error)

// Bytes wraps parse into a decoder that reads the source's bytes, or the
// file at its path.
func Bytes(parse ParseFunc) Decoder {
	return DecoderFunc(func(ctx context.Context, src Source) (schema.Dataset, error) {

		if parse == nil {
			return schema.Dataset{}, ErrNoDecoder
		}

		data := src.Bytes
		if data == nil {
			var err error
			if data, err = io.ReadFile(src.Path); err != nil {
				return schema.Dataset{}, err
			}
		}

		if err := ctx.Err(); err != nil {
			return schema.Dataset{}, err
		}

		return parse(src.Name(), data)
	})
}
