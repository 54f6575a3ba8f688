package compression

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

func CompressZstd(src []byte, output *bytes.Buffer) error {

	enc, err := getZstdEncoder()
	if err != nil {
		return err
	}
	defer zstdEncoderPool.Put(enc)

	output.Write(enc.EncodeAll(src, nil))
	return nil
}

func DecompressZstd(src []byte, output *bytes.Buffer) error {

	dec, err := getZstdDecoder()
	if err != nil {
		return err
	}
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return err
	}

	output.Write(out)
	return nil
}
