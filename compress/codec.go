package compress

import (
	"fmt"

	"github.com/iwahq/numbers/format"
)

// Compressor compresses a byte slice, returning a newly allocated result.
// The input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice previously produced by the
// matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the Codec implementation for the given compression type.
func NewCodec(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionSnappy:
		return NewSnappyCodec(), nil
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("compress: unknown compression type %v", t)
	}
}
