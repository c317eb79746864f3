package compress

import "github.com/klauspost/compress/snappy"

// SnappyCodec implements the Snappy block format IWA chunk framing uses on
// the wire (spec.md §4.1). klauspost/compress/snappy is wire-compatible
// with golang.org/x/snappy's block format, which is what Apple's Python and
// Objective-C implementations both produce.
type SnappyCodec struct{}

var _ Codec = SnappyCodec{}

// NewSnappyCodec creates a Snappy codec.
func NewSnappyCodec() SnappyCodec { return SnappyCodec{} }

// Compress Snappy-compresses data. The caller is responsible for splitting
// input into ≤65536-byte windows before calling this (the framing codec
// does this); Compress itself has no window limit.
func (c SnappyCodec) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

// Decompress Snappy-decompresses data.
func (c SnappyCodec) Decompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
