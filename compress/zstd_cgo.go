//go:build cgo

package compress

import "github.com/valyala/gozstd"

// Compress Zstd-compresses data using gozstd's cgo binding at level 3, the
// same tradeoff point the teacher's cgo path uses.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress Zstd-decompresses data.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
