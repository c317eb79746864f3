package compress

import "github.com/klauspost/compress/s2"

// S2Codec is used by the decode cache (package cache) for its balanced
// speed/ratio tier; it is never used on the IWA wire format, which is
// Snappy-exact (see SnappyCodec).
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates an S2 codec.
func NewS2Codec() S2Codec { return S2Codec{} }

func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
