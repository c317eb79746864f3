package compress

// NoOpCodec bypasses compression entirely. Used by the decode cache when a
// caller prioritizes cache hit latency over memory footprint.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a no-op codec.
func NewNoOpCodec() NoOpCodec { return NoOpCodec{} }

func (c NoOpCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
