package compress

// ZstdCodec is the decode cache's highest-ratio tier, used when memory
// footprint matters more than CPU (e.g. caching many rarely-reopened
// documents). The Compress/Decompress methods are implemented in
// zstd_cgo.go (cgo builds, via valyala/gozstd) and zstd_pure.go (pure-Go
// builds, via klauspost/compress/zstd), matching the teacher's split.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstd codec.
func NewZstdCodec() ZstdCodec { return ZstdCodec{} }
