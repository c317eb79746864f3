// Package compress provides the Codec abstraction used by IWA chunk framing
// and by the optional decode cache.
//
// The wire format (spec.md §4.1) uses exactly one algorithm, Snappy, chosen
// by SnappyCodec. The decode cache (package cache) additionally supports
// S2, Zstd, and LZ4 as storage codecs, trading compression ratio for CPU the
// way a cold-storage cache would: Zstd for the smallest footprint, S2/LZ4
// for the cheapest round trip.
package compress
