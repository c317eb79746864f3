// Package hash provides the content-hash function used to key the
// decode cache (see the cache package).
package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of data; cache.Key uses it as the
// decode-cache key.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String computes the xxHash64 of a string.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}
