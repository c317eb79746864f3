// Package cache implements the decode cache enrichment described in
// SPEC_FULL.md's Domain Stack section: an optional, opt-in store that
// retains expensive-to-recompute derived byte payloads, keyed by the
// xxhash digest of the source bytes. Entries live in memory for the
// lifetime of the Store value; nothing is written to disk or shared
// between processes.
//
// Grounded on numbers_cache.py's Cacheable/cache decorator: the Python
// source memoizes per-instance; this package generalizes that idea to a
// standalone store that outlives a single document object, so a
// long-running service can reuse decode work for documents it has already
// opened, with a swappable compression codec per store instance.
package cache

import (
	"sync"

	"github.com/iwahq/numbers/compress"
	"github.com/iwahq/numbers/internal/hash"
)

// Store is an in-memory compressed blob cache with no size limit or
// eviction: an entry stays until it is replaced or invalidated. Entries are
// compressed with codec before being retained, trading CPU for footprint
// according to which compress.Codec the caller selects (NoOp, S2, LZ4, or
// Zstd — see SPEC_FULL.md's Domain Stack table).
type Store struct {
	mu      sync.RWMutex
	codec   compress.Codec
	entries map[uint64][]byte
}

// NewStore creates a decode cache that compresses retained entries with
// codec. Passing compress.NewNoOpCodec() disables compression entirely.
func NewStore(codec compress.Codec) *Store {
	return &Store{
		codec:   codec,
		entries: make(map[uint64][]byte),
	}
}

// Key derives a cache key from the raw bytes of a decoded artifact (e.g. an
// archive segment's payload or a whole .iwa file's contents).
func Key(data []byte) uint64 {
	return hash.Bytes(data)
}

// Put compresses and stores value under key, replacing any existing entry.
func (s *Store) Put(key uint64, value []byte) error {
	compressed, err := s.codec.Compress(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[key] = compressed
	s.mu.Unlock()

	return nil
}

// Get decompresses and returns the entry stored under key, if present.
func (s *Store) Get(key uint64) ([]byte, bool, error) {
	s.mu.RLock()
	compressed, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	plain, err := s.codec.Decompress(compressed)
	if err != nil {
		return nil, false, err
	}

	return plain, true, nil
}

// Invalidate removes key from the cache.
func (s *Store) Invalidate(key uint64) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of entries currently retained.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
