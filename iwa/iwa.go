// Package iwa assembles the frame and archive codecs into whole .iwa files:
// an ordered list of chunks, each an ordered list of archive segments.
//
// Grounded on iwafile.py's IWAFile/IWACompressedChunk.from_buffer/to_buffer.
package iwa

import (
	"github.com/iwahq/numbers/archive"
	"github.com/iwahq/numbers/frame"
	"github.com/iwahq/numbers/registry"
)

// File is a decoded .iwa file: every chunk's segments flattened into one
// ordered list, since nothing above this layer cares about chunk
// boundaries (spec.md §4.4: multi-chunk inputs are merged into one chunk
// on re-encode).
type File struct {
	Segments []*archive.Segment
}

// Decode parses raw as a complete .iwa file.
func Decode(reg *registry.Registry, raw []byte) (*File, error) {
	uncompressed, err := frame.Decompress(raw)
	if err != nil {
		return nil, err
	}

	f := &File{}

	for len(uncompressed) > 0 {
		seg, rest, err := archive.Decode(reg, uncompressed)
		if err != nil {
			return nil, err
		}

		f.Segments = append(f.Segments, seg)
		uncompressed = rest
	}

	return f, nil
}

// Encode re-serializes every segment and re-frames the result as a single
// logical chunk stream (frame.Compress splits it back into ≤65536-byte
// Snappy windows as needed).
func (f *File) Encode(reg *registry.Registry) ([]byte, error) {
	var uncompressed []byte

	for _, seg := range f.Segments {
		b, err := seg.Encode(reg)
		if err != nil {
			return nil, err
		}

		uncompressed = append(uncompressed, b...)
	}

	return frame.Compress(uncompressed)
}

// PrimaryObject returns the first non-patch message of the first segment
// that has one, with that segment's identifier: the "the object" of the archive per spec.md §3's invariant that each
// segment is treated as holding exactly one addressable object.
func (f *File) PrimaryObject() (id uint64, msg registry.Message, ok bool) {
	for _, seg := range f.Segments {
		for _, slot := range seg.Slots {
			if !slot.IsPatch() {
				return seg.Header.Identifier, slot.Message, true
			}
		}
	}

	return 0, nil, false
}
