// Package objectstore implements the document-wide object_id -> message map
// described in spec.md §4.5: which IWA file each object came from, which
// objects have been mutated since load, and the logic to flush mutations
// back into their originating archive segment.
package objectstore

import (
	"fmt"

	"github.com/iwahq/numbers/archive"
	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/iwa"
	"github.com/iwahq/numbers/registry"
)

// entry tracks a decoded object alongside the segment/slot it was decoded
// from, so FlushDirty can copy a mutated message back in place.
type entry struct {
	path    string
	segment *archive.Segment
	slot    int
	message registry.Message
}

// Store is the document-wide object graph: every decoded object, indexed
// by its ArchiveInfo identifier, plus dirty tracking for the write path.
type Store struct {
	reg     *registry.Registry
	objects map[uint64]*entry
	files   map[string]*iwa.File
	dirty   map[uint64]bool
	maxID   uint64
}

// New creates an empty object store bound to reg for decode/encode.
func New(reg *registry.Registry) *Store {
	return &Store{
		reg:     reg,
		objects: make(map[uint64]*entry),
		files:   make(map[string]*iwa.File),
		dirty:   make(map[uint64]bool),
	}
}

// AddFile registers every segment's primary object of an already-decoded
// .iwa file under path, making them reachable via Get/FindByType.
func (s *Store) AddFile(path string, f *iwa.File) {
	s.files[path] = f

	for _, seg := range f.Segments {
		id := seg.Header.Identifier
		if id > s.maxID {
			s.maxID = id
		}

		for i, slot := range seg.Slots {
			if slot.IsPatch() {
				continue
			}

			s.objects[id] = &entry{
				path:    path,
				segment: seg,
				slot:    i,
				message: slot.Message,
			}

			break // only the segment's primary object is addressable (spec.md §3)
		}
	}
}

// Get returns the decoded message for id, or ErrNoSuchObject.
func (s *Store) Get(id uint64) (registry.Message, error) {
	e, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("objectstore: object %d: %w", id, errs.ErrNoSuchObject)
	}

	return e.message, nil
}

// FileOf returns the .iwa path an object was decoded from.
func (s *Store) FileOf(id uint64) (string, bool) {
	e, ok := s.objects[id]
	if !ok {
		return "", false
	}

	return e.path, true
}

// FindByType returns the IDs of every object whose message has the given
// fully-qualified protobuf type name. The order of the IDs is not defined.
func (s *Store) FindByType(typeName string) []uint64 {
	var ids []uint64

	for id, e := range s.objects {
		if e.message.TypeName() == typeName {
			ids = append(ids, id)
		}
	}

	return ids
}

// MarkDirty flags id as mutated since load.
func (s *Store) MarkDirty(id uint64) {
	s.dirty[id] = true
}

// NewID returns max(existing_ids) + 1, monotonic for the lifetime of the
// store.
func (s *Store) NewID() uint64 {
	s.maxID++
	return s.maxID
}

// FlushDirty copies every dirty object's current message back into its
// originating segment slot and recomputes that MessageInfo's
// object_references by scanning the message for embedded Reference values.
//
// After FlushDirty returns, every segment in s.files is a byte-exact
// representation of what Encode will write (spec.md §4.5's invariant).
func (s *Store) FlushDirty() error {
	for id := range s.dirty {
		e, ok := s.objects[id]
		if !ok {
			continue
		}

		e.segment.Slots[e.slot].Message = e.message
		e.segment.Header.MessageInfos[e.slot].ObjectReferences = collectReferences(e.message)
	}

	s.dirty = make(map[uint64]bool)

	return nil
}

// Files returns the set of registered .iwa paths, for the package writer to
// iterate when re-encoding.
func (s *Store) Files() map[string]*iwa.File {
	return s.files
}

// ReferenceSource is implemented by messages that can enumerate the object
// IDs they refer to, so FlushDirty can rebuild object_references without
// reflecting over every possible field type.
type ReferenceSource interface {
	References() []uint64
}

func collectReferences(msg registry.Message) []uint64 {
	if rs, ok := msg.(ReferenceSource); ok {
		return rs.References()
	}

	return nil
}
