// Package archive implements the varint-framed archive segment codec that
// sits directly on top of the IWA chunk stream: an ArchiveInfo header
// followed by one payload per MessageInfo entry.
//
// Grounded on iwafile.py's IWAArchiveSegment/ProtobufPatch and on the
// ArchiveInfo/MessageInfo wire layout documented in spec.md §6.
package archive

import (
	"fmt"

	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/internal/pbwire"
	"github.com/iwahq/numbers/internal/wire"
	"github.com/iwahq/numbers/registry"
)

// MessageInfo describes one payload slice within a segment.
type MessageInfo struct {
	Type              uint32
	Version           []uint32
	Length            uint32
	ObjectReferences  []uint64
	DiffFieldPath     []uint32
	HasDiffFieldPath  bool
	BaseMessageIndex  uint32
	HasBaseMessageIdx bool
}

// ArchiveInfo is the segment header: a document-unique identifier plus the
// ordered list of message slices that follow it in the segment.
type ArchiveInfo struct {
	Identifier   uint64
	MessageInfos []MessageInfo
	ShouldMerge  bool
}

// Protobuf field numbers for ArchiveInfo and MessageInfo, per
// TSPArchiveMessages.proto as reconstructed from iwafile.py usage.
const (
	fieldArchiveIdentifier   = 1
	fieldArchiveMessageInfos = 2
	fieldArchiveShouldMerge  = 3

	fieldMsgInfoType             = 1
	fieldMsgInfoVersion          = 2
	fieldMsgInfoLength           = 3
	fieldMsgInfoObjectReferences = 4
	fieldMsgInfoDiffFieldPath    = 5
	fieldMsgInfoBaseMessageIdx   = 6
)

// Unmarshal decodes an ArchiveInfo protobuf payload.
func (a *ArchiveInfo) Unmarshal(data []byte) error {
	fields, ok := pbwire.Fields(data)
	if !ok {
		return errs.ErrMalformedArchive
	}

	*a = ArchiveInfo{}

	for _, f := range fields {
		switch f.Number {
		case fieldArchiveIdentifier:
			a.Identifier = f.Varint
		case fieldArchiveShouldMerge:
			a.ShouldMerge = f.Bool()
		case fieldArchiveMessageInfos:
			var mi MessageInfo
			if err := mi.unmarshal(f.Raw); err != nil {
				return err
			}
			a.MessageInfos = append(a.MessageInfos, mi)
		}
	}

	return nil
}

func (mi *MessageInfo) unmarshal(data []byte) error {
	fields, ok := pbwire.Fields(data)
	if !ok {
		return errs.ErrMalformedArchive
	}

	*mi = MessageInfo{}

	for _, f := range fields {
		switch f.Number {
		case fieldMsgInfoType:
			mi.Type = uint32(f.Varint)
		case fieldMsgInfoVersion:
			mi.Version = append(mi.Version, uint32(f.Varint))
		case fieldMsgInfoLength:
			mi.Length = uint32(f.Varint)
		case fieldMsgInfoObjectReferences:
			mi.ObjectReferences = append(mi.ObjectReferences, f.Varint)
		case fieldMsgInfoDiffFieldPath:
			mi.DiffFieldPath = append(mi.DiffFieldPath, uint32(f.Varint))
			mi.HasDiffFieldPath = true
		case fieldMsgInfoBaseMessageIdx:
			mi.BaseMessageIndex = uint32(f.Varint)
			mi.HasBaseMessageIdx = true
		}
	}

	return nil
}

// Marshal re-serializes the ArchiveInfo header.
func (a *ArchiveInfo) Marshal() []byte {
	var buf []byte

	buf = pbwire.AppendVarint(buf, fieldArchiveIdentifier, a.Identifier)

	for _, mi := range a.MessageInfos {
		buf = pbwire.AppendBytes(buf, fieldArchiveMessageInfos, mi.marshal())
	}

	if a.ShouldMerge {
		buf = pbwire.AppendBool(buf, fieldArchiveShouldMerge, true)
	}

	return buf
}

func (mi MessageInfo) marshal() []byte {
	var buf []byte

	buf = pbwire.AppendVarint(buf, fieldMsgInfoType, uint64(mi.Type))

	for _, v := range mi.Version {
		buf = pbwire.AppendVarint(buf, fieldMsgInfoVersion, uint64(v))
	}

	buf = pbwire.AppendVarint(buf, fieldMsgInfoLength, uint64(mi.Length))

	for _, ref := range mi.ObjectReferences {
		buf = pbwire.AppendVarint(buf, fieldMsgInfoObjectReferences, ref)
	}

	if mi.HasDiffFieldPath {
		for _, p := range mi.DiffFieldPath {
			buf = pbwire.AppendVarint(buf, fieldMsgInfoDiffFieldPath, uint64(p))
		}
	}

	if mi.HasBaseMessageIdx {
		buf = pbwire.AppendVarint(buf, fieldMsgInfoBaseMessageIdx, uint64(mi.BaseMessageIndex))
	}

	return buf
}

// Patch is a read-only diff-patched message payload: type == 0 with
// should_merge set on the containing ArchiveInfo. The library preserves its
// raw bytes and never attempts to decode or mutate it (spec.md §9's
// Parsed | PatchedBytes variant).
type Patch struct {
	Raw              []byte
	BaseMessageIndex uint32
}

// Slot holds one payload of a segment: either a decoded Message or an
// opaque Patch.
type Slot struct {
	Message registry.Message
	Patch   *Patch
}

// IsPatch reports whether this slot is an opaque diff patch.
func (s Slot) IsPatch() bool { return s.Patch != nil }

// Segment is a decoded archive segment: its header plus one Slot per
// MessageInfo entry.
type Segment struct {
	Header ArchiveInfo
	Slots  []Slot
}

// Decode parses a single archive segment from the front of buf and returns
// the segment plus the remaining, unconsumed bytes.
func Decode(reg *registry.Registry, buf []byte) (*Segment, []byte, error) {
	headerLen, n := wire.Uvarint(buf)
	if n <= 0 {
		return nil, nil, errs.ErrMalformedArchive
	}
	buf = buf[n:]

	if uint64(len(buf)) < headerLen {
		return nil, nil, errs.ErrTruncatedArchive
	}

	headerBytes := buf[:headerLen]
	buf = buf[headerLen:]

	var header ArchiveInfo
	if err := header.Unmarshal(headerBytes); err != nil {
		return nil, nil, fmt.Errorf("archive: %w", err)
	}

	seg := &Segment{Header: header}

	for i, mi := range header.MessageInfos {
		if uint64(len(buf)) < uint64(mi.Length) {
			return nil, nil, errs.ErrTruncatedArchive
		}

		payload := buf[:mi.Length]
		buf = buf[mi.Length:]

		if mi.Type == 0 && header.ShouldMerge {
			seg.Slots = append(seg.Slots, Slot{Patch: &Patch{
				Raw:              payload,
				BaseMessageIndex: mi.BaseMessageIndex,
			}})
			continue
		}

		msg, err := reg.Decode(mi.Type, payload)
		if err != nil {
			return nil, nil, fmt.Errorf("archive: message %d: %w", i, err)
		}

		seg.Slots = append(seg.Slots, Slot{Message: msg})
	}

	return seg, buf, nil
}

// Encode re-serializes the segment, re-deriving each MessageInfo.Length
// from the message's current Marshal output. Patched slots are re-emitted
// byte-identical.
func (s *Segment) Encode(reg *registry.Registry) ([]byte, error) {
	header := s.Header
	header.MessageInfos = append([]MessageInfo(nil), s.Header.MessageInfos...)

	payloads := make([][]byte, len(s.Slots))

	for i, slot := range s.Slots {
		if slot.IsPatch() {
			payloads[i] = slot.Patch.Raw
			header.MessageInfos[i].Length = uint32(len(slot.Patch.Raw))
			continue
		}

		typeID, payload, err := reg.Encode(slot.Message)
		if err != nil {
			return nil, fmt.Errorf("archive: message %d: %w", i, err)
		}

		payloads[i] = payload
		header.MessageInfos[i].Type = typeID
		header.MessageInfos[i].Length = uint32(len(payload))
	}

	headerBytes := header.Marshal()

	out := wire.PutUvarint(nil, uint64(len(headerBytes)))
	out = append(out, headerBytes...)
	for _, p := range payloads {
		out = append(out, p...)
	}

	return out, nil
}
