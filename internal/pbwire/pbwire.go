// Package pbwire provides a minimal, allocation-conscious protobuf wire
// decoder built on top of google.golang.org/protobuf/encoding/protowire.
//
// Apple's IWA archives embed protobuf messages without shipping the .proto
// descriptors, so the messages package cannot use generated code. Instead
// each message type in messages/ walks its own payload field-by-field using
// the Fields iterator below, matching field numbers against the layout
// documented in cell_storage.py and formula.py.
package pbwire

import "google.golang.org/protobuf/encoding/protowire"

// Field is one decoded (tag, value) pair from a protobuf message payload.
// Varint holds the value of a varint, fixed32 or fixed64 field and Raw the
// payload of a length-delimited field, interpreted lazily by callers via
// the Bool/Int64/SInt64/Float64/Float32/String helpers.
type Field struct {
	Number protowire.Number
	Type   protowire.Type
	Varint uint64
	Raw    []byte // length-delimited payload
}

// Fields decodes data into an ordered slice of Field, stopping at the first
// malformed tag. A message with a truncated final field returns the fields
// decoded so far and ok=false. Fields of any other wire type (groups) are
// consumed and left out of the result.
func Fields(data []byte) (fields []Field, ok bool) {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fields, false
		}
		data = data[n:]

		f := Field{Number: num, Type: typ}

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fields, false
			}
			f.Varint = v
			data = data[n:]
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return fields, false
			}
			f.Varint = uint64(v)
			data = data[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return fields, false
			}
			f.Varint = v
			data = data[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fields, false
			}
			f.Raw = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fields, false
			}
			data = data[n:]
			continue
		}

		fields = append(fields, f)
	}

	return fields, true
}

// Bool interprets Varint as a protobuf bool.
func (f Field) Bool() bool { return f.Varint != 0 }

// Int64 interprets Varint as a zigzag-free signed int64 (protobuf int64/int32).
func (f Field) Int64() int64 { return int64(f.Varint) }

// SInt64 interprets Varint as a zigzag-encoded sint64/sint32.
func (f Field) SInt64() int64 { return protowire.DecodeZigZag(f.Varint) }

// Float64 interprets Varint as an IEEE 754 double when the field is fixed64,
// and returns 0 for any other wire type.
func (f Field) Float64() float64 {
	if f.Type == protowire.Fixed64Type {
		return protowire.DecodeFixed64(f.Varint)
	}

	return 0
}

// Float32 interprets Varint (fixed32) as an IEEE 754 float.
func (f Field) Float32() float32 {
	if f.Type == protowire.Fixed32Type {
		return protowire.DecodeFixed32(uint32(f.Varint))
	}

	return 0
}

// String interprets Raw as a UTF-8 string.
func (f Field) String() string { return string(f.Raw) }

// AppendTag appends a field tag in the given wire type.
func AppendTag(dst []byte, num protowire.Number, typ protowire.Type) []byte {
	return protowire.AppendTag(dst, num, typ)
}

// AppendVarint appends a field tag and its varint value.
func AppendVarint(dst []byte, num protowire.Number, v uint64) []byte {
	dst = protowire.AppendTag(dst, num, protowire.VarintType)
	return protowire.AppendVarint(dst, v)
}

// AppendInt64 appends a field tag and a plain (non-zigzag) int64 value.
func AppendInt64(dst []byte, num protowire.Number, v int64) []byte {
	return AppendVarint(dst, num, uint64(v))
}

// AppendBool appends a field tag and a bool value.
func AppendBool(dst []byte, num protowire.Number, v bool) []byte {
	u := uint64(0)
	if v {
		u = 1
	}

	return AppendVarint(dst, num, u)
}

// AppendFixed64 appends a field tag and a raw fixed64 (e.g. an IEEE double).
func AppendFixed64(dst []byte, num protowire.Number, v uint64) []byte {
	dst = protowire.AppendTag(dst, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(dst, v)
}

// AppendFloat64 appends a field tag and a double value.
func AppendFloat64(dst []byte, num protowire.Number, v float64) []byte {
	return AppendFixed64(dst, num, protowire.EncodeFixed64(v))
}

// AppendBytes appends a field tag and a length-delimited payload.
func AppendBytes(dst []byte, num protowire.Number, v []byte) []byte {
	dst = protowire.AppendTag(dst, num, protowire.BytesType)
	return protowire.AppendBytes(dst, v)
}

// AppendString appends a field tag and a UTF-8 string.
func AppendString(dst []byte, num protowire.Number, v string) []byte {
	return AppendBytes(dst, num, []byte(v))
}
