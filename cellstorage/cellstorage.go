// Package cellstorage decodes and encodes the packed per-cell binary
// record described in spec.md §4.7/§6: a 12-byte prelude followed by a
// bitmap-ordered run of optional fields.
//
// Grounded on cell_storage.py's CellStorage.__init__ and its
// CELL_STORAGE_MAP_V5 table.
package cellstorage

import (
	"fmt"

	"github.com/iwahq/numbers/format"
	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/internal/wire"
)

// field describes one optional slot in bitmap order, per CELL_STORAGE_MAP_V5.
type field struct {
	mask uint32
	name string
	size int
}

// fieldTable is CELL_STORAGE_MAP_V5, in its fixed iteration order.
var fieldTable = []field{
	{0x1, "decimal128", 16},
	{0x2, "double", 8},
	{0x4, "seconds", 8},
	{0x8, "stringID", 4},
	{0x10, "richID", 4},
	{0x20, "cellStyleID", 4},
	{0x40, "textStyleID", 4},
	{0x80, "condStyleID", 4},
	{0x100, "condRuleStyleID", 4},
	{0x200, "formulaID", 4},
	{0x400, "controlID", 4},
	{0x800, "formulaErrorID", 4},
	{0x1000, "suggestID", 4},
	{0x2000, "numFormatID", 4},
	{0x4000, "currencyFormatID", 4},
	{0x8000, "dateFormatID", 4},
	{0x10000, "durationFormatID", 4},
	{0x20000, "textFormatID", 4},
	{0x40000, "boolFormatID", 4},
	{0x80000, "commentID", 4},
	{0x100000, "importWarningID", 4},
}

const preludeSize = 12

// Record is the fully decoded contents of one cell-storage buffer: the raw
// optional fields plus the semantic value dispatched from CellType.
type Record struct {
	Version  uint8
	RawType  format.RawCellType
	Flags    uint32
	Decimal128 float64
	HasDecimal128 bool
	Double   float64
	HasDouble bool
	Seconds  float64
	HasSeconds bool

	StringID, RichID                                   int32
	CellStyleID, TextStyleID                           int32
	CondStyleID, CondRuleStyleID                       int32
	FormulaID, ControlID, FormulaErrorID, SuggestID    int32
	NumFormatID, CurrencyFormatID, DateFormatID        int32
	DurationFormatID, TextFormatID, BoolFormatID       int32
	CommentID, ImportWarningID                         int32
	has                                                map[string]bool

	Type  format.CellType
	Text  string
}

// Has reports whether the optional field identified by its CELL_STORAGE_MAP_V5
// attribute name was present in the decoded record (testable property #4).
func (r *Record) Has(name string) bool { return r.has[name] }

// Decode parses a v5 cell-storage buffer. StringLookup resolves a string-table
// key to its text for TEXT cells (supplied by the table package, which owns
// the per-table string table).
func Decode(buf []byte, stringLookup func(int32) string) (*Record, error) {
	if len(buf) < preludeSize {
		return nil, errs.ErrInvalidHeaderSize
	}

	version := buf[0]
	if version != 5 {
		return nil, fmt.Errorf("cellstorage: version %d: %w", version, errs.ErrUnsupportedCellVersion)
	}

	r := &Record{
		Version: version,
		RawType: format.RawCellType(buf[1]),
		has:     make(map[string]bool, len(fieldTable)),
	}

	r.Flags = wire.Engine.Uint32(buf[8:12])

	offset := preludeSize

	for _, f := range fieldTable {
		if r.Flags&f.mask == 0 {
			continue
		}

		if offset+f.size > len(buf) {
			return nil, fmt.Errorf("cellstorage: field %s: %w", f.name, errs.ErrTruncatedArchive)
		}

		r.has[f.name] = true

		slice := buf[offset : offset+f.size]

		switch f.size {
		case 16:
			r.Decimal128 = wire.Decimal128(slice)
			r.HasDecimal128 = true
		case 8:
			v := wire.Engine.Uint64(slice)
			asFloat := float64FromBits(v)
			switch f.name {
			case "double":
				r.Double = asFloat
				r.HasDouble = true
			case "seconds":
				r.Seconds = asFloat
				r.HasSeconds = true
			}
		default:
			v := int32(wire.Engine.Uint32(slice))
			assignID(r, f.name, v)
		}

		offset += f.size
	}

	r.Type = dispatchType(r)

	if r.Type == format.CellText && stringLookup != nil {
		r.Text = stringLookup(r.StringID)
	}

	return r, nil
}

func assignID(r *Record, name string, v int32) {
	switch name {
	case "stringID":
		r.StringID = v
	case "richID":
		r.RichID = v
	case "cellStyleID":
		r.CellStyleID = v
	case "textStyleID":
		r.TextStyleID = v
	case "condStyleID":
		r.CondStyleID = v
	case "condRuleStyleID":
		r.CondRuleStyleID = v
	case "formulaID":
		r.FormulaID = v
	case "controlID":
		r.ControlID = v
	case "formulaErrorID":
		r.FormulaErrorID = v
	case "suggestID":
		r.SuggestID = v
	case "numFormatID":
		r.NumFormatID = v
	case "currencyFormatID":
		r.CurrencyFormatID = v
	case "dateFormatID":
		r.DateFormatID = v
	case "durationFormatID":
		r.DurationFormatID = v
	case "textFormatID":
		r.TextFormatID = v
	case "boolFormatID":
		r.BoolFormatID = v
	case "commentID":
		r.CommentID = v
	case "importWarningID":
		r.ImportWarningID = v
	}
}

func dispatchType(r *Record) format.CellType {
	switch r.RawType {
	case format.RawGeneric:
		return format.CellEmpty
	case format.RawNumber, format.RawNumberAltType:
		return format.CellNumber
	case format.RawText:
		return format.CellText
	case format.RawDate:
		return format.CellDate
	case format.RawBool:
		return format.CellBool
	case format.RawDuration:
		return format.CellDuration
	case format.RawError:
		return format.CellError
	case format.RawRichText:
		return format.CellRichText
	default:
		return format.CellEmpty
	}
}

func float64FromBits(bits uint64) float64 {
	return wire.Float64frombits(bits)
}

// Encode serializes a cell record back into a v5 buffer. stringID is the
// caller-resolved (possibly newly allocated) string-table key for TEXT
// cells; it is ignored for other cell kinds.
func Encode(cellType format.CellType, value any, stringID int32) ([]byte, error) {
	buf := make([]byte, preludeSize)
	buf[0] = 5

	var flags uint32
	var tail []byte

	switch cellType {
	case format.CellEmpty:
		buf[1] = byte(format.RawGeneric)
	case format.CellNumber:
		buf[1] = byte(format.RawNumber)
		flags |= 0x1
		d128 := make([]byte, 16)
		v, _ := value.(float64)
		wire.PutDecimal128(d128, v)
		tail = append(tail, d128...)
	case format.CellText:
		buf[1] = byte(format.RawText)
		flags |= 0x8
		idBuf := make([]byte, 4)
		wire.Engine.PutUint32(idBuf, uint32(stringID))
		tail = append(tail, idBuf...)
	case format.CellDate:
		buf[1] = byte(format.RawDate)
		flags |= 0x4
		secBuf := make([]byte, 8)
		seconds, _ := value.(float64)
		wire.Engine.PutUint64(secBuf, wire.Float64bits(seconds))
		tail = append(tail, secBuf...)
	case format.CellBool:
		buf[1] = byte(format.RawBool)
		flags |= 0x2
		dBuf := make([]byte, 8)
		b, _ := value.(bool)
		v := 0.0
		if b {
			v = 1.0
		}
		wire.Engine.PutUint64(dBuf, wire.Float64bits(v))
		tail = append(tail, dBuf...)
	case format.CellDuration:
		buf[1] = byte(format.RawDuration)
		flags |= 0x2
		dBuf := make([]byte, 8)
		v, _ := value.(float64)
		wire.Engine.PutUint64(dBuf, wire.Float64bits(v))
		tail = append(tail, dBuf...)
	default:
		return nil, fmt.Errorf("cellstorage: unsupported cell type %v for encode", cellType)
	}

	wire.Engine.PutUint32(buf[8:12], flags)

	return append(buf, tail...), nil
}
