// Package format declares the small enumerated types shared across the
// codec, cell-storage, custom-format, and formula packages: cell kinds,
// format-record kinds, compression kinds, and AST node/token kinds.
//
// Keeping these in one leaf package (rather than scattering them across
// cellstorage/customformat/formula) avoids import cycles between those
// packages, the same role the teacher's format package plays between blob,
// section, encoding, and compress.
package format

// CompressionType identifies the codec used to compress an IWA chunk
// window or a decode-cache entry.
type CompressionType uint8

const (
	CompressionSnappy CompressionType = iota + 1 // CompressionSnappy is the only codec IWA framing uses on the wire.
	CompressionNone                              // CompressionNone bypasses compression (decode cache only).
	CompressionS2                                // CompressionS2 is used by the decode cache, not the wire format.
	CompressionZstd                              // CompressionZstd is used by the decode cache, not the wire format.
	CompressionLZ4                               // CompressionLZ4 is used by the decode cache, not the wire format.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionSnappy:
		return "Snappy"
	case CompressionNone:
		return "None"
	case CompressionS2:
		return "S2"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// CellType is the semantic type of a decoded cell, dispatched from the
// cell-storage record's cell_type byte (spec.md §4.7).
type CellType uint8

const (
	CellEmpty CellType = iota
	CellNumber
	CellText
	CellDate
	CellBool
	CellDuration
	CellError
	CellRichText
)

func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "Empty"
	case CellNumber:
		return "Number"
	case CellText:
		return "Text"
	case CellDate:
		return "Date"
	case CellBool:
		return "Bool"
	case CellDuration:
		return "Duration"
	case CellError:
		return "Error"
	case CellRichText:
		return "RichText"
	default:
		return "Unknown"
	}
}

// RawCellType is the on-wire byte value of cell_type in a v5 cell-storage
// record (spec.md §4.7 step 6).
type RawCellType uint8

const (
	RawGeneric       RawCellType = 0
	RawNumber        RawCellType = 2
	RawText          RawCellType = 3
	RawDate          RawCellType = 5
	RawBool          RawCellType = 6
	RawDuration      RawCellType = 7
	RawError         RawCellType = 8
	RawRichText      RawCellType = 9
	RawNumberAltType RawCellType = 10
)

// FormatKind is the format-record's format_type field (§4.8), dispatched
// to one of the four renderer paths.
type FormatKind uint32

const (
	FormatBoolean        FormatKind = 1
	FormatDecimal        FormatKind = 256
	FormatCurrency       FormatKind = 257
	FormatPercent        FormatKind = 258
	FormatText           FormatKind = 260
	FormatDate           FormatKind = 261
	FormatFraction       FormatKind = 262
	FormatCheckbox       FormatKind = 263
	FormatRating         FormatKind = 267
	FormatDuration       FormatKind = 268
	FormatBase           FormatKind = 269
	FormatCustomNumber   FormatKind = 270
	FormatCustomText     FormatKind = 271
	FormatCustomDate     FormatKind = 272
	FormatCustomCurrency FormatKind = 274
)

// DurationStyle controls unit-label rendering and the inter-unit separator
// in the duration renderer (§4.8).
type DurationStyle uint8

const (
	DurationStyleNone DurationStyle = iota
	DurationStyleShort
	DurationStyleMedium
)

// CellPadding selects how a custom number format pads its integer/decimal
// template (§4.8).
type CellPadding uint8

const (
	PaddingNone CellPadding = iota
	PaddingZero
	PaddingSpace
)

// NodeKind enumerates the formula AST node's tagged-variant discriminant
// (spec.md §3, §4.9, §9 "tagged sums over class hierarchies").
type NodeKind uint16

const (
	NodeUnknown NodeKind = iota
	NodeNumber
	NodeString
	NodeBoolean
	NodeDate
	NodeCellReference
	NodeColonTract
	NodeFunction
	NodeAddition
	NodeSubtraction
	NodeMultiplication
	NodeDivision
	NodeConcatenation
	NodePower
	NodeNegation
	NodePercent
	NodeEqualTo
	NodeNotEqualTo
	NodeLessThan
	NodeLessThanOrEqual
	NodeGreaterThan
	NodeGreaterThanOrEqual
	NodeArray
	NodeList
	NodeEmptyArgument
	NodeReferenceError
)

func (k NodeKind) String() string {
	switch k {
	case NodeNumber:
		return "NUMBER_NODE"
	case NodeString:
		return "STRING_NODE"
	case NodeBoolean:
		return "BOOLEAN_NODE"
	case NodeDate:
		return "DATE_NODE"
	case NodeCellReference:
		return "CELL_REFERENCE_NODE"
	case NodeColonTract:
		return "COLON_TRACT_NODE"
	case NodeFunction:
		return "FUNCTION_NODE"
	case NodeAddition:
		return "ADDITION_NODE"
	case NodeSubtraction:
		return "SUBTRACTION_NODE"
	case NodeMultiplication:
		return "MULTIPLICATION_NODE"
	case NodeDivision:
		return "DIVISION_NODE"
	case NodeConcatenation:
		return "CONCATENATION_NODE"
	case NodePower:
		return "POWER_NODE"
	case NodeNegation:
		return "NEGATION_NODE"
	case NodePercent:
		return "PERCENT_NODE"
	case NodeEqualTo:
		return "EQUAL_TO_NODE"
	case NodeNotEqualTo:
		return "NOT_EQUAL_TO_NODE"
	case NodeLessThan:
		return "LESS_THAN_NODE"
	case NodeLessThanOrEqual:
		return "LESS_THAN_OR_EQUAL_TO_NODE"
	case NodeGreaterThan:
		return "GREATER_THAN_NODE"
	case NodeGreaterThanOrEqual:
		return "GREATER_THAN_OR_EQUAL_TO_NODE"
	case NodeArray:
		return "ARRAY_NODE"
	case NodeList:
		return "LIST_NODE"
	case NodeEmptyArgument:
		return "EMPTY_ARGUMENT_NODE"
	case NodeReferenceError:
		return "REFERENCE_ERROR_WITH_UIDS_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}
