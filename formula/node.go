// Package formula converts between a textual spreadsheet formula and the
// flat reverse-polish AST_node array a CalculationEngine archive stores.
//
// Grounded on formula.py (node construction, OPERATOR_PRECEDENCE,
// OPERATOR_INFIX_MAP) and tokenizer.py (the scanner), adapted from
// openpyxl's Excel formula tokenizer as formula.py itself documents.
package formula

import "github.com/iwahq/numbers/format"

// Node is one entry of the flat, postfix-ordered AST node array.
type Node struct {
	Kind NodeKind

	// Operand payloads.
	Number  float64
	Text    string
	Boolean bool

	// Function-call payload.
	FunctionIndex int
	NumArgs       int

	// Cell-reference / colon-tract payload.
	Row, Col             int
	RowAbsolute, ColAbsolute bool
	RowEnd, ColEnd                 int
	RowEndAbsolute, ColEndAbsolute bool
	IsRange                        bool
	TableUID                       string // resolved owner-UID of a cross-table reference, if any

	// Array literal payload.
	ArrayRows, ArrayCols int
}

// NodeKind is an alias of format.NodeKind kept local for readability within
// this package.
type NodeKind = format.NodeKind

const (
	KindUnknown            = format.NodeUnknown
	KindNumber             = format.NodeNumber
	KindString             = format.NodeString
	KindBoolean            = format.NodeBoolean
	KindDate               = format.NodeDate
	KindCellReference       = format.NodeCellReference
	KindColonTract          = format.NodeColonTract
	KindFunction            = format.NodeFunction
	KindAddition            = format.NodeAddition
	KindSubtraction         = format.NodeSubtraction
	KindMultiplication      = format.NodeMultiplication
	KindDivision            = format.NodeDivision
	KindConcatenation       = format.NodeConcatenation
	KindPower               = format.NodePower
	KindNegation            = format.NodeNegation
	KindPercent             = format.NodePercent
	KindEqualTo             = format.NodeEqualTo
	KindNotEqualTo          = format.NodeNotEqualTo
	KindLessThan            = format.NodeLessThan
	KindLessThanOrEqual     = format.NodeLessThanOrEqual
	KindGreaterThan         = format.NodeGreaterThan
	KindGreaterThanOrEqual  = format.NodeGreaterThanOrEqual
	KindArray               = format.NodeArray
	KindList                = format.NodeList
	KindEmptyArgument       = format.NodeEmptyArgument
	KindReferenceError      = format.NodeReferenceError
)

// binaryArity reports how many stack operands a node kind pops, for the
// postfix-stack walk in render.go.
func binaryArity(k NodeKind) int {
	switch k {
	case KindAddition, KindSubtraction, KindMultiplication, KindDivision,
		KindConcatenation, KindPower, KindEqualTo, KindNotEqualTo,
		KindLessThan, KindLessThanOrEqual, KindGreaterThan, KindGreaterThanOrEqual:
		return 2
	case KindNegation, KindPercent:
		return 1
	default:
		return 0
	}
}

// symbolOf returns the rendered operator symbol for a binary/unary node
// kind, per spec.md §4.9's "+ − × ÷ ^ & = ≠ ≤ ≥ < >  %" set.
func symbolOf(k NodeKind) string {
	switch k {
	case KindAddition:
		return "+"
	case KindSubtraction:
		return "−"
	case KindMultiplication:
		return "×"
	case KindDivision:
		return "÷"
	case KindPower:
		return "^"
	case KindConcatenation:
		return "&"
	case KindEqualTo:
		return "="
	case KindNotEqualTo:
		return "≠"
	case KindLessThan:
		return "<"
	case KindLessThanOrEqual:
		return "≤"
	case KindGreaterThan:
		return ">"
	case KindGreaterThanOrEqual:
		return "≥"
	case KindPercent:
		return "%"
	default:
		return "?"
	}
}
