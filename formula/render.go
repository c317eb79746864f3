package formula

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwahq/numbers/internal/errs"
)

// FunctionName resolves a function registry index back to its display
// name, the inverse of FunctionIndex.
type FunctionName func(index int) (string, bool)

// TableResolver resolves a cross-table reference's owner UID to the
// sheet/table names used when a reference escapes its containing table
// (spec.md §4.11).
type TableResolver interface {
	// ResolveTable returns (sheetName, tableName, ambiguous) for uid.
	ResolveTable(uid string) (sheetName, tableName string, ambiguous bool)
}

// Render walks nodes (in postfix/RPN order) and renders the equivalent
// formula text, plus any non-fatal decode-gap diagnostics.
func Render(nodes []Node, ownTableUID string, names FunctionName, tables TableResolver, diag *errs.Sink, coord string) string {
	var stack []string

	pop := func(n int) []string {
		if n > len(stack) {
			n = len(stack)
		}
		args := append([]string(nil), stack[len(stack)-n:]...)
		stack = stack[:len(stack)-n]
		return args
	}

	for _, node := range nodes {
		switch node.Kind {
		case KindNumber:
			stack = append(stack, strconv.FormatFloat(node.Number, 'g', -1, 64))
		case KindString:
			stack = append(stack, `"`+strings.ReplaceAll(node.Text, `"`, `""`)+`"`)
		case KindBoolean:
			if node.Boolean {
				stack = append(stack, "TRUE")
			} else {
				stack = append(stack, "FALSE")
			}
		case KindReferenceError:
			stack = append(stack, node.Text)
		case KindEmptyArgument:
			stack = append(stack, "")
		case KindCellReference:
			stack = append(stack, renderRef(node, ownTableUID, tables))
		case KindColonTract:
			stack = append(stack, renderRange(node, ownTableUID, tables))
		case KindFunction:
			args := pop(node.NumArgs)
			name := "UNDEFINED!"
			if names != nil {
				if n, ok := names(node.FunctionIndex); ok {
					name = n
				} else if diag != nil {
					diag.Warnf(coord, "unknown function index %d", node.FunctionIndex)
				}
			}
			stack = append(stack, fmt.Sprintf("%s(%s)", name, strings.Join(args, ",")))
		case KindNegation:
			args := pop(1)
			stack = append(stack, "-"+args[0])
		case KindPercent:
			args := pop(1)
			stack = append(stack, args[0]+"%")
		default:
			if arity := binaryArity(node.Kind); arity == 2 {
				args := pop(2)
				stack = append(stack, args[0]+symbolOf(node.Kind)+args[1])
			} else if node.Kind == KindUnknown {
				if diag != nil {
					diag.Warnf(coord, "unsupported AST node kind")
				}
				args := pop(1)
				if len(args) == 1 {
					stack = append(stack, args[0])
				}
			}
		}
	}

	if len(stack) == 0 {
		return ""
	}

	return stack[len(stack)-1]
}

func renderRef(n Node, ownTableUID string, tables TableResolver) string {
	a1 := FormatA1(n.Col, n.Row, n.ColAbsolute, n.RowAbsolute)
	return qualify(a1, n.TableUID, ownTableUID, tables)
}

func renderRange(n Node, ownTableUID string, tables TableResolver) string {
	var start, end string
	switch {
	case n.Col == unboundAxis && n.ColEnd == unboundAxis:
		start, end = formatRowOnly(n.Row, n.RowAbsolute), formatRowOnly(n.RowEnd, n.RowEndAbsolute)
	case n.Row == unboundAxis && n.RowEnd == unboundAxis:
		start, end = formatColOnly(n.Col, n.ColAbsolute), formatColOnly(n.ColEnd, n.ColEndAbsolute)
	default:
		start = FormatA1(n.Col, n.Row, n.ColAbsolute, n.RowAbsolute)
		end = FormatA1(n.ColEnd, n.RowEnd, n.ColEndAbsolute, n.RowEndAbsolute)
	}
	return qualify(start+":"+end, n.TableUID, ownTableUID, tables)
}

// formatRowOnly renders one endpoint of a row-only range ("1" of "1:2").
func formatRowOnly(row int, abs bool) string {
	if abs {
		return "$" + strconv.Itoa(row+1)
	}
	return strconv.Itoa(row + 1)
}

// formatColOnly renders one endpoint of a column-only range ("A" of "A:C").
func formatColOnly(col int, abs bool) string {
	if abs {
		return "$" + IndexToCol(col)
	}
	return IndexToCol(col)
}

func qualify(ref, tableUID, ownTableUID string, tables TableResolver) string {
	if tableUID == "" || tableUID == ownTableUID || tables == nil {
		return ref
	}

	sheet, table, ambiguous := tables.ResolveTable(tableUID)
	if table == "" {
		return ref
	}

	if ambiguous {
		return sheet + "::" + table + "::" + ref
	}

	return table + "::" + ref
}
