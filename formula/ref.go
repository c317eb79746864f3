package formula

import (
	"regexp"
	"strconv"
	"strings"
)

// Reference is a parsed cell or range reference, grounded on
// tokenizer.py's parse_numbers_range. Scope1/Scope2 hold an optional
// "Sheet::Table::" qualifier (Scope1 empty when only a table name is
// given).
//
// A row-only range ("1:2") or column-only range ("A:C") leaves its unbound
// axis set to unboundAxis rather than zero, so callers never mistake "no
// column" for "column A". Valid is false for a named range or a named
// row/column (e.g. "Table::MyRange"): this package has no named-range
// table to resolve those against, so ParseReference reports them as
// unrecognized instead of guessing a geometry.
type Reference struct {
	Scope1, Scope2 string

	ColStart, RowStart         int
	ColStartAbs, RowStartAbs   bool
	IsRange                    bool
	ColEnd, RowEnd             int
	ColEndAbs, RowEndAbs       bool
	Valid                      bool
}

// unboundAxis marks the row or column of a row-only/column-only range that
// has no bound on that axis.
const unboundAxis = -1

var (
	reFullRange  = regexp.MustCompile(`^(\$?)([A-Z]+)(\$?)(\d+):(\$?)([A-Z]+)(\$?)(\d+)$`)
	reRowRange   = regexp.MustCompile(`^(\$?)(\d+):(\$?)(\d+)$`)
	reColRange   = regexp.MustCompile(`^(\$?)([A-Z]+):(\$?)([A-Z]+)$`)
	reSingleCell = regexp.MustCompile(`^(\$?)([A-Z]+)(\$?)(\d+)$`)
)

// ParseReference parses a Numbers-format cell/range reference string,
// including an optional "Sheet::Table::" or "Table::" qualifier.
func ParseReference(s string) Reference {
	parts := strings.Split(s, "::")

	var scope1, scope2, ref string
	switch len(parts) {
	case 3:
		scope1, scope2, ref = parts[0], parts[1], parts[2]
	case 2:
		scope1, scope2, ref = "", parts[0], parts[1]
	default:
		scope1, scope2, ref = "", "", parts[0]
	}

	r := Reference{Scope1: scope1, Scope2: scope2}

	if m := reFullRange.FindStringSubmatch(ref); m != nil {
		r.ColStartAbs = m[1] == "$"
		r.ColStart = colToIndex(m[2])
		r.RowStartAbs = m[3] == "$"
		r.RowStart = atoiSafe(m[4]) - 1
		r.ColEndAbs = m[5] == "$"
		r.ColEnd = colToIndex(m[6])
		r.RowEndAbs = m[7] == "$"
		r.RowEnd = atoiSafe(m[8]) - 1
		r.IsRange = true
		r.Valid = true
		return r
	}

	if m := reRowRange.FindStringSubmatch(ref); m != nil {
		r.ColStart, r.ColEnd = unboundAxis, unboundAxis
		r.RowStartAbs = m[1] == "$"
		r.RowStart = atoiSafe(m[2]) - 1
		r.RowEndAbs = m[3] == "$"
		r.RowEnd = atoiSafe(m[4]) - 1
		r.IsRange = true
		r.Valid = true
		return r
	}

	if m := reColRange.FindStringSubmatch(ref); m != nil {
		r.RowStart, r.RowEnd = unboundAxis, unboundAxis
		r.ColStartAbs = m[1] == "$"
		r.ColStart = colToIndex(m[2])
		r.ColEndAbs = m[3] == "$"
		r.ColEnd = colToIndex(m[4])
		r.IsRange = true
		r.Valid = true
		return r
	}

	if m := reSingleCell.FindStringSubmatch(ref); m != nil {
		r.ColStartAbs = m[1] == "$"
		r.ColStart = colToIndex(m[2])
		r.RowStartAbs = m[3] == "$"
		r.RowStart = atoiSafe(m[4]) - 1
		r.Valid = true
		return r
	}

	// Named range or named row/column (e.g. "Table::cats:dogs" or
	// "Table::cats"): resolving these needs the table's name-to-geometry
	// map, which this package does not have access to. Reported as
	// invalid so the caller can surface an explicit error instead of
	// fabricating a cell reference.
	return r
}

func atoiSafe(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func colToIndex(col string) int {
	n := 0
	for _, c := range col {
		n = n*26 + int(c-'A'+1)
	}
	return n - 1
}

// IndexToCol converts a zero-based column index back to its A1-style
// letters.
func IndexToCol(idx int) string {
	idx++
	var out []byte
	for idx > 0 {
		idx--
		out = append([]byte{byte('A' + idx%26)}, out...)
		idx /= 26
	}
	return string(out)
}

// FormatA1 renders a (row, col) pair as "COL+ROW" A1 notation, with '$'
// markers for absolute axes.
func FormatA1(col, row int, colAbs, rowAbs bool) string {
	var sb strings.Builder
	if colAbs {
		sb.WriteByte('$')
	}
	sb.WriteString(IndexToCol(col))
	if rowAbs {
		sb.WriteByte('$')
	}
	sb.WriteString(strconv.Itoa(row + 1))
	return sb.String()
}
