package table

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/iwahq/numbers/formula"
)

var cellRefPattern = regexp.MustCompile(`^(\$?)([A-Z]{1,3})(\$?)(\d+)$`)

// CellToRowCol converts an A1-style cell reference such as "B3" to a
// zero-indexed (row, col) pair, grounded on cell.py's xl_cell_to_rowcol.
func CellToRowCol(cellStr string) (row, col int, err error) {
	if cellStr == "" {
		return 0, 0, nil
	}

	m := cellRefPattern.FindStringSubmatch(cellStr)
	if m == nil {
		return 0, 0, fmt.Errorf("table: invalid cell reference %q", cellStr)
	}

	colNum, _ := strconv.Atoi(m[4])
	return colNum - 1, columnToIndex(m[2]), nil
}

func columnToIndex(col string) int {
	n := 0
	for _, c := range col {
		n = n*26 + int(c-'A'+1)
	}
	return n - 1
}

// RangeString converts a zero-indexed rectangle to an A1:B1-style range
// string, grounded on cell.py's xl_range.
func RangeString(firstRow, firstCol, lastRow, lastCol int) string {
	start := formula.FormatA1(firstCol, firstRow, false, false)
	if firstRow == lastRow && firstCol == lastCol {
		return start
	}
	end := formula.FormatA1(lastCol, lastRow, false, false)
	return start + ":" + end
}
