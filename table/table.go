package table

import (
	"fmt"

	"github.com/iwahq/numbers/cellstorage"
	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/messages"
)

// Table is a single table's decoded rows of cells, cached in full at
// construction time the same way Table.__init__ eagerly materializes
// self._data: the I/O cost of decoding every cell up front is negligible
// next to re-walking the archive on every access.
type Table struct {
	doc   *Document
	sheet *Sheet
	id    uint64

	info    *messages.TableInfo
	strings *messages.DataList
	formats *messages.DataList
	formula *messages.DataList
	calc    *messages.CalculationEngine

	numRows, numCols int
	cells            [][]*Cell

	diag *errs.Sink
}

func newTable(doc *Document, sheet *Sheet, tableInfoID uint64) (*Table, error) {
	infoMsg, err := doc.doc.Store.Get(tableInfoID)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	info, ok := infoMsg.(*messages.TableInfo)
	if !ok {
		return nil, &errs.FileFormatError{Context: "invalid Numbers document (table info has wrong type)"}
	}

	t := &Table{
		doc: doc, sheet: sheet, id: tableInfoID,
		info: info, numRows: int(info.NumRows), numCols: int(info.NumCols),
		diag: doc.doc.Diagnostics,
	}

	tileMsg, err := doc.doc.Store.Get(info.TileID)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	tile, ok := tileMsg.(*messages.Tile)
	if !ok {
		return nil, &errs.FileFormatError{Context: "invalid Numbers document (tile has wrong type)"}
	}

	t.strings = t.findDataList(messages.DataListStrings)
	t.formats = t.findDataList(messages.DataListFormats)
	t.formula = t.findDataList(messages.DataListFormulas)

	if info.CalcEngineID != 0 {
		if calcMsg, err := doc.doc.Store.Get(info.CalcEngineID); err == nil {
			if calc, ok := calcMsg.(*messages.CalculationEngine); ok {
				t.calc = calc
			}
		}
	}

	records, err := tile.Decode(t.stringLookup)
	if err != nil {
		return nil, fmt.Errorf("table: %s: %w", info.Name, err)
	}

	if err := t.buildCells(records); err != nil {
		return nil, err
	}

	return t, nil
}

// findDataList returns a DataList of the given kind from the document's
// object store. TableInfo carries no pointer to its lists, so this scans
// every DataList in the store, which all tables share; when the store holds
// more than one list of the kind, which one is returned is not defined and
// it may belong to another table.
func (t *Table) findDataList(kind messages.DataListKind) *messages.DataList {
	for _, id := range t.doc.doc.Store.FindByType(messages.TypeNameDataList) {
		msg, err := t.doc.doc.Store.Get(id)
		if err != nil {
			continue
		}
		dl, ok := msg.(*messages.DataList)
		if !ok || dl.Kind != kind {
			continue
		}
		return dl
	}
	return nil
}

func (t *Table) stringLookup(key int32) string {
	if t.strings == nil {
		return ""
	}
	e, ok := t.strings.ByKey(key)
	if !ok {
		return ""
	}
	return string(e.Payload)
}

func (t *Table) buildCells(records []*cellstorage.Record) error {
	anchors := make(map[[2]int]messages.MergeRange)
	covers := make(map[[2]int][2]int) // covered cell -> anchor (row, col)

	for _, m := range t.info.MergeRanges {
		anchors[[2]int{int(m.Row), int(m.Col)}] = m
		for r := 0; r < int(m.RowSpan); r++ {
			for c := 0; c < int(m.ColSpan); c++ {
				if r == 0 && c == 0 {
					continue
				}
				covers[[2]int{int(m.Row) + r, int(m.Col) + c}] = [2]int{int(m.Row), int(m.Col)}
			}
		}
	}

	t.cells = make([][]*Cell, t.numRows)

	for row := 0; row < t.numRows; row++ {
		t.cells[row] = make([]*Cell, t.numCols)

		for col := 0; col < t.numCols; col++ {
			idx := row*t.numCols + col

			var rec *cellstorage.Record
			if idx < len(records) {
				rec = records[idx]
			}

			c := &Cell{table: t, row: row, col: col, record: rec, rowSpan: 1, colSpan: 1}

			if m, ok := anchors[[2]int{row, col}]; ok {
				c.rowSpan = int(m.RowSpan)
				c.colSpan = int(m.ColSpan)
			} else if anchor, ok := covers[[2]int{row, col}]; ok {
				c.mergedInto = &anchor
			}

			t.cells[row][col] = c
		}
	}

	return nil
}

// Name returns the table's display name.
func (t *Table) Name() string { return t.info.Name }

// NumRows returns the table's row count.
func (t *Table) NumRows() int { return t.numRows }

// NumCols returns the table's column count.
func (t *Table) NumCols() int { return t.numCols }

// Cell returns the cell at (row, col). Prefer CellAt for an A1-style
// reference such as "B3".
func (t *Table) Cell(row, col int) (*Cell, error) {
	if row < 0 || row >= t.numRows {
		return nil, fmt.Errorf("table: row %d out of range", row)
	}
	if col < 0 || col >= t.numCols {
		return nil, fmt.Errorf("table: column %d out of range", col)
	}
	return t.cells[row][col], nil
}

// CellAt returns the cell referenced by an A1-style string such as "B3".
func (t *Table) CellAt(ref string) (*Cell, error) {
	row, col, err := CellToRowCol(ref)
	if err != nil {
		return nil, err
	}
	return t.Cell(row, col)
}

// Rows returns every row of cells, top to bottom.
func (t *Table) Rows() [][]*Cell { return t.cells }

// IterRows yields each requested row as a slice of cells, inclusive of
// both bounds. A negative bound defaults to the full table extent.
func (t *Table) IterRows(minRow, maxRow, minCol, maxCol int) ([][]*Cell, error) {
	minRow, maxRow, minCol, maxCol = t.clampRange(minRow, maxRow, minCol, maxCol)

	if err := t.checkRange(minRow, maxRow, minCol, maxCol); err != nil {
		return nil, err
	}

	out := make([][]*Cell, 0, maxRow-minRow+1)
	for r := minRow; r <= maxRow; r++ {
		out = append(out, append([]*Cell(nil), t.cells[r][minCol:maxCol+1]...))
	}
	return out, nil
}

// IterCols yields each requested column as a slice of cells, top to
// bottom, inclusive of both bounds.
func (t *Table) IterCols(minCol, maxCol, minRow, maxRow int) ([][]*Cell, error) {
	minRow, maxRow, minCol, maxCol = t.clampRange(minRow, maxRow, minCol, maxCol)

	if err := t.checkRange(minRow, maxRow, minCol, maxCol); err != nil {
		return nil, err
	}

	out := make([][]*Cell, 0, maxCol-minCol+1)
	for c := minCol; c <= maxCol; c++ {
		col := make([]*Cell, 0, maxRow-minRow+1)
		for r := minRow; r <= maxRow; r++ {
			col = append(col, t.cells[r][c])
		}
		out = append(out, col)
	}
	return out, nil
}

func (t *Table) clampRange(minRow, maxRow, minCol, maxCol int) (int, int, int, int) {
	if minRow < 0 {
		minRow = 0
	}
	if maxRow < 0 {
		maxRow = t.numRows - 1
	}
	if minCol < 0 {
		minCol = 0
	}
	if maxCol < 0 {
		maxCol = t.numCols - 1
	}
	return minRow, maxRow, minCol, maxCol
}

func (t *Table) checkRange(minRow, maxRow, minCol, maxCol int) error {
	if minRow < 0 || maxRow >= t.numRows || minRow > maxRow {
		return fmt.Errorf("table: row range [%d,%d] out of bounds", minRow, maxRow)
	}
	if minCol < 0 || maxCol >= t.numCols || minCol > maxCol {
		return fmt.Errorf("table: column range [%d,%d] out of bounds", minCol, maxCol)
	}
	return nil
}

// MergeRanges returns every merged-cell rectangle as an A1-style range
// string, e.g. "B2:C3".
func (t *Table) MergeRanges() []string {
	ranges := make([]string, 0, len(t.info.MergeRanges))
	for _, m := range t.info.MergeRanges {
		ranges = append(ranges, RangeString(
			int(m.Row), int(m.Col),
			int(m.Row)+int(m.RowSpan)-1, int(m.Col)+int(m.ColSpan)-1,
		))
	}
	return ranges
}
