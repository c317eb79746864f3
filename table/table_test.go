package table

import (
	"testing"
	"time"

	"github.com/iwahq/numbers/archive"
	"github.com/iwahq/numbers/container"
	"github.com/iwahq/numbers/format"
	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/internal/wire"
	"github.com/iwahq/numbers/iwa"
	"github.com/iwahq/numbers/messages"
	"github.com/iwahq/numbers/objectstore"
	"github.com/iwahq/numbers/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(id uint64, msg registry.Message) *archive.Segment {
	return &archive.Segment{
		Header: archive.ArchiveInfo{Identifier: id},
		Slots:  []archive.Slot{{Message: msg}},
	}
}

func buildCellBuffer(rawType format.RawCellType, flags uint32, tail []byte) []byte {
	buf := make([]byte, 12)
	buf[0] = 5
	buf[1] = byte(rawType)
	wire.Engine.PutUint32(buf[8:12], flags)
	return append(buf, tail...)
}

func numberCellBuffer(value float64, numFormatID int32) []byte {
	d128 := make([]byte, 16)
	wire.PutDecimal128(d128, value)
	if numFormatID == 0 {
		return buildCellBuffer(format.RawNumber, 0x1, d128)
	}
	idBuf := make([]byte, 4)
	wire.Engine.PutUint32(idBuf, uint32(numFormatID))
	return buildCellBuffer(format.RawNumber, 0x1|0x2000, append(d128, idBuf...))
}

func textCellBuffer(stringID int32) []byte {
	idBuf := make([]byte, 4)
	wire.Engine.PutUint32(idBuf, uint32(stringID))
	return buildCellBuffer(format.RawText, 0x8, idBuf)
}

func boolCellBuffer(value bool) []byte {
	dBuf := make([]byte, 8)
	v := 0.0
	if value {
		v = 1.0
	}
	wire.Engine.PutUint64(dBuf, wire.Float64bits(v))
	return buildCellBuffer(format.RawBool, 0x2, dBuf)
}

func dateCellBuffer(seconds float64) []byte {
	secBuf := make([]byte, 8)
	wire.Engine.PutUint64(secBuf, wire.Float64bits(seconds))
	return buildCellBuffer(format.RawDate, 0x4, secBuf)
}

// buildFixtureDocument assembles a one-sheet, one-table document directly
// in the object store, bypassing the archive/frame wire codecs entirely:
//
//	A1: number 1234.5, custom-formatted via format key 1 ("#,##0.00")
//	B1: text "hello"
//	A2: bool true, merged with A1 into a single A1:A2 span
//	B2: empty, carries the formula "=A1"
func buildFixtureDocument(t *testing.T) *Document {
	t.Helper()

	tableInfo := &messages.TableInfo{
		TileID: 4, NumRows: 2, NumCols: 2, Name: "Table 1", CalcEngineID: 7,
		MergeRanges: []messages.MergeRange{{Row: 0, Col: 0, RowSpan: 2, ColSpan: 1}},
	}

	tile := &messages.Tile{
		RowStart: 0, ColStart: 0, NumRows: 2,
		CellBuffers: [][]byte{
			numberCellBuffer(1234.5, 1), textCellBuffer(1),
			boolCellBuffer(true), nil,
		},
	}

	numFmt := &messages.Format{
		CustomFormatString:       "#,##0.00",
		ScaleFactor:              1,
		NumNonspaceIntegerDigits: 1,
		NumNonspaceDecimalDigits: 2,
		ShowThousandsSeparator:   true,
	}
	numFmtBuf, err := numFmt.Marshal()
	require.NoError(t, err)

	formats := &messages.DataList{Kind: messages.DataListFormats, Entries: []messages.DataListEntry{
		{Key: 1, Payload: numFmtBuf},
	}}
	strings := &messages.DataList{Kind: messages.DataListStrings, Entries: []messages.DataListEntry{
		{Key: 1, Payload: []byte("hello")},
	}}

	astArray := &messages.ASTNodeArray{
		OwnerUID: "tbl-uid-1",
		Nodes:    []messages.ASTNode{{Kind: format.NodeCellReference, Row: -1, Col: -1}},
	}
	astBuf, err := astArray.Marshal()
	require.NoError(t, err)

	formulas := &messages.DataList{Kind: messages.DataListFormulas, Entries: []messages.DataListEntry{
		{Key: 1, Payload: astBuf},
	}}

	calc := &messages.CalculationEngine{
		OwnerUID: "tbl-uid-1",
		Formulas: []messages.FormulaCellRef{{Row: 1, Col: 1, FormulaKey: 1, ASTKey: 1}},
	}

	sheetInfo := &messages.SheetInfo{Name: "Sheet 1", TableInfoIDs: []uint64{3}}
	root := &messages.DocumentRoot{SheetIDs: []uint64{2}}

	store := objectstore.New(registry.Default)
	store.AddFile("doc.iwa", &iwa.File{Segments: []*archive.Segment{
		seg(1, root),
		seg(2, sheetInfo),
		seg(3, tableInfo),
		seg(4, tile),
		seg(5, formats),
		seg(6, strings),
		seg(7, calc),
		seg(8, formulas),
	}})

	cdoc := &container.Document{Store: store, Diagnostics: &errs.Sink{}}

	doc := &Document{doc: cdoc, reg: registry.Default, root: root}
	doc.sheets = []*Sheet{{doc: doc, id: 2, info: sheetInfo}}

	return doc
}

func TestDocumentSheetsAndTableShape(t *testing.T) {
	doc := buildFixtureDocument(t)
	require.Len(t, doc.Sheets(), 1)

	sheet := doc.Sheets()[0]
	assert.Equal(t, "Sheet 1", sheet.Name())

	tables, err := sheet.Tables()
	require.NoError(t, err)
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "Table 1", tbl.Name())
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
}

func TestCellValueAndFormattedValueNumber(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	cell, err := tbl.Cell(0, 0)
	require.NoError(t, err)

	assert.Equal(t, format.CellNumber, cell.Type())
	v, ok := cell.Value().(float64)
	require.True(t, ok)
	assert.InDelta(t, 1234.5, v, 1e-6)
	assert.Equal(t, "1,234.50", cell.FormattedValue())
}

func TestCellValueText(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	cell, err := tbl.CellAt("B1")
	require.NoError(t, err)

	assert.Equal(t, format.CellText, cell.Type())
	assert.Equal(t, "hello", cell.Value())
	assert.Equal(t, "hello", cell.FormattedValue())
}

func TestCellValueBool(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	cell, err := tbl.CellAt("A2")
	require.NoError(t, err)

	assert.Equal(t, format.CellBool, cell.Type())
	assert.Equal(t, true, cell.Value())
	assert.Equal(t, "TRUE", cell.FormattedValue())
}

func TestCellEmptyCellHasNilValue(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	cell, err := tbl.CellAt("B2")
	require.NoError(t, err)

	assert.Equal(t, format.CellEmpty, cell.Type())
	assert.Nil(t, cell.Value())
	assert.Equal(t, "", cell.FormattedValue())
}

func TestCellOutOfRangeErrors(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	_, err := tbl.Cell(99, 0)
	assert.Error(t, err)

	_, err = tbl.Cell(0, 99)
	assert.Error(t, err)
}

func TestTableMergeRanges(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	assert.Equal(t, []string{"A1:A2"}, tbl.MergeRanges())

	anchor, err := tbl.Cell(0, 0)
	require.NoError(t, err)
	assert.True(t, anchor.IsMergeAnchor())
	rows, cols := anchor.Size()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, cols)

	covered, err := tbl.Cell(1, 0)
	require.NoError(t, err)
	assert.False(t, covered.IsMergeAnchor())
	rng, ok := covered.MergeRange()
	require.True(t, ok)
	assert.Equal(t, "A1:A2", rng)
}

func TestTableRowsAndIterRowsCols(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	rows := tbl.Rows()
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 2)

	sub, err := tbl.IterRows(0, 0, 0, 1)
	require.NoError(t, err)
	require.Len(t, sub, 1)
	require.Len(t, sub[0], 2)

	cols, err := tbl.IterCols(1, 1, -1, -1)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	require.Len(t, cols[0], 2)
}

func TestTableIterRowsRejectsOutOfRange(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	_, err := tbl.IterRows(0, 5, 0, 0)
	assert.Error(t, err)
}

func TestCellFormulaRendersAbsoluteReference(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	cell, err := tbl.CellAt("B2")
	require.NoError(t, err)

	formula, ok := cell.Formula()
	require.True(t, ok)
	assert.Equal(t, "=A1", formula)
}

func TestCellNoFormulaReturnsFalse(t *testing.T) {
	doc := buildFixtureDocument(t)
	tbl := firstTable(t, doc)

	cell, err := tbl.CellAt("A1")
	require.NoError(t, err)

	_, ok := cell.Formula()
	assert.False(t, ok)
}

func TestCellToRowColAndRangeString(t *testing.T) {
	row, col, err := CellToRowCol("B3")
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	_, _, err = CellToRowCol("not a cell")
	assert.Error(t, err)

	assert.Equal(t, "A1", RangeString(0, 0, 0, 0))
	assert.Equal(t, "A1:B2", RangeString(0, 0, 1, 1))
}

func TestCellDateValue(t *testing.T) {
	rec := dateCellBuffer(86400) // one day after epoch
	tile := &messages.Tile{NumRows: 1, CellBuffers: [][]byte{rec}}

	tableInfo := &messages.TableInfo{TileID: 2, NumRows: 1, NumCols: 1, Name: "Dates"}
	root := &messages.DocumentRoot{SheetIDs: []uint64{10}}
	sheetInfo := &messages.SheetInfo{Name: "Sheet 1", TableInfoIDs: []uint64{1}}

	store := objectstore.New(registry.Default)
	store.AddFile("doc.iwa", &iwa.File{Segments: []*archive.Segment{
		seg(10, sheetInfo),
		seg(1, tableInfo),
		seg(2, tile),
	}})

	cdoc := &container.Document{Store: store, Diagnostics: &errs.Sink{}}
	doc := &Document{doc: cdoc, reg: registry.Default, root: root}
	doc.sheets = []*Sheet{{doc: doc, id: 10, info: sheetInfo}}

	tbl := firstTable(t, doc)
	cell, err := tbl.Cell(0, 0)
	require.NoError(t, err)

	v, ok := cell.Value().(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2001, v.Year())
	assert.Equal(t, 2, v.Day())
}

func TestDocumentResolveTableAmbiguousAcrossSheets(t *testing.T) {
	tableA := &messages.TableInfo{TileID: 100, NumRows: 0, NumCols: 0, Name: "Data", CalcEngineID: 101}
	tableB := &messages.TableInfo{TileID: 200, NumRows: 0, NumCols: 0, Name: "Data", CalcEngineID: 201}
	emptyTile := &messages.Tile{}

	calcA := &messages.CalculationEngine{OwnerUID: "uid-a"}
	calcB := &messages.CalculationEngine{OwnerUID: "uid-b"}

	sheet1 := &messages.SheetInfo{Name: "Sheet 1", TableInfoIDs: []uint64{1}}
	sheet2 := &messages.SheetInfo{Name: "Sheet 2", TableInfoIDs: []uint64{2}}
	root := &messages.DocumentRoot{SheetIDs: []uint64{50, 51}}

	store := objectstore.New(registry.Default)
	store.AddFile("doc.iwa", &iwa.File{Segments: []*archive.Segment{
		seg(50, sheet1),
		seg(51, sheet2),
		seg(1, tableA),
		seg(2, tableB),
		seg(100, emptyTile),
		seg(200, emptyTile),
		seg(101, calcA),
		seg(201, calcB),
	}})

	cdoc := &container.Document{Store: store, Diagnostics: &errs.Sink{}}
	doc := &Document{doc: cdoc, reg: registry.Default, root: root}
	doc.sheets = []*Sheet{
		{doc: doc, id: 50, info: sheet1},
		{doc: doc, id: 51, info: sheet2},
	}

	sheetName, tableName, ambiguous := doc.ResolveTable("uid-a")
	assert.Equal(t, "Sheet 1", sheetName)
	assert.Equal(t, "Data", tableName)
	assert.True(t, ambiguous)

	_, _, ambiguous = doc.ResolveTable("unknown-uid")
	assert.False(t, ambiguous)
}

func firstTable(t *testing.T, doc *Document) *Table {
	t.Helper()
	tables, err := doc.Sheets()[0].Tables()
	require.NoError(t, err)
	require.NotEmpty(t, tables)
	return tables[0]
}
