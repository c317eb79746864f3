package messages

import (
	"fmt"

	"github.com/iwahq/numbers/cellstorage"
	"github.com/iwahq/numbers/format"
	"github.com/iwahq/numbers/internal/pbwire"
)

// Field numbers for TableInfo, chosen by this module (see package doc).
const (
	fTableInfoTileID       = 1
	fTableInfoNumRows      = 2
	fTableInfoNumCols      = 3
	fTableInfoName         = 4
	fTableInfoCalcEngineID = 5
	fTableInfoMergeRange   = 6
)

// TableInfo describes one table's shape and the object IDs of its tile and
// calculation engine, grounded on model.py's TableModel construction from
// TST.TableInfoArchive.
type TableInfo struct {
	TileID       uint64
	NumRows      int32
	NumCols      int32
	Name         string
	CalcEngineID uint64
	MergeRanges  []MergeRange
}

// MergeRange is one merged-cell rectangle, stored as (row, col, rowSpan,
// colSpan), grounded on model.py's merge_cell_ranges handling.
type MergeRange struct {
	Row, Col           int32
	RowSpan, ColSpan   int32
}

func (t *TableInfo) TypeName() string { return TypeNameTableInfo }

func (t *TableInfo) Unmarshal(data []byte) error {
	*t = TableInfo{}

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: TableInfo: malformed payload")
	}

	for _, f := range fields {
		switch f.Number {
		case fTableInfoTileID:
			t.TileID = f.Varint
		case fTableInfoNumRows:
			t.NumRows = int32(f.Int64())
		case fTableInfoNumCols:
			t.NumCols = int32(f.Int64())
		case fTableInfoName:
			t.Name = f.String()
		case fTableInfoCalcEngineID:
			t.CalcEngineID = f.Varint
		case fTableInfoMergeRange:
			mr, ok := pbwire.Fields(f.Raw)
			if !ok {
				continue
			}
			var m MergeRange
			for _, mf := range mr {
				switch mf.Number {
				case 1:
					m.Row = int32(mf.Int64())
				case 2:
					m.Col = int32(mf.Int64())
				case 3:
					m.RowSpan = int32(mf.Int64())
				case 4:
					m.ColSpan = int32(mf.Int64())
				}
			}
			t.MergeRanges = append(t.MergeRanges, m)
		}
	}

	return nil
}

func (t *TableInfo) Marshal() ([]byte, error) {
	var buf []byte
	buf = pbwire.AppendVarint(buf, fTableInfoTileID, t.TileID)
	buf = pbwire.AppendInt64(buf, fTableInfoNumRows, int64(t.NumRows))
	buf = pbwire.AppendInt64(buf, fTableInfoNumCols, int64(t.NumCols))
	if t.Name != "" {
		buf = pbwire.AppendString(buf, fTableInfoName, t.Name)
	}
	if t.CalcEngineID != 0 {
		buf = pbwire.AppendVarint(buf, fTableInfoCalcEngineID, t.CalcEngineID)
	}
	for _, m := range t.MergeRanges {
		var mrBuf []byte
		mrBuf = pbwire.AppendInt64(mrBuf, 1, int64(m.Row))
		mrBuf = pbwire.AppendInt64(mrBuf, 2, int64(m.Col))
		mrBuf = pbwire.AppendInt64(mrBuf, 3, int64(m.RowSpan))
		mrBuf = pbwire.AppendInt64(mrBuf, 4, int64(m.ColSpan))
		buf = pbwire.AppendBytes(buf, fTableInfoMergeRange, mrBuf)
	}
	return buf, nil
}

// Field numbers for Tile.
const (
	fTileRowStart     = 1
	fTileColStart     = 2
	fTileNumRows      = 3
	fTileCellStorages = 4 // repeated bytes, one per cell in row-major order
)

// Tile holds one rectangular block of a table's raw per-cell storage
// buffers, grounded on cell_storage.py's per-tile decode loop. A table's
// cells are spread across one or more tiles in the original format; this
// module keeps the simplifying single-tile-per-table layout spec.md §4.7
// describes.
type Tile struct {
	RowStart, ColStart int32
	NumRows            int32
	CellBuffers        [][]byte
}

func (t *Tile) TypeName() string { return TypeNameTile }

func (t *Tile) Unmarshal(data []byte) error {
	*t = Tile{}

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: Tile: malformed payload")
	}

	for _, f := range fields {
		switch f.Number {
		case fTileRowStart:
			t.RowStart = int32(f.Int64())
		case fTileColStart:
			t.ColStart = int32(f.Int64())
		case fTileNumRows:
			t.NumRows = int32(f.Int64())
		case fTileCellStorages:
			t.CellBuffers = append(t.CellBuffers, append([]byte(nil), f.Raw...))
		}
	}

	return nil
}

func (t *Tile) Marshal() ([]byte, error) {
	var buf []byte
	buf = pbwire.AppendInt64(buf, fTileRowStart, int64(t.RowStart))
	buf = pbwire.AppendInt64(buf, fTileColStart, int64(t.ColStart))
	buf = pbwire.AppendInt64(buf, fTileNumRows, int64(t.NumRows))
	for _, cb := range t.CellBuffers {
		buf = pbwire.AppendBytes(buf, fTileCellStorages, cb)
	}
	return buf, nil
}

// Decode unpacks every non-empty cell buffer in the tile, in row-major
// order, via cellstorage.Decode.
func (t *Tile) Decode(stringLookup func(int32) string) ([]*cellstorage.Record, error) {
	records := make([]*cellstorage.Record, len(t.CellBuffers))
	for i, buf := range t.CellBuffers {
		if len(buf) == 0 {
			continue
		}
		rec, err := cellstorage.Decode(buf, stringLookup)
		if err != nil {
			return nil, fmt.Errorf("messages: tile cell %d: %w", i, err)
		}
		records[i] = rec
	}
	return records, nil
}

// DataList field numbers. Apple's per-table lists (string table, format
// table, style table, rich-text table, formula table) share this key ->
// refcount -> payload shape (spec.md §4.7/§4.9), grounded on
// model.py's TableModel.string_for_key / format_for_key helpers.
const (
	fDataListKind    = 1
	fDataListEntries = 2

	fEntryKey      = 1
	fEntryRefcount = 2
	fEntryPayload  = 3
)

// DataListKind discriminates which per-table list a DataList instance is
// (they all share one wire shape but are stored as distinct archive
// objects).
type DataListKind int32

const (
	DataListStrings DataListKind = iota + 1
	DataListFormats
	DataListFormatsPreBNC
	DataListStyles
	DataListRichText
	DataListFormulas
)

// DataListEntry is one (key, refcount, payload) triple.
type DataListEntry struct {
	Key      int32
	Refcount int32
	Payload  []byte
}

// DataList is a generic per-table lookup list: strings, number/date/
// duration formats, cell styles, rich-text runs, or formula ASTs, all keyed
// by a small integer and refcounted for dedup (spec.md §4.9's formula_key
// sharing and the analogous string/format dedup).
type DataList struct {
	Kind    DataListKind
	Entries []DataListEntry
}

func (d *DataList) TypeName() string { return TypeNameDataList }

func (d *DataList) Unmarshal(data []byte) error {
	*d = DataList{}

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: DataList: malformed payload")
	}

	for _, f := range fields {
		switch f.Number {
		case fDataListKind:
			d.Kind = DataListKind(f.Int64())
		case fDataListEntries:
			ef, ok := pbwire.Fields(f.Raw)
			if !ok {
				continue
			}
			var e DataListEntry
			for _, item := range ef {
				switch item.Number {
				case fEntryKey:
					e.Key = int32(item.Int64())
				case fEntryRefcount:
					e.Refcount = int32(item.Int64())
				case fEntryPayload:
					e.Payload = append([]byte(nil), item.Raw...)
				}
			}
			d.Entries = append(d.Entries, e)
		}
	}

	return nil
}

func (d *DataList) Marshal() ([]byte, error) {
	var buf []byte
	buf = pbwire.AppendInt64(buf, fDataListKind, int64(d.Kind))
	for _, e := range d.Entries {
		var eb []byte
		eb = pbwire.AppendInt64(eb, fEntryKey, int64(e.Key))
		eb = pbwire.AppendInt64(eb, fEntryRefcount, int64(e.Refcount))
		eb = pbwire.AppendBytes(eb, fEntryPayload, e.Payload)
		buf = pbwire.AppendBytes(buf, fDataListEntries, eb)
	}
	return buf, nil
}

// ByKey returns the entry with the given key, or (nil, false).
func (d *DataList) ByKey(key int32) (DataListEntry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return DataListEntry{}, false
}

// CalculationEngine field numbers.
const (
	fCalcOwnerUID    = 1
	fCalcFormulaRefs = 2 // repeated FormulaCellRef

	fFormRefRow      = 1
	fFormRefCol      = 2
	fFormRefFormulaKey = 3
	fFormRefASTKey   = 4
)

// FormulaCellRef associates a cell position with the formula-table key that
// holds its AST and the data-list key for its node array, grounded on
// formula.py's per-cell "formula_key"/"ast_key" pair lookup.
type FormulaCellRef struct {
	Row, Col   int32
	FormulaKey int32
	ASTKey     int32
}

// CalculationEngine is TSCE.CalculationEngineArchive: it owns the table's
// formula cell index and the UID used to qualify cross-table references
// (spec.md §4.11).
type CalculationEngine struct {
	OwnerUID string
	Formulas []FormulaCellRef
}

func (c *CalculationEngine) TypeName() string { return TypeNameCalcEngine }

func (c *CalculationEngine) Unmarshal(data []byte) error {
	*c = CalculationEngine{}

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: CalculationEngine: malformed payload")
	}

	for _, f := range fields {
		switch f.Number {
		case fCalcOwnerUID:
			c.OwnerUID = f.String()
		case fCalcFormulaRefs:
			rf, ok := pbwire.Fields(f.Raw)
			if !ok {
				continue
			}
			var ref FormulaCellRef
			for _, item := range rf {
				switch item.Number {
				case fFormRefRow:
					ref.Row = int32(item.Int64())
				case fFormRefCol:
					ref.Col = int32(item.Int64())
				case fFormRefFormulaKey:
					ref.FormulaKey = int32(item.Int64())
				case fFormRefASTKey:
					ref.ASTKey = int32(item.Int64())
				}
			}
			c.Formulas = append(c.Formulas, ref)
		}
	}

	return nil
}

func (c *CalculationEngine) Marshal() ([]byte, error) {
	var buf []byte
	if c.OwnerUID != "" {
		buf = pbwire.AppendString(buf, fCalcOwnerUID, c.OwnerUID)
	}
	for _, ref := range c.Formulas {
		var rb []byte
		rb = pbwire.AppendInt64(rb, fFormRefRow, int64(ref.Row))
		rb = pbwire.AppendInt64(rb, fFormRefCol, int64(ref.Col))
		rb = pbwire.AppendInt64(rb, fFormRefFormulaKey, int64(ref.FormulaKey))
		rb = pbwire.AppendInt64(rb, fFormRefASTKey, int64(ref.ASTKey))
		buf = pbwire.AppendBytes(buf, fCalcFormulaRefs, rb)
	}
	return buf, nil
}

// ResolveCell returns the FormulaCellRef at (row, col), if any.
func (c *CalculationEngine) ResolveCell(row, col int32) (FormulaCellRef, bool) {
	for _, ref := range c.Formulas {
		if ref.Row == row && ref.Col == col {
			return ref, true
		}
	}
	return FormulaCellRef{}, false
}

// Format field numbers, grounded on cell_storage.py's CUSTOM_FORMAT_MAP /
// DURATION_UNITS / numbers_parser's FormatArchive field table.
const (
	fFormatType                    = 1
	fFormatCustomUID               = 2
	fFormatDateTimeFormat          = 3
	fFormatDurationStyle           = 4
	fFormatDurationUnitLargest     = 5
	fFormatDurationUnitSmallest    = 6
	fFormatDurationUseAutoUnits    = 7
	fFormatCustomFormatString      = 8
	fFormatScaleFactor             = 9
	fFormatCurrencyCode            = 10
	fFormatNumNonspaceIntegerDigits = 11
	fFormatNumNonspaceDecimalDigits = 12
	fFormatShowThousandsSeparator  = 13
	fFormatFractionAccuracy        = 14
	fFormatRequiresFractionReplace = 15
)

// Format is TST.FormatArchive: the resolved rendering parameters for one
// number/date/duration/text/currency cell format, consumed by package
// customformat (spec.md §4.8).
type Format struct {
	FormatType                  format.FormatKind
	CustomUID                   string
	DateTimeFormat              string
	DurationStyle               format.DurationStyle
	DurationUnitLargest         int32
	DurationUnitSmallest        int32
	DurationUseAutomaticUnits   bool
	CustomFormatString          string
	ScaleFactor                 float64
	CurrencyCode                string
	NumNonspaceIntegerDigits    int32
	NumNonspaceDecimalDigits    int32
	ShowThousandsSeparator      bool
	FractionAccuracy            int32 // negative: -n = at most n denominator digits (-1 one digit, -2 two); positive: fixed denominator
	RequiresFractionReplacement bool
}

func (f *Format) TypeName() string { return TypeNameFormat }

func (f *Format) Unmarshal(data []byte) error {
	*f = Format{}

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: Format: malformed payload")
	}

	for _, field := range fields {
		switch field.Number {
		case fFormatType:
			f.FormatType = format.FormatKind(field.Int64())
		case fFormatCustomUID:
			f.CustomUID = field.String()
		case fFormatDateTimeFormat:
			f.DateTimeFormat = field.String()
		case fFormatDurationStyle:
			f.DurationStyle = format.DurationStyle(field.Int64())
		case fFormatDurationUnitLargest:
			f.DurationUnitLargest = int32(field.Int64())
		case fFormatDurationUnitSmallest:
			f.DurationUnitSmallest = int32(field.Int64())
		case fFormatDurationUseAutoUnits:
			f.DurationUseAutomaticUnits = field.Bool()
		case fFormatCustomFormatString:
			f.CustomFormatString = field.String()
		case fFormatScaleFactor:
			f.ScaleFactor = field.Float64()
		case fFormatCurrencyCode:
			f.CurrencyCode = field.String()
		case fFormatNumNonspaceIntegerDigits:
			f.NumNonspaceIntegerDigits = int32(field.Int64())
		case fFormatNumNonspaceDecimalDigits:
			f.NumNonspaceDecimalDigits = int32(field.Int64())
		case fFormatShowThousandsSeparator:
			f.ShowThousandsSeparator = field.Bool()
		case fFormatFractionAccuracy:
			f.FractionAccuracy = int32(field.SInt64())
		case fFormatRequiresFractionReplace:
			f.RequiresFractionReplacement = field.Bool()
		}
	}

	if f.ScaleFactor == 0 {
		f.ScaleFactor = 1
	}

	return nil
}

func (f *Format) Marshal() ([]byte, error) {
	var buf []byte
	buf = pbwire.AppendInt64(buf, fFormatType, int64(f.FormatType))
	if f.CustomUID != "" {
		buf = pbwire.AppendString(buf, fFormatCustomUID, f.CustomUID)
	}
	if f.DateTimeFormat != "" {
		buf = pbwire.AppendString(buf, fFormatDateTimeFormat, f.DateTimeFormat)
	}
	buf = pbwire.AppendInt64(buf, fFormatDurationStyle, int64(f.DurationStyle))
	buf = pbwire.AppendInt64(buf, fFormatDurationUnitLargest, int64(f.DurationUnitLargest))
	buf = pbwire.AppendInt64(buf, fFormatDurationUnitSmallest, int64(f.DurationUnitSmallest))
	buf = pbwire.AppendBool(buf, fFormatDurationUseAutoUnits, f.DurationUseAutomaticUnits)
	if f.CustomFormatString != "" {
		buf = pbwire.AppendString(buf, fFormatCustomFormatString, f.CustomFormatString)
	}
	buf = pbwire.AppendFloat64(buf, fFormatScaleFactor, f.ScaleFactor)
	if f.CurrencyCode != "" {
		buf = pbwire.AppendString(buf, fFormatCurrencyCode, f.CurrencyCode)
	}
	buf = pbwire.AppendInt64(buf, fFormatNumNonspaceIntegerDigits, int64(f.NumNonspaceIntegerDigits))
	buf = pbwire.AppendInt64(buf, fFormatNumNonspaceDecimalDigits, int64(f.NumNonspaceDecimalDigits))
	buf = pbwire.AppendBool(buf, fFormatShowThousandsSeparator, f.ShowThousandsSeparator)
	buf = pbwire.AppendVarint(buf, fFormatFractionAccuracy, protowireZigZag(int64(f.FractionAccuracy)))
	buf = pbwire.AppendBool(buf, fFormatRequiresFractionReplace, f.RequiresFractionReplacement)
	return buf, nil
}

func protowireZigZag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// ASTNodeArray field numbers.
const (
	fASTNodes  = 1
	fASTOwnerUID = 2

	fNodeKind     = 1
	fNodeNumber   = 2
	fNodeText     = 3
	fNodeBool     = 4
	fNodeFuncIdx  = 5
	fNodeNumArgs  = 6
	fNodeRow      = 7
	fNodeCol      = 8
	fNodeRowAbs   = 9
	fNodeColAbs   = 10
	fNodeRowEnd   = 11
	fNodeColEnd   = 12
	fNodeRowEndAbs = 13
	fNodeColEndAbs = 14
	fNodeIsRange  = 15
	fNodeTableUID = 16
)

// ASTNodeArray is TSCE.ASTNodeArrayArchive: the flat, postfix-ordered node
// array backing one formula, bridged to formula.Node on decode/encode
// (spec.md §4.9/§4.10).
type ASTNodeArray struct {
	OwnerUID string
	Nodes    []ASTNode
}

// ASTNode mirrors formula.Node's field set in wire form; package formula
// stays free of any dependency on this package's framing.
type ASTNode struct {
	Kind                           format.NodeKind
	Number                         float64
	Text                           string
	Boolean                        bool
	FunctionIndex, NumArgs         int32
	Row, Col                       int32
	RowAbsolute, ColAbsolute       bool
	RowEnd, ColEnd                 int32
	RowEndAbsolute, ColEndAbsolute bool
	IsRange                        bool
	TableUID                       string
}

func (a *ASTNodeArray) TypeName() string { return TypeNameASTNodeArray }

func (a *ASTNodeArray) Unmarshal(data []byte) error {
	*a = ASTNodeArray{}

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: ASTNodeArray: malformed payload")
	}

	for _, f := range fields {
		switch f.Number {
		case fASTOwnerUID:
			a.OwnerUID = f.String()
		case fASTNodes:
			nf, ok := pbwire.Fields(f.Raw)
			if !ok {
				continue
			}
			var n ASTNode
			for _, item := range nf {
				switch item.Number {
				case fNodeKind:
					n.Kind = format.NodeKind(item.Int64())
				case fNodeNumber:
					n.Number = item.Float64()
				case fNodeText:
					n.Text = item.String()
				case fNodeBool:
					n.Boolean = item.Bool()
				case fNodeFuncIdx:
					n.FunctionIndex = int32(item.Int64())
				case fNodeNumArgs:
					n.NumArgs = int32(item.Int64())
				case fNodeRow:
					n.Row = int32(item.SInt64())
				case fNodeCol:
					n.Col = int32(item.SInt64())
				case fNodeRowAbs:
					n.RowAbsolute = item.Bool()
				case fNodeColAbs:
					n.ColAbsolute = item.Bool()
				case fNodeRowEnd:
					n.RowEnd = int32(item.SInt64())
				case fNodeColEnd:
					n.ColEnd = int32(item.SInt64())
				case fNodeRowEndAbs:
					n.RowEndAbsolute = item.Bool()
				case fNodeColEndAbs:
					n.ColEndAbsolute = item.Bool()
				case fNodeIsRange:
					n.IsRange = item.Bool()
				case fNodeTableUID:
					n.TableUID = item.String()
				}
			}
			a.Nodes = append(a.Nodes, n)
		}
	}

	return nil
}

func (a *ASTNodeArray) Marshal() ([]byte, error) {
	var buf []byte
	if a.OwnerUID != "" {
		buf = pbwire.AppendString(buf, fASTOwnerUID, a.OwnerUID)
	}
	for _, n := range a.Nodes {
		var nb []byte
		nb = pbwire.AppendInt64(nb, fNodeKind, int64(n.Kind))
		nb = pbwire.AppendFloat64(nb, fNodeNumber, n.Number)
		if n.Text != "" {
			nb = pbwire.AppendString(nb, fNodeText, n.Text)
		}
		nb = pbwire.AppendBool(nb, fNodeBool, n.Boolean)
		nb = pbwire.AppendInt64(nb, fNodeFuncIdx, int64(n.FunctionIndex))
		nb = pbwire.AppendInt64(nb, fNodeNumArgs, int64(n.NumArgs))
		nb = pbwire.AppendVarint(nb, fNodeRow, protowireZigZag(int64(n.Row)))
		nb = pbwire.AppendVarint(nb, fNodeCol, protowireZigZag(int64(n.Col)))
		nb = pbwire.AppendBool(nb, fNodeRowAbs, n.RowAbsolute)
		nb = pbwire.AppendBool(nb, fNodeColAbs, n.ColAbsolute)
		nb = pbwire.AppendVarint(nb, fNodeRowEnd, protowireZigZag(int64(n.RowEnd)))
		nb = pbwire.AppendVarint(nb, fNodeColEnd, protowireZigZag(int64(n.ColEnd)))
		nb = pbwire.AppendBool(nb, fNodeRowEndAbs, n.RowEndAbsolute)
		nb = pbwire.AppendBool(nb, fNodeColEndAbs, n.ColEndAbsolute)
		nb = pbwire.AppendBool(nb, fNodeIsRange, n.IsRange)
		if n.TableUID != "" {
			nb = pbwire.AppendString(nb, fNodeTableUID, n.TableUID)
		}
		buf = pbwire.AppendBytes(buf, fASTNodes, nb)
	}
	return buf, nil
}

// SheetInfo field numbers.
const (
	fSheetName         = 1
	fSheetTableInfoIDs = 2
)

// SheetInfo is TSP.SheetArchive: a sheet's display name and the object IDs
// of the TableInfo archives it owns, grounded on model.py's
// sheet_name/table_ids (table_ids walks every TableInfoArchive whose
// parent points back at this sheet; this module stores the forward edge
// directly instead).
type SheetInfo struct {
	Name         string
	TableInfoIDs []uint64
}

func (s *SheetInfo) TypeName() string { return TypeNameSheetInfo }

func (s *SheetInfo) Unmarshal(data []byte) error {
	*s = SheetInfo{}

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: SheetInfo: malformed payload")
	}

	for _, f := range fields {
		switch f.Number {
		case fSheetName:
			s.Name = f.String()
		case fSheetTableInfoIDs:
			s.TableInfoIDs = append(s.TableInfoIDs, f.Varint)
		}
	}

	return nil
}

func (s *SheetInfo) Marshal() ([]byte, error) {
	var buf []byte
	if s.Name != "" {
		buf = pbwire.AppendString(buf, fSheetName, s.Name)
	}
	for _, id := range s.TableInfoIDs {
		buf = pbwire.AppendVarint(buf, fSheetTableInfoIDs, id)
	}
	return buf, nil
}

// DocumentRoot field numbers.
const fDocumentSheetIDs = 1

// DocumentRoot is TSP.DocumentArchive, the object every document's object
// store addresses at a well-known identifier: the ordered list of sheet
// object IDs, grounded on model.py's "objects[1].sheets".
type DocumentRoot struct {
	SheetIDs []uint64
}

func (d *DocumentRoot) TypeName() string { return TypeNameDocumentRoot }

func (d *DocumentRoot) Unmarshal(data []byte) error {
	*d = DocumentRoot{}

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: DocumentRoot: malformed payload")
	}

	for _, f := range fields {
		if f.Number == fDocumentSheetIDs {
			d.SheetIDs = append(d.SheetIDs, f.Varint)
		}
	}

	return nil
}

func (d *DocumentRoot) Marshal() ([]byte, error) {
	var buf []byte
	for _, id := range d.SheetIDs {
		buf = pbwire.AppendVarint(buf, fDocumentSheetIDs, id)
	}
	return buf, nil
}

// CustomFormatMap field numbers.
const (
	fCFMEntries = 1

	fCFMEntryUID  = 1
	fCFMEntryName = 2
)

// CustomFormatMap is TST.CustomFormatMapArchive: the document-wide
// uid->name table for user-defined custom formats, grounded on
// model.py's custom_format_map / NumbersUUID key handling.
type CustomFormatMap struct {
	Entries map[string]string // custom_uid (hex) -> display name
}

func (m *CustomFormatMap) TypeName() string { return TypeNameCustomFormatMap }

func (m *CustomFormatMap) Unmarshal(data []byte) error {
	m.Entries = make(map[string]string)

	fields, ok := pbwire.Fields(data)
	if !ok {
		return fmt.Errorf("messages: CustomFormatMap: malformed payload")
	}

	for _, f := range fields {
		if f.Number != fCFMEntries {
			continue
		}
		ef, ok := pbwire.Fields(f.Raw)
		if !ok {
			continue
		}
		var uid, name string
		for _, item := range ef {
			switch item.Number {
			case fCFMEntryUID:
				uid = item.String()
			case fCFMEntryName:
				name = item.String()
			}
		}
		m.Entries[uid] = name
	}

	return nil
}

func (m *CustomFormatMap) Marshal() ([]byte, error) {
	var buf []byte
	for uid, name := range m.Entries {
		var eb []byte
		eb = pbwire.AppendString(eb, fCFMEntryUID, uid)
		eb = pbwire.AppendString(eb, fCFMEntryName, name)
		buf = pbwire.AppendBytes(buf, fCFMEntries, eb)
	}
	return buf, nil
}
