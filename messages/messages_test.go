package messages

import (
	"testing"

	"github.com/iwahq/numbers/format"
	"github.com/iwahq/numbers/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableInfoMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &TableInfo{
		TileID:       10,
		NumRows:      5,
		NumCols:      3,
		Name:         "Table 1",
		CalcEngineID: 20,
		MergeRanges: []MergeRange{
			{Row: 1, Col: 2, RowSpan: 2, ColSpan: 1},
		},
	}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &TableInfo{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
}

func TestTableInfoReferencesIncludesTileAndCalcEngine(t *testing.T) {
	ti := &TableInfo{TileID: 10, CalcEngineID: 20}
	assert.ElementsMatch(t, []uint64{10, 20}, ti.References())

	ti2 := &TableInfo{TileID: 10}
	assert.Equal(t, []uint64{10}, ti2.References())
}

func TestTileMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &Tile{
		RowStart:    0,
		ColStart:    0,
		NumRows:     2,
		CellBuffers: [][]byte{{1, 2, 3}, {4, 5}},
	}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &Tile{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
}

func TestDataListMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &DataList{
		Kind: DataListStrings,
		Entries: []DataListEntry{
			{Key: 1, Refcount: 2, Payload: []byte("hello")},
			{Key: 2, Refcount: 1, Payload: []byte("world")},
		},
	}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &DataList{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
}

func TestDataListByKey(t *testing.T) {
	d := &DataList{Entries: []DataListEntry{{Key: 7, Payload: []byte("x")}}}

	entry, ok := d.ByKey(7)
	require.True(t, ok)
	assert.Equal(t, []byte("x"), entry.Payload)

	_, ok = d.ByKey(99)
	assert.False(t, ok)
}

func TestCalculationEngineMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &CalculationEngine{
		OwnerUID: "uid-1",
		Formulas: []FormulaCellRef{
			{Row: 0, Col: 0, FormulaKey: 1, ASTKey: 2},
			{Row: 1, Col: 3, FormulaKey: 3, ASTKey: 4},
		},
	}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &CalculationEngine{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
}

func TestCalculationEngineResolveCell(t *testing.T) {
	c := &CalculationEngine{Formulas: []FormulaCellRef{{Row: 2, Col: 1, FormulaKey: 5}}}

	ref, ok := c.ResolveCell(2, 1)
	require.True(t, ok)
	assert.Equal(t, int32(5), ref.FormulaKey)

	_, ok = c.ResolveCell(9, 9)
	assert.False(t, ok)
}

func TestFormatMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &Format{
		FormatType:                  format.FormatDecimal,
		CustomUID:                   "uid-custom",
		DateTimeFormat:              "yyyy-MM-dd",
		DurationStyle:               format.DurationStyleShort,
		DurationUnitLargest:         4,
		DurationUnitSmallest:        8,
		DurationUseAutomaticUnits:   true,
		CustomFormatString:          "#,##0.00",
		ScaleFactor:                 1,
		CurrencyCode:                "USD",
		NumNonspaceIntegerDigits:    1,
		NumNonspaceDecimalDigits:    2,
		ShowThousandsSeparator:      true,
		FractionAccuracy:            -2,
		RequiresFractionReplacement: false,
	}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &Format{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
}

func TestFormatUnmarshalDefaultsScaleFactorToOne(t *testing.T) {
	in := &Format{}
	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &Format{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, float64(1), out.ScaleFactor)
}

func TestASTNodeArrayMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &ASTNodeArray{
		OwnerUID: "uid-ast",
		Nodes: []ASTNode{
			{Kind: format.NodeNumber, Number: 42},
			{Kind: format.NodeCellReference, Row: -3, Col: -2, RowAbsolute: true, TableUID: "tbl-2"},
			{Kind: format.NodeColonTract, IsRange: true, RowEnd: 4, ColEnd: 2},
		},
	}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &ASTNodeArray{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
}

func TestSheetInfoMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &SheetInfo{Name: "Sheet 1", TableInfoIDs: []uint64{1, 2, 3}}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &SheetInfo{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
	assert.Equal(t, []uint64{1, 2, 3}, out.References())
}

func TestDocumentRootMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &DocumentRoot{SheetIDs: []uint64{5, 6}}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &DocumentRoot{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
	assert.Equal(t, []uint64{5, 6}, out.References())
}

func TestCustomFormatMapMarshalUnmarshalRoundTrip(t *testing.T) {
	in := &CustomFormatMap{Entries: map[string]string{"uid-1": "My Format"}}

	buf, err := in.Marshal()
	require.NoError(t, err)

	out := &CustomFormatMap{}
	require.NoError(t, out.Unmarshal(buf))
	assert.Equal(t, in, out)
}

func TestTileDecodeSkipsEmptyBuffers(t *testing.T) {
	tile := &Tile{CellBuffers: [][]byte{nil, {}}}

	records, err := tile.Decode(func(int32) string { return "" })
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Nil(t, records[0])
	assert.Nil(t, records[1])
}

func TestRegistryBootstrapsAllMessageTypes(t *testing.T) {
	ids := []uint32{
		IDTableInfo, IDTile, IDDataList, IDCalcEngine, IDFormat,
		IDASTNodeArray, IDCustomFormatMap, IDSheetInfo, IDDocumentRoot,
	}

	for _, id := range ids {
		msg, ok := registry.Default.New(id)
		require.True(t, ok, "id %d", id)
		assert.NotNil(t, msg)
	}
}
