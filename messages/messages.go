// Package messages implements the concrete protobuf message shapes an IWA
// archive segment can carry: table metadata, cell-storage tiles, the
// per-table data lists (strings, formats, styles, rich text, formulas),
// the calculation engine, format records, and AST node arrays.
//
// Apple ships no .proto descriptors with a document (spec.md §9's
// "Message registry bootstrapping" note): the field-number assignments
// below are this module's own convention, chosen to mirror the field
// ordering documented in cell_storage.py/formula.py, not a byte-exact
// reproduction of Apple's real descriptor pool (which is out of scope per
// spec.md §1's "bootstrap scripts... are thin shells over the core").
package messages

import (
	"github.com/iwahq/numbers/internal/pbwire"
	"github.com/iwahq/numbers/registry"
)

// Type names, used both as protobuf TypeName() values and as registry keys.
const (
	TypeNameTableInfo      = "TST.TableInfoArchive"
	TypeNameTile           = "TST.Tile"
	TypeNameDataList       = "TST.TableDataList"
	TypeNameCalcEngine     = "TSCE.CalculationEngineArchive"
	TypeNameFormat         = "TST.FormatArchive"
	TypeNameASTNodeArray   = "TSCE.ASTNodeArrayArchive"
	TypeNameCustomFormatMap = "TST.CustomFormatMapArchive"
	TypeNameSheetInfo      = "TSP.SheetArchive"
	TypeNameDocumentRoot   = "TSP.DocumentArchive"
)

// Bootstrap type IDs. Real Numbers documents assign these numerically in a
// much larger table (generated offline from the app's own descriptor pool,
// per spec.md §9); this module only needs a closed, self-consistent subset
// to round-trip the message kinds its decoder understands.
const (
	IDTableInfo       uint32 = 6001
	IDTile            uint32 = 6002
	IDDataList        uint32 = 6003
	IDCalcEngine      uint32 = 6004
	IDFormat          uint32 = 6005
	IDASTNodeArray    uint32 = 6006
	IDCustomFormatMap uint32 = 6007
	IDSheetInfo       uint32 = 6008
	IDDocumentRoot    uint32 = 6009
)

func init() {
	registry.Default.Register(IDTableInfo, TypeNameTableInfo, func() registry.Message { return &TableInfo{} })
	registry.Default.Register(IDTile, TypeNameTile, func() registry.Message { return &Tile{} })
	registry.Default.Register(IDDataList, TypeNameDataList, func() registry.Message { return &DataList{} })
	registry.Default.Register(IDCalcEngine, TypeNameCalcEngine, func() registry.Message { return &CalculationEngine{} })
	registry.Default.Register(IDFormat, TypeNameFormat, func() registry.Message { return &Format{} })
	registry.Default.Register(IDASTNodeArray, TypeNameASTNodeArray, func() registry.Message { return &ASTNodeArray{} })
	registry.Default.Register(IDCustomFormatMap, TypeNameCustomFormatMap, func() registry.Message { return &CustomFormatMap{} })
	registry.Default.Register(IDSheetInfo, TypeNameSheetInfo, func() registry.Message { return &SheetInfo{} })
	registry.Default.Register(IDDocumentRoot, TypeNameDocumentRoot, func() registry.Message { return &DocumentRoot{} })
}

// References implements objectstore.ReferenceSource for the embedded
// object-ID fields every message kind below carries.
func (t *TableInfo) References() []uint64 {
	refs := []uint64{t.TileID}
	if t.CalcEngineID != 0 {
		refs = append(refs, t.CalcEngineID)
	}
	return refs
}

func (t *Tile) References() []uint64 { return nil }

func (d *DataList) References() []uint64 { return nil }

func (c *CalculationEngine) References() []uint64 { return nil }

func (f *Format) References() []uint64 { return nil }

func (a *ASTNodeArray) References() []uint64 { return nil }

func (m *CustomFormatMap) References() []uint64 { return nil }

func (s *SheetInfo) References() []uint64 { return s.TableInfoIDs }

func (d *DocumentRoot) References() []uint64 { return d.SheetIDs }

var _ = pbwire.Fields // ensure pbwire is referenced if other files are trimmed
