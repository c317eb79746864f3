// Package table implements the public read facade described in spec.md
// §4.12: Document.Sheets(), Sheet.Tables(), Table.Cell(row, col) /
// Table.CellAt("B3"), Table.Rows(), IterRows/IterCols, and Table.MergeRanges,
// bridging the object store, cell-storage decoder, custom-format
// renderers, and formula engine into one cohesive read path.
//
// Grounded on document.py's Document/Sheet/Table classes.
package table

import (
	"github.com/iwahq/numbers/container"
	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/internal/memo"
	"github.com/iwahq/numbers/messages"
	"github.com/iwahq/numbers/registry"
)

// Document is an open Numbers document: its sheets, and the underlying
// container needed to save it back out.
type Document struct {
	doc  *container.Document
	reg  *registry.Registry
	root *messages.DocumentRoot

	sheets []*Sheet

	tableIdxCache *memo.Cache[struct{}, tableIndexResult]
}

type tableIndexResult struct {
	byUID           map[string]tableRef
	tableNameSheets map[string]map[string]bool
	err             error
}

type tableRef struct {
	sheetName, tableName string
}

// Open reads a Numbers document from path using the default message
// registry.
func Open(path string) (*Document, error) {
	return OpenWith(registry.Default, path)
}

// OpenWith reads a Numbers document from path using a caller-supplied
// registry, for tests that register a reduced message set.
func OpenWith(reg *registry.Registry, path string) (*Document, error) {
	cdoc, err := container.Open(reg, path)
	if err != nil {
		return nil, err
	}

	rootIDs := cdoc.Store.FindByType(messages.TypeNameDocumentRoot)
	if len(rootIDs) == 0 {
		return nil, &errs.FileFormatError{Context: "invalid Numbers document (missing document root)"}
	}

	rootMsg, err := cdoc.Store.Get(rootIDs[0])
	if err != nil {
		return nil, err
	}

	root, ok := rootMsg.(*messages.DocumentRoot)
	if !ok {
		return nil, &errs.FileFormatError{Context: "invalid Numbers document (document root has wrong type)"}
	}

	d := &Document{doc: cdoc, reg: reg, root: root}

	for _, sid := range root.SheetIDs {
		sheetMsg, err := cdoc.Store.Get(sid)
		if err != nil {
			return nil, err
		}

		info, ok := sheetMsg.(*messages.SheetInfo)
		if !ok {
			continue
		}

		d.sheets = append(d.sheets, &Sheet{doc: d, id: sid, info: info})
	}

	return d, nil
}

// Sheets returns every sheet in document order.
func (d *Document) Sheets() []*Sheet { return d.sheets }

// Diagnostics returns the non-fatal decode-gap warnings collected while
// opening the document and rendering formulas/formats since.
func (d *Document) Diagnostics() []errs.Diagnostic {
	if d.doc.Diagnostics == nil {
		return nil
	}
	return d.doc.Diagnostics.Items()
}

// Save writes the document back to path, as a package directory when
// asPackage is set, otherwise as a single zip file.
func (d *Document) Save(path string, asPackage bool) error {
	return container.Save(d.reg, d.doc, path, asPackage)
}

// ResolveTable implements formula.TableResolver: it maps a calculation
// engine's owner UID back to its sheet/table display names, and reports
// whether the table name alone is ambiguous across sheets (spec.md §4.11).
func (d *Document) ResolveTable(uid string) (sheetName, tableName string, ambiguous bool) {
	r, err := d.tableIndex()
	if err != nil {
		return "", "", false
	}

	ref, ok := r.byUID[uid]
	if !ok {
		return "", "", false
	}

	ambiguous = len(r.tableNameSheets[ref.tableName]) > 1
	return ref.sheetName, ref.tableName, ambiguous
}

// tableIndex builds the UID -> (sheet, table) lookup ResolveTable needs,
// memoizing it across calls the way numbers_cache.py memoizes derived
// per-document views (spec.md §5).
func (d *Document) tableIndex() (tableIndexResult, error) {
	if d.tableIdxCache == nil {
		d.tableIdxCache = memo.New[struct{}, tableIndexResult]()
	}

	r := d.tableIdxCache.GetOrCompute(struct{}{}, func() tableIndexResult {
		byUID := make(map[string]tableRef)
		counts := make(map[string]map[string]bool)

		for _, s := range d.sheets {
			tables, err := s.Tables()
			if err != nil {
				return tableIndexResult{err: err}
			}

			for _, t := range tables {
				if counts[t.Name()] == nil {
					counts[t.Name()] = make(map[string]bool)
				}
				counts[t.Name()][s.Name()] = true

				if t.calc == nil || t.calc.OwnerUID == "" {
					continue
				}
				byUID[t.calc.OwnerUID] = tableRef{sheetName: s.Name(), tableName: t.Name()}
			}
		}

		return tableIndexResult{byUID: byUID, tableNameSheets: counts}
	})

	return r, r.err
}
