// Package numbers reads and writes Apple Numbers ".numbers" documents: the
// zip/package container, the IWA archive segments inside it, and the
// table/sheet/cell structure they decode into.
//
// # Basic usage
//
// Opening a document and walking its tables:
//
//	doc, err := numbers.Open("budget.numbers")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, sheet := range doc.Sheets() {
//	    tables, _ := sheet.Tables()
//	    for _, t := range tables {
//	        for _, row := range t.Rows() {
//	            for _, cell := range row {
//	                fmt.Println(cell.FormattedValue())
//	            }
//	        }
//	    }
//	}
//
// Cells that aren't empty also expose their raw Value, and, if the table
// carries a calculation engine, their Formula text.
//
// # Package structure
//
// This package provides a convenient top-level entry point around the
// container, registry, and table packages, covering the common case of
// opening a document with the default message set. For direct access to
// the object store, the IWA codec, or a reduced registry (as in tests),
// use those packages directly.
package numbers

import (
	"strings"

	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/internal/options"
	"github.com/iwahq/numbers/registry"
	"github.com/iwahq/numbers/table"
)

// Document is an open Numbers document.
type Document = table.Document

// Sheet is one sheet (tab) of a Document.
type Sheet = table.Sheet

// Table is one table on a Sheet.
type Table = table.Table

// Cell is one decoded table cell.
type Cell = table.Cell

type openConfig struct {
	reg           *registry.Registry
	strictVersion bool
}

// OpenOption configures Open.
type OpenOption = options.Option[*openConfig]

// WithRegistry opens the document against a caller-supplied message
// registry instead of registry.Default. Use this to read a document with
// only a reduced set of message types registered, or to layer in
// additional ones.
func WithRegistry(reg *registry.Registry) OpenOption {
	return options.NoError(func(o *openConfig) { o.reg = reg })
}

// WithStrictVersion makes Open fail outright when the document's
// fileFormatVersion isn't one this library has been validated against
// (container.SupportedVersions), instead of the default behavior of
// warning and attempting to read it anyway (spec.md §4.6).
func WithStrictVersion() OpenOption {
	return options.NoError(func(o *openConfig) { o.strictVersion = true })
}

// Open reads a Numbers document from path, which may be a single zip
// file or a ".numbers" package directory.
//
// By default, an unrecognized file format version is a non-fatal warning
// recorded on Document.Diagnostics; pass WithStrictVersion to fail
// instead.
func Open(path string, opts ...OpenOption) (*Document, error) {
	o := &openConfig{reg: registry.Default}
	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	doc, err := table.OpenWith(o.reg, path)
	if err != nil {
		return nil, err
	}

	if o.strictVersion {
		for _, d := range doc.Diagnostics() {
			if strings.Contains(d.Message, "unrecognized file format version") {
				return nil, &errs.UnsupportedError{What: d.Message}
			}
		}
	}

	return doc, nil
}

// Save writes doc back out to path: a ".numbers" package directory when
// asPackage is set, otherwise a single zip file.
func Save(doc *Document, path string, asPackage bool) error {
	return doc.Save(path, asPackage)
}
