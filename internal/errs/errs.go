// Package errs defines the sentinel errors and error categories shared
// across the codec, object store, and facade packages.
//
// Every error raised by this module belongs to one of the five categories
// described for the public API: FileError, FileFormatError, UnsupportedError,
// FormulaError, and UnsupportedWarning. Sentinels are declared here so
// callers can use errors.Is instead of string matching.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for fatal load failures (file missing, malformed
// framing, truncated archives, encrypted documents).
var (
	ErrMalformedFraming  = errors.New("iwa: malformed chunk framing")
	ErrMalformedArchive  = errors.New("iwa: malformed archive segment header")
	ErrTruncatedArchive  = errors.New("iwa: archive payload truncated")
	ErrUnknownMessage    = errors.New("iwa: unknown protobuf message type")
	ErrEncryptedDocument = errors.New("numbers: document is encrypted")
	ErrNotAPackage       = errors.New("numbers: not a valid .numbers package")
	ErrNoSuchObject      = errors.New("numbers: no object with that identifier")
	ErrInvalidHeaderSize = errors.New("numbers: invalid cell storage header size")
	ErrUnsupportedCellVersion = errors.New("numbers: unsupported cell storage version")
)

// FileError wraps an I/O level failure (not found, permission denied).
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("numbers: file %q: %v", e.Path, e.Err) }
func (e *FileError) Unwrap() error { return e.Err }

// FileFormatError wraps a malformed package or IWA structure.
type FileFormatError struct {
	Context string
	Err     error
}

func (e *FileFormatError) Error() string {
	if e.Err == nil {
		return "numbers: " + e.Context
	}

	return fmt.Sprintf("numbers: %s: %v", e.Context, e.Err)
}
func (e *FileFormatError) Unwrap() error { return e.Err }

// UnsupportedError is raised for a recognized-but-unhandled structure:
// an unsupported cell-storage version, unknown cell type, or encryption.
type UnsupportedError struct {
	What string
}

func (e *UnsupportedError) Error() string { return "numbers: unsupported " + e.What }

// FormulaError is raised when a textual formula cannot be tokenized or
// converted into an AST node array on the write path.
type FormulaError struct {
	Formula string
	Reason  string
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("numbers: formula %q: %s", e.Formula, e.Reason)
}

// UnsupportedWarning is a non-fatal decode gap: an unknown function index,
// an unsupported formula node kind, or a missing formula key. Decoders
// collect these on a Diagnostic sink rather than aborting the load.
type UnsupportedWarning struct {
	Coordinate string // e.g. "Sheet 1::Table 1@[3,2]"
	Message    string
}

func (w *UnsupportedWarning) Error() string {
	if w.Coordinate == "" {
		return "numbers: " + w.Message
	}

	return fmt.Sprintf("numbers: %s: %s", w.Coordinate, w.Message)
}

// Diagnostic is the value form of UnsupportedWarning, collected onto a
// Document instead of logged, so callers can inspect decode gaps after
// a successful (non-fatal) load.
type Diagnostic struct {
	Coordinate string
	Message    string
}

func (d Diagnostic) String() string {
	if d.Coordinate == "" {
		return d.Message
	}

	return d.Coordinate + ": " + d.Message
}

// Sink collects non-fatal decode-gap diagnostics during a load or render.
type Sink struct {
	items []Diagnostic
}

// Warnf appends a formatted diagnostic for the given cell coordinate.
func (s *Sink) Warnf(coordinate, format string, args ...any) {
	s.items = append(s.items, Diagnostic{Coordinate: coordinate, Message: fmt.Sprintf(format, args...)})
}

// Items returns all diagnostics collected so far, oldest first.
func (s *Sink) Items() []Diagnostic {
	return s.items
}

// Len reports how many diagnostics have been collected.
func (s *Sink) Len() int { return len(s.items) }
