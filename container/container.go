// Package container implements the Numbers package reader/writer: walking
// a zip or folder form, routing every inner entry to either the IWA
// decoder or the raw blob store, and the reverse on save.
//
// Grounded on file.py's read_numbers_file_contents/write_numbers_file and
// on spec.md §4.6.
package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iwahq/numbers/internal/errs"
	"github.com/iwahq/numbers/iwa"
	"github.com/iwahq/numbers/objectstore"
	"github.com/iwahq/numbers/registry"
	"howett.net/plist"
)

// SupportedVersions is the set of fileFormatVersion strings this library
// has been validated against. Anything else is a non-fatal warning
// (spec.md §4.6), matching test_document_version's no_warn-less behavior.
var SupportedVersions = map[string]bool{
	"409": true, "410": true, "411": true, "412": true,
	"504": true, "505": true, "602": true,
}

// Properties is the subset of Metadata/Properties.plist this module reads.
type Properties struct {
	FileFormatVersion string `plist:"fileFormatVersion"`
}

// Blob is a raw, non-IWA package entry (images, plists, etc.).
type Blob struct {
	Path string
	Data []byte
}

// Document is the decoded contents of a Numbers package: the object store
// built from every .iwa entry, plus every non-IWA blob kept for
// byte-identical round-trip.
type Document struct {
	Store       *objectstore.Store
	Blobs       map[string]*Blob
	IsPackage   bool
	SourcePath  string
	Diagnostics *errs.Sink
}

// Open reads a Numbers document from path, which may be a single zip file
// or a ".numbers" package directory.
func Open(reg *registry.Registry, path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("container: %w", &errs.FileError{Path: path, Err: err})
	}

	doc := &Document{
		Store:       objectstore.New(reg),
		Blobs:       make(map[string]*Blob),
		SourcePath:  path,
		Diagnostics: &errs.Sink{},
	}

	if info.IsDir() {
		doc.IsPackage = true

		if !strings.HasSuffix(path, ".numbers") {
			return nil, &errs.FileFormatError{Context: "invalid Numbers document (not a .numbers directory)"}
		}

		if err := checkVersion(path, doc.Diagnostics); err != nil {
			return nil, err
		}

		if err := readDir(reg, path, path, doc); err != nil {
			return nil, err
		}

		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("container: %w", &errs.FileError{Path: path, Err: err})
	}

	if err := readZip(reg, data, doc); err != nil {
		return nil, err
	}

	if blob, ok := doc.Blobs["Metadata/Properties.plist"]; ok {
		checkVersionBytes(blob.Data, doc.Diagnostics)
	}

	return doc, nil
}

// checkVersion reads and fail-fast validates Metadata/Properties.plist
// under a package directory, then warns (rather than fails) if its
// fileFormatVersion isn't one this library has been validated against
// (spec.md §4.6).
func checkVersion(dir string, diag *errs.Sink) error {
	data, err := os.ReadFile(filepath.Join(dir, "Metadata", "Properties.plist"))
	if err != nil {
		return &errs.FileFormatError{Context: "invalid Numbers document (missing files)", Err: err}
	}

	var props Properties
	if _, err := plist.Unmarshal(data, &props); err != nil {
		return &errs.FileFormatError{Context: "invalid Numbers document (bad Properties.plist)", Err: err}
	}

	if props.FileFormatVersion != "" && !SupportedVersions[props.FileFormatVersion] {
		diag.Warnf("", "unrecognized file format version %q, attempting to read anyway", props.FileFormatVersion)
	}

	return nil
}

// checkVersionBytes applies the same warn-only version check to an
// already-read Properties.plist blob (the zip-file open path).
func checkVersionBytes(data []byte, diag *errs.Sink) {
	var props Properties
	if _, err := plist.Unmarshal(data, &props); err != nil {
		return
	}

	if props.FileFormatVersion != "" && !SupportedVersions[props.FileFormatVersion] {
		diag.Warnf("", "unrecognized file format version %q, attempting to read anyway", props.FileFormatVersion)
	}
}

func readDir(reg *registry.Registry, root, dir string, doc *Document) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("container: %w", &errs.FileError{Path: dir, Err: err})
	}

	for _, de := range entries {
		full := filepath.Join(dir, de.Name())

		if de.IsDir() {
			if err := readDir(reg, root, full, doc); err != nil {
				return err
			}
			continue
		}

		rel, _ := filepath.Rel(root, full)
		rel = filepath.ToSlash(rel)

		if strings.EqualFold(de.Name(), ".iwph") {
			return errs.ErrEncryptedDocument
		}

		if strings.EqualFold(de.Name(), "index.zip") {
			data, err := os.ReadFile(full)
			if err != nil {
				return fmt.Errorf("container: %w", &errs.FileError{Path: full, Err: err})
			}

			if err := readZip(reg, data, doc); err != nil {
				return err
			}
			continue
		}

		data, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("container: %w", &errs.FileError{Path: full, Err: err})
		}

		if strings.HasSuffix(strings.ToLower(rel), ".iwa") {
			if err := extractIWA(reg, data, rel, doc); err != nil {
				return err
			}
			continue
		}

		doc.Blobs[rel] = &Blob{Path: rel, Data: data}
	}

	return nil
}

func readZip(reg *registry.Registry, data []byte, doc *Document) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return &errs.FileFormatError{Context: "invalid Numbers document", Err: err}
	}

	for _, f := range zr.File {
		name := f.Name

		if strings.EqualFold(filepath.Base(name), ".iwph") {
			return errs.ErrEncryptedDocument
		}

		rc, err := f.Open()
		if err != nil {
			return &errs.FileFormatError{Context: "invalid Numbers document", Err: err}
		}

		blob, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return &errs.FileFormatError{Context: "invalid Numbers document", Err: err}
		}

		if strings.HasSuffix(strings.ToLower(name), "index.zip") {
			if err := readZip(reg, blob, doc); err != nil {
				return err
			}
			continue
		}

		if strings.HasSuffix(strings.ToLower(name), ".iwa") {
			if err := extractIWA(reg, blob, name, doc); err != nil {
				return err
			}
			continue
		}

		doc.Blobs[name] = &Blob{Path: name, Data: blob}
	}

	return nil
}

func extractIWA(reg *registry.Registry, blob []byte, name string, doc *Document) error {
	if len(blob) < 4 || blob[0] != 0x00 {
		// Not a genuine IWA blob despite the extension; keep it raw.
		doc.Blobs[name] = &Blob{Path: name, Data: blob}
		return nil
	}

	f, err := iwa.Decode(reg, blob)
	if err != nil {
		return fmt.Errorf("container: %s: invalid IWA file: %w", name, err)
	}

	doc.Store.AddFile(name, f)

	return nil
}

// Save writes doc back out to path. If asPackage, it writes a ".numbers"
// folder containing Index.zip plus every raw blob; otherwise it writes a
// single zip containing everything, IWA entries re-encoded.
func Save(reg *registry.Registry, doc *Document, path string, asPackage bool) error {
	if err := doc.Store.FlushDirty(); err != nil {
		return err
	}

	paths := sortedIWAPaths(doc.Store.Files())

	if asPackage {
		return savePackage(reg, doc, path, paths)
	}

	return saveZip(reg, doc, path, paths)
}

func sortedIWAPaths(files map[string]*iwa.File) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

func savePackage(reg *registry.Registry, doc *Document, path string, iwaPaths []string) error {
	info, statErr := os.Stat(path)
	switch {
	case statErr == nil && !info.IsDir():
		return &errs.FileFormatError{Context: "cannot overwrite Numbers document file with package"}
	case statErr == nil && !strings.HasSuffix(path, ".numbers"):
		return &errs.FileFormatError{Context: "invalid Numbers document (not a .numbers directory)"}
	case statErr != nil:
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("container: %w", &errs.FileError{Path: path, Err: err})
		}
	}

	indexPath := filepath.Join(path, "Index.zip")

	f, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("container: %w", &errs.FileError{Path: indexPath, Err: err})
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	for _, p := range iwaPaths {
		data, err := doc.Store.Files()[p].Encode(reg)
		if err != nil {
			return err
		}

		w, err := zw.Create(p)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return err
	}

	for _, blob := range doc.Blobs {
		full := filepath.Join(path, filepath.FromSlash(blob.Path))

		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("container: %w", &errs.FileError{Path: full, Err: err})
		}

		if err := os.WriteFile(full, blob.Data, 0o644); err != nil {
			return fmt.Errorf("container: %w", &errs.FileError{Path: full, Err: err})
		}
	}

	return nil
}

func saveZip(reg *registry.Registry, doc *Document, path string, iwaPaths []string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return &errs.FileFormatError{Context: "cannot overwrite Numbers package with file"}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("container: %w", &errs.FileError{Path: path, Err: err})
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	for _, p := range iwaPaths {
		data, err := doc.Store.Files()[p].Encode(reg)
		if err != nil {
			return err
		}

		w, err := zw.Create(p)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	blobPaths := make([]string, 0, len(doc.Blobs))
	for p := range doc.Blobs {
		blobPaths = append(blobPaths, p)
	}
	sort.Strings(blobPaths)

	for _, p := range blobPaths {
		w, err := zw.Create(p)
		if err != nil {
			return err
		}
		if _, err := w.Write(doc.Blobs[p].Data); err != nil {
			return err
		}
	}

	return zw.Close()
}
