package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileError(t *testing.T) {
	wrapped := errors.New("permission denied")
	err := &FileError{Path: "budget.numbers", Err: wrapped}

	assert.Equal(t, `numbers: file "budget.numbers": permission denied`, err.Error())
	assert.ErrorIs(t, err, wrapped)
}

func TestFileFormatError(t *testing.T) {
	t.Run("without wrapped error", func(t *testing.T) {
		err := &FileFormatError{Context: "invalid Numbers document (missing files)"}
		assert.Equal(t, "numbers: invalid Numbers document (missing files)", err.Error())
		assert.NoError(t, err.Unwrap())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		wrapped := errors.New("truncated")
		err := &FileFormatError{Context: "bad Properties.plist", Err: wrapped}
		assert.Equal(t, "numbers: bad Properties.plist: truncated", err.Error())
		assert.ErrorIs(t, err, wrapped)
	})
}

func TestUnsupportedError(t *testing.T) {
	err := &UnsupportedError{What: "cell storage version 7"}
	assert.Equal(t, "numbers: unsupported cell storage version 7", err.Error())
}

func TestFormulaError(t *testing.T) {
	err := &FormulaError{Formula: "=SUM(A1:A5", Reason: "unbalanced parentheses"}
	assert.Equal(t, `numbers: formula "=SUM(A1:A5": unbalanced parentheses`, err.Error())
}

func TestUnsupportedWarning(t *testing.T) {
	t.Run("without coordinate", func(t *testing.T) {
		w := &UnsupportedWarning{Message: "unknown function index 512"}
		assert.Equal(t, "numbers: unknown function index 512", w.Error())
	})

	t.Run("with coordinate", func(t *testing.T) {
		w := &UnsupportedWarning{Coordinate: "Sheet 1::Table 1@[3,2]", Message: "unknown function index 512"}
		assert.Equal(t, "numbers: Sheet 1::Table 1@[3,2]: unknown function index 512", w.Error())
	})
}

func TestDiagnosticString(t *testing.T) {
	assert.Equal(t, "bad format", Diagnostic{Message: "bad format"}.String())
	assert.Equal(t, "Sheet 1::Table 1: bad format", Diagnostic{Coordinate: "Sheet 1::Table 1", Message: "bad format"}.String())
}

func TestSink(t *testing.T) {
	var s Sink

	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Items())

	s.Warnf("", "unrecognized file format version %q", "999")
	s.Warnf("Sheet 1::Table 1@[0,0]", "unknown function index %d", 512)

	require.Equal(t, 2, s.Len())

	items := s.Items()
	assert.Equal(t, `unrecognized file format version "999"`, items[0].Message)
	assert.Equal(t, "", items[0].Coordinate)
	assert.Equal(t, "unknown function index 512", items[1].Message)
	assert.Equal(t, "Sheet 1::Table 1@[0,0]", items[1].Coordinate)
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrMalformedFraming, ErrMalformedArchive, ErrTruncatedArchive,
		ErrUnknownMessage, ErrEncryptedDocument, ErrNotAPackage,
		ErrNoSuchObject, ErrInvalidHeaderSize, ErrUnsupportedCellVersion,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}
