package csv

import (
	"errors"
	"fmt"
)

var (
	// ErrNilBuffer is returned when a nil buffer or line is passed in.
	// An empty, non-nil buffer is valid.
	ErrNilBuffer = errors.New("csv: nil buffer")

	// ErrFieldIndex indicates a field index outside [0, FieldCount).
	ErrFieldIndex = errors.New("csv: field index out of range")

	// ErrNodeShape is returned by ASTRecords for a tree BuildAST could not
	// have produced.
	ErrNodeShape = errors.New("csv: unexpected AST node")
)

// IndexError reports an out-of-range field access on a row.
// It wraps ErrFieldIndex.
type IndexError struct {
	// Row is the 0-based data row index.
	Row int
	// Index is the requested field index.
	Index int
	// Count is the number of fields in the row.
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("csv: row %d: field index %d out of range [0,%d)", e.Row, e.Index, e.Count)
}

// Unwrap returns ErrFieldIndex.
func (e *IndexError) Unwrap() error {
	return ErrFieldIndex
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
