package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStoreUnavailable  = errors.New("document store unreachable")
	ErrUnsupportedFormat = errors.New("unsupported input file format")
)

// StructuralError indicates the input file is missing required columns.
// It is fatal for the whole file; nothing from the file is persisted.
type StructuralError struct {
	Missing []string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("invalid input structure: missing columns: %s", strings.Join(e.Missing, ", "))
}

// ValidationError indicates a row carries an unparsable numeric field.
// Like StructuralError it aborts the whole file.
type ValidationError struct {
	Row   int
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: field %q: cannot parse %q as a number", e.Row, e.Field, e.Value)
}

// BulkError reports per-document failures from one unordered bulk write.
// It is a soft failure: the caller logs it and continues with the
// remaining chunks and the other partition.
type BulkError struct {
	Collection string
	Failures   []BulkFailure
}

// BulkFailure describes a single rejected document within a bulk write.
type BulkFailure struct {
	Index   int
	Code    int
	Message string
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk write to %s: %d of the documents were rejected", e.Collection, len(e.Failures))
}
