package build

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrNoSchema indicates Run was called without a schema.
	ErrNoSchema = errors.New("effectschema: no schema to generate")
	// ErrUnknownTarget indicates the requested output target has no printer.
	ErrUnknownTarget = errors.New("effectschema: unknown target")
	// ErrInvalidOutput indicates an output directory that cannot be replaced as a whole.
	ErrInvalidOutput = errors.New("effectschema: invalid output directory")
	// ErrWriteFailed indicates an output file or directory could not be written.
	ErrWriteFailed = errors.New("effectschema: write failed")
)

// WriteError represents a filesystem failure while producing output.
type WriteError struct {
	Path  string // File or directory being written
	Op    string // mkdir, write, rename, ...
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("effectschema: %s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for WriteError.
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}
