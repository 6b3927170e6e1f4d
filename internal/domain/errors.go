package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrOutputDirMissing indicates the build output directory does not exist
	ErrOutputDirMissing = errors.New("build output directory not found")

	// ErrCacheMiss indicates a revision cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrWriteFailed indicates writing the manifest failed
	ErrWriteFailed = errors.New("write failed")
)

// SourceReadError represents a failure reading a file whose content hash is
// required for the manifest. It aborts the whole transform; no partial
// manifest is produced.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read error for %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// NewSourceReadError creates a new SourceReadError
func NewSourceReadError(path string, err error) *SourceReadError {
	return &SourceReadError{Path: path, Err: err}
}

// PatternError represents a glob pattern that failed to compile
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
