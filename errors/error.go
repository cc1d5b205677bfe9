// Package errors defines the classified failure taxonomy for Scythe scans.
// Every file-level failure is classified before propagation; only missing and
// corrupt files are ever suppressed, and only under their respective policy
// flags.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
)

// MissingFileError occurs when a range's file is absent at read time
type MissingFileError struct {
	Path   string
	Start  int64
	Length int64
}

// Error returns a textual representation of this MissingFileError
func (e MissingFileError) Error() string {
	return fmt.Sprintf("File %s is missing (range %d+%d)", e.Path, e.Start, e.Length)
}

// CorruptFileError occurs when a range's content is structurally invalid,
// truncated, or fails with any other I/O or runtime error while decoding
type CorruptFileError struct {
	Path   string
	Start  int64
	Length int64
	Cause  error
}

// Error returns a textual representation of this CorruptFileError
func (e CorruptFileError) Error() string {
	return fmt.Sprintf("File %s is corrupt (range %d+%d): %v", e.Path, e.Start, e.Length, e.Cause)
}

// Unwrap returns the underlying read failure
func (e CorruptFileError) Unwrap() error {
	return e.Cause
}

// SchemaIncompatibleError occurs when a file's on-disk schema conflicts with
// the requested logical or physical type. It is never suppressed.
type SchemaIncompatibleError struct {
	Path   string
	Column string
	Reason string
}

// Error returns a textual representation of this SchemaIncompatibleError
func (e SchemaIncompatibleError) Error() string {
	return fmt.Sprintf("File %s has an incompatible schema for column %s: %s", e.Path, e.Column, e.Reason)
}

// VersionIncompatibleError occurs when file content was written by an
// incompatible producer version. It is never suppressed, and is re-raised
// as-is even under the ignore-corrupt policy.
type VersionIncompatibleError struct {
	Path    string
	Version string
}

// Error returns a textual representation of this VersionIncompatibleError
func (e VersionIncompatibleError) Error() string {
	return fmt.Sprintf("File %s was written by incompatible version %s", e.Path, e.Version)
}

// TaskCancelledError occurs when cooperative cancellation is observed at a
// scan suspension point
type TaskCancelledError struct {
	Cause error
}

// Error returns a textual representation of this TaskCancelledError
func (e TaskCancelledError) Error() string {
	return fmt.Sprintf("Task cancelled: %v", e.Cause)
}

// Unwrap returns the context error which signalled cancellation
func (e TaskCancelledError) Unwrap() error {
	return e.Cause
}

// EndOfSequenceError occurs when a record is requested from an exhausted iterator
type EndOfSequenceError struct{}

// Error returns a textual representation of this EndOfSequenceError
func (e EndOfSequenceError) Error() string {
	return "No more records"
}

// IsMissing returns true iff err is classified as a missing file
func IsMissing(err error) bool {
	var target MissingFileError
	return stderrors.As(err, &target)
}

// IsCorrupt returns true iff err is classified as a corrupt file
func IsCorrupt(err error) bool {
	var target CorruptFileError
	return stderrors.As(err, &target)
}

// IsSchemaIncompatible returns true iff err is classified as a schema conflict
func IsSchemaIncompatible(err error) bool {
	var target SchemaIncompatibleError
	return stderrors.As(err, &target)
}

// IsVersionIncompatible returns true iff err is classified as a producer version conflict
func IsVersionIncompatible(err error) bool {
	var target VersionIncompatibleError
	return stderrors.As(err, &target)
}

// IsCancelled returns true iff err is classified as cooperative cancellation
func IsCancelled(err error) bool {
	var target TaskCancelledError
	return stderrors.As(err, &target)
}

// IsEndOfSequence returns true iff err signals iterator exhaustion
func IsEndOfSequence(err error) bool {
	var target EndOfSequenceError
	return stderrors.As(err, &target)
}

// Classify translates a read failure for the given range into the scan failure
// taxonomy. Already-classified failures pass through unchanged; absent files
// become MissingFileError, observed cancellation becomes TaskCancelledError,
// and everything else becomes CorruptFileError wrapping the cause.
func Classify(path string, start int64, length int64, err error) error {
	if err == nil {
		return nil
	}
	if IsMissing(err) || IsCorrupt(err) || IsSchemaIncompatible(err) || IsVersionIncompatible(err) || IsCancelled(err) {
		return err
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return MissingFileError{Path: path, Start: start, Length: length}
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return TaskCancelledError{Cause: err}
	}
	return CorruptFileError{Path: path, Start: start, Length: length, Cause: err}
}
