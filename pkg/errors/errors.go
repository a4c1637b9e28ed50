// Package errors provides structured error types for the stratum application.
//
// The core packages report failures with sentinel errors. This package maps
// them to machine-readable codes so the CLI and any caller can:
//   - react to a failure kind without string matching
//   - show the user a message without internal prefixes
//   - keep the original error in the chain for errors.Is/As
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: input validation failures (files, flags, adjacency)
//   - *_NOT_FOUND: missing resources
//   - UNREACHABLE_NODE, INCONSISTENT_FACE_TRACE: fatal decomposition failures
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "line %d: expected 3 fields", n)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle malformed input
//	}
//
//	// Attach a code to an error from the core packages
//	err := errors.Classify(transform.AssignLevels(g))
package errors

import (
	"errors"
	"fmt"

	"github.com/matzehuels/stratum/pkg/planar"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Decomposition errors
	ErrCodeDuplicateNode         Code = "DUPLICATE_NODE"
	ErrCodeInvalidAdjacency      Code = "INVALID_ADJACENCY"
	ErrCodeUnreachableNode       Code = "UNREACHABLE_NODE"
	ErrCodeInconsistentFaceTrace Code = "INCONSISTENT_FACE_TRACE"
	ErrCodeDegenerateSliceOrigin Code = "DEGENERATE_SLICE_ORIGIN"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// classes maps core sentinels to codes, checked in order.
var classes = []struct {
	target error
	code   Code
}{
	{planar.ErrDuplicateNode, ErrCodeDuplicateNode},
	{planar.ErrInvalidAdjacency, ErrCodeInvalidAdjacency},
	{planar.ErrUnreachableNode, ErrCodeUnreachableNode},
	{planar.ErrInconsistentFaceTrace, ErrCodeInconsistentFaceTrace},
	{planar.ErrDegenerateSliceOrigin, ErrCodeDegenerateSliceOrigin},
	{planar.ErrPhaseOrder, ErrCodeInternal},
}

// Classify attaches a code to an error returned by the planar packages.
// Errors that already carry a code are returned unchanged, nil stays nil,
// and anything unrecognized becomes INTERNAL_ERROR.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	for _, c := range classes {
		if errors.Is(err, c.target) {
			return &Error{Code: c.code, Message: err.Error(), Cause: err}
		}
	}
	return &Error{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
}

// Fatal reports whether err aborts initialization. Only slice queries can
// fail without invalidating the model.
func Fatal(err error) bool {
	return err != nil && !Is(err, ErrCodeDegenerateSliceOrigin)
}
