// Package errors provides structured error types for fractiongen.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, the pipeline and the CLI
//   - Machine-readable reason codes for per-sample batch reports
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes are grouped by where the failure originates:
//   - INVALID_*: option and argument validation failures
//   - MALFORMED_GLYPH, SOURCE_READ, EMPTY_POOL: bad or missing input data
//   - LAYOUT_OVERFLOW: geometry that does not fit the canvas
//   - WRITE_FAILED, INTERNAL_ERROR: output and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedGlyph, "no ink in %s", path)
//	if errors.Is(err, errors.ErrCodeMalformedGlyph) {
//	    // skip this sample
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceRead, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidVariant Code = "INVALID_VARIANT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Input data errors
	ErrCodeMalformedGlyph Code = "MALFORMED_GLYPH"
	ErrCodeSourceRead     Code = "SOURCE_READ"
	ErrCodeEmptyPool      Code = "EMPTY_POOL"

	// Geometry errors
	ErrCodeLayoutOverflow Code = "LAYOUT_OVERFLOW"

	// Output and internal errors
	ErrCodeWriteFailed Code = "WRITE_FAILED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
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

// CodeOf is like GetCode but maps uncoded non-nil errors to ErrCodeInternal.
// It returns the empty code for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if c := GetCode(err); c != "" {
		return c
	}
	return ErrCodeInternal
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
