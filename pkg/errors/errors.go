// Package errors provides structured error types for plotkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the C boundary, CLI, and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - Stable, human-readable messages for the last-error channel
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures, detected before any rendering
//   - FONT_ERROR: Embedded font asset failures (cached for process lifetime)
//   - RENDER_ERROR: Failures reported by the chart engine or file I/O
//   - INTERNAL_PANIC: Contained runtime faults
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRange, "x_min (%g) must be less than x_max (%g)", lo, hi)
//	if errors.Is(err, errors.ErrCodeInvalidRange) {
//	    // Handle validation error
//	}
//
//	// Wrap engine errors
//	err := errors.Wrap(errors.ErrCodeRender, engineErr, "failed to draw mesh")
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
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidRange      Code = "INVALID_RANGE"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Asset errors
	ErrCodeFont Code = "FONT_ERROR"

	// Engine errors
	ErrCodeRender Code = "RENDER_ERROR"

	// Contained faults
	ErrCodePanic Code = "INTERNAL_PANIC"
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
// For *Error types, returns the message without the code prefix
// (the cause, if any, is appended since engine diagnostics matter
// to callers reading the last-error channel).
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err is any of the validation error codes.
// Validation errors are detected before any rendering work and never
// leave partial output behind.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidRange, ErrCodeInvalidDimensions, ErrCodeInvalidPath:
		return true
	}
	return false
}
