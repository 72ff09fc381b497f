// Package errors provides structured error types for the faceplate application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Spec validation failures (bad openings, dimensions, colors)
//   - NOT_FOUND_*: Missing resources (spec files, templates, openings)
//   - RENDER_*: Drawing assembly and encoding failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownOpening, "unknown opening id: %s", id)
//	if errors.Is(err, errors.ErrCodeUnknownOpening) {
//	    // Handle the bad reference
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTemplate, origErr, "load template %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Spec validation errors
	ErrCodeInvalidSpec      Code = "INVALID_SPEC"
	ErrCodeInvalidOpening   Code = "INVALID_OPENING"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeInvalidPosition  Code = "INVALID_POSITION"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidLayerName Code = "INVALID_LAYER_NAME"

	// Reference errors
	ErrCodeUnknownOpening   Code = "UNKNOWN_OPENING"
	ErrCodeUnknownReference Code = "UNKNOWN_REFERENCE"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeSpecNotFound Code = "SPEC_NOT_FOUND"
	ErrCodeTemplate     Code = "TEMPLATE_ERROR"

	// Rendering errors
	ErrCodeRender Code = "RENDER_ERROR"
	ErrCodeEncode Code = "ENCODE_ERROR"
	ErrCodeExport Code = "EXPORT_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsConfiguration reports whether err is a spec configuration problem the
// user can fix by editing their input (as opposed to a resource or
// internal failure).
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidSpec, ErrCodeInvalidOpening, ErrCodeInvalidDimension,
		ErrCodeInvalidPosition, ErrCodeInvalidColor, ErrCodeInvalidFormat,
		ErrCodeUnknownOpening, ErrCodeUnknownReference, ErrCodeUnsupported:
		return true
	}
	return false
}
