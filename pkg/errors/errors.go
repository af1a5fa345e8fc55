// Package errors defines the coded errors shared by the engine, the pipeline,
// the CLI and the HTTP API.
//
// Every error a caller is expected to act on carries a [Code]. Codes are
// grouped by prefix:
//   - INVALID_*: the request is wrong (configuration, column names, input
//     data, format, path) and retrying it unchanged will fail again
//   - NOT_FOUND, FILE_NOT_FOUND: a stored run, a remote table or an input file
//     does not exist
//   - CANCELLED: the caller abandoned the run
//   - NETWORK_ERROR, STORAGE_ERROR: a backend could not be reached
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// The HTTP server turns codes into status codes and the CLI into exit codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "max_count must be at least 1, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidInput, readErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidColumn Code = "INVALID_COLUMN"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeCancelled Code = "CANCELLED"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeStorage Code = "STORAGE_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Invalid reports whether the code marks a bad request.
func (c Code) Invalid() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Missing reports whether the code marks an absent resource.
func (c Code) Missing() bool {
	return c == ErrCodeNotFound || c == ErrCodeFileNotFound
}

// Error is an error with a code, a message for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without code or
// cause, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Process exit codes returned by ExitCode.
const (
	ExitFailure   = 1
	ExitUsage     = 2
	ExitCancelled = 130
)

// ExitCode maps err to a process exit status: 0 for nil, ExitUsage for
// invalid requests and missing files, ExitCancelled for cancellation and
// ExitFailure otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	code := GetCode(err)
	switch {
	case code == ErrCodeCancelled:
		return ExitCancelled
	case code.Invalid() || code == ErrCodeFileNotFound:
		return ExitUsage
	}
	return ExitFailure
}
