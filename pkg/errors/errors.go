// Package errors provides coded error types shared by the leveling library,
// CLI and HTTP server.
//
// Codes are machine readable and follow a prefix convention:
//   - INVALID_*: caller supplied bad input (labels, formats, options, paths)
//   - *NOT_FOUND: a file or resource does not exist
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// Layout invariant violations are not reported through this package. They
// are programming errors and panic.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // reject request
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidInput, cause, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a stable, machine-readable error kind.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidLabel  Code = "INVALID_LABEL"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidOption Code = "INVALID_OPTION"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code next to a human message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with cause attached; errors.Is and errors.As see through it.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// for uncoded errors.
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage renders err for people: the message and cause of a coded
// error without its code, or err.Error() otherwise.
func UserMessage(err error) string {
	e, ok := outermost(err)
	switch {
	case !ok:
		return err.Error()
	case e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// HTTPStatus maps err to a response status: 400 for INVALID_* codes, 404
// for *NOT_FOUND, 501 for UNSUPPORTED and 500 for the rest, uncoded errors
// included.
func HTTPStatus(err error) int {
	code := string(GetCode(err))
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case code != "" && strings.HasSuffix(code, "NOT_FOUND"):
		return http.StatusNotFound
	case code == string(ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
