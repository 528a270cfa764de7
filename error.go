package docmap

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are propagated by service implementations and translated into exit
// codes or structured tool errors by the frontends.
const (
	ECONFLICT  = "conflict"  // optimistic-lock failure (stale content hash)
	EDECODE    = "decode"    // file is not valid UTF-8 text
	EHIERARCHY = "hierarchy" // edit would re-parent or orphan child sections
	EINTERNAL  = "internal"  // unexpected internal error
	EINVALID   = "invalid"   // invalid argument value
	ENOTFOUND  = "not_found" // path, section, or docs root does not exist
)

// Error represents an application error. Errors carry a machine-readable
// code and a human-readable message. Path lookups additionally carry ranked
// suggestions for near-miss paths.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string

	// Suggestions holds closest-match alternatives for ENOTFOUND path
	// errors, best match first.
	Suggestions []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docmap error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode unwraps err and returns its code, or EINTERNAL for non-application
// errors. A nil error returns an empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message. Non-application errors
// report a generic message so internal details are not leaked to end users.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorSuggestions unwraps err and returns any attached path suggestions.
func ErrorSuggestions(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Suggestions
	}
	return nil
}
