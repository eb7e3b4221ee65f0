// Package errors defines the error codes shared by every mindmap front end.
//
// The tree itself reports plain Go errors ([mindmap.ErrRootDeletion],
// [*mindmap.MalformedDocumentError]). The session, io and config layers wrap
// them in an [*Error] carrying a [Code], which the terminal browser turns
// into a status line and the HTTP API into a problem response:
//
//	err := sess.Delete("root")
//	errors.Is(err, errors.ErrCodeRootDeletion)  // true
//	errors.UserMessage(err)                      // "Root node cannot be deleted."
//	errors.CodeOf(err).Kind()                    // KindConflict
//
// A Code is itself an error, so the standard library works too:
//
//	stderrors.Is(err, errors.ErrCodeRootDeletion) // true
//
// [mindmap.ErrRootDeletion]: github.com/matzehuels/mindmap/pkg/mindmap#ErrRootDeletion
// [*mindmap.MalformedDocumentError]: github.com/matzehuels/mindmap/pkg/mindmap#MalformedDocumentError
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code. It implements error so that it can
// be used as an [errors.Is] target.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"    // malformed request body or argument
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT" // document violates the node schema
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"   // unknown file extension or output format
	ErrCodeInvalidNodeID   Code = "INVALID_NODE_ID"
	ErrCodeInvalidTheme    Code = "INVALID_THEME"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeNodeNotFound    Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	ErrCodeRootDeletion Code = "ROOT_DELETION"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Kind groups codes by how a caller should react to them.
type Kind int

const (
	KindInternal    Kind = iota // bug or environment failure
	KindInvalid                 // the caller sent something wrong
	KindNotFound                // the named thing does not exist
	KindConflict                // the request contradicts the tree's rules
	KindUnsupported             // recognized but not implemented
)

// Kind classifies c. Unknown codes are internal.
func (c Code) Kind() Kind {
	switch {
	case strings.HasPrefix(string(c), "INVALID_"):
		return KindInvalid
	case strings.HasSuffix(string(c), "NOT_FOUND"):
		return KindNotFound
	case c == ErrCodeRootDeletion:
		return KindConflict
	case c == ErrCodeUnsupported:
		return KindUnsupported
	default:
		return KindInternal
	}
}

func (c Code) Error() string { return string(c) }

// Error is an error with a code, a message fit for end users, and an
// optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches a [Code] target against e's own code. Codes further down the
// chain are reached through Unwrap.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
}

// New creates an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code Code) bool {
	return err != nil && errors.Is(err, code)
}

// CodeOf returns the code of the outermost [*Error] in err's chain, or ""
// when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost [*Error] in err's chain,
// without code or cause. Other errors are returned as their Error string.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
