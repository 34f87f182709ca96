// SPDX-License-Identifier: MIT

package configfile

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
)

// Kind identifies one of the closed set of config-file failure classes.
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindPermissionDenied Kind = "PERMISSION_DENIED"
	KindInvalidContent   Kind = "INVALID_CONTENT"
	KindContentTooLarge  Kind = "CONTENT_TOO_LARGE"
	KindIOError          Kind = "IO_ERROR"
)

// StatusCode returns the fixed HTTP status associated with the kind.
// Unknown kinds fall back to 500.
func (k Kind) StatusCode() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindInvalidContent:
		return http.StatusBadRequest
	case KindContentTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindIOError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified config-file failure. The kind carries the
// machine-readable code and status; Message is the human-readable side.
type Error struct {
	Kind    Kind
	Op      string // "read" or "write", message wording only
	Path    string
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is matching against a bare &Error{Kind: ...} target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Classify maps a low-level filesystem failure to the closed Error taxonomy.
// The op parameter flavors the message only; the mapping itself is
// action-independent. Already-classified errors pass through unchanged.
func Classify(op, path string, err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Error{Kind: KindNotFound, Op: op, Path: path, Message: "file does not exist", Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &Error{Kind: KindPermissionDenied, Op: op, Path: path, Message: "permission denied", Err: err}
	default:
		return &Error{Kind: KindIOError, Op: op, Path: path, Message: "filesystem error", Err: err}
	}
}
