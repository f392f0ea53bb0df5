// Package apperr holds the failure categories the rental service reports and the HTTP status each one suggests.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindUnexpected Kind = "unexpected"
)

// Status returns the HTTP status code suggested for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }
func (e *Error) Status() int   { return e.Kind.Status() }

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }

// Unexpected wraps an uncategorised failure, keeping the cause for logging.
func Unexpected(err error) error {
	return &Error{Kind: KindUnexpected, Message: "internal server error", Err: err}
}

// KindOf 非 *Error 一律视为 Unexpected
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnexpected
}

func StatusOf(err error) int { return KindOf(err).Status() }
