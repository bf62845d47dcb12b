// Package apperr defines the closed error taxonomy crossing the HTTP
// boundary. Internal causes are logged by the layer that produced them and
// never reach the client: every 500-class kind renders a fixed generic body.
package apperr

import (
	"errors"
	"net/http"
)

// Kind discriminates errors for HTTP mapping.
type Kind int

const (
	KindAuthenticationFailed Kind = iota
	KindTokenCreation
	KindInvalidToken
	KindTokenExpired
	KindMissingToken
	KindMissingAuthService
	KindInternal
	KindNotFound
	KindValidation
	KindUnauthorized
	KindForbidden
	KindDatabase
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

// Fixed-message kinds.
var (
	ErrAuthenticationFailed = &Error{KindAuthenticationFailed, "Authentication failed"}
	ErrTokenCreation        = &Error{KindTokenCreation, "Token creation error"}
	ErrInvalidToken         = &Error{KindInvalidToken, "Invalid token"}
	ErrTokenExpired         = &Error{KindTokenExpired, "Token expired"}
	ErrMissingToken         = &Error{KindMissingToken, "Missing authentication token"}
	ErrMissingAuthService   = &Error{KindMissingAuthService, "Missing auth service"}
	ErrInternal             = &Error{KindInternal, "Internal server error"}
)

func NotFound(msg string) *Error     { return &Error{KindNotFound, msg} }
func Validation(msg string) *Error   { return &Error{KindValidation, msg} }
func Unauthorized(msg string) *Error { return &Error{KindUnauthorized, msg} }
func Forbidden(msg string) *Error    { return &Error{KindForbidden, msg} }
func Database(msg string) *Error     { return &Error{KindDatabase, msg} }

const genericInternalMsg = "An internal error occurred. Please try again later."

// Status returns the HTTP status for the kind.
func (e *Error) Status() int {
	switch e.kind {
	case KindAuthenticationFailed, KindInvalidToken, KindTokenExpired,
		KindMissingToken, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the client-visible message. 500-class kinds collapse to a
// generic body so raw causes never leak.
func (e *Error) PublicMessage() string {
	if e.Status() == http.StatusInternalServerError {
		return genericInternalMsg
	}
	return e.msg
}

// From normalizes any error to an *Error; unknown errors become ErrInternal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return ErrInternal
}
