package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a flow failure. The transport maps kinds to status codes.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindExpired      Kind = "expired"
	KindInvalidCode  Kind = "invalid_code"
	KindUnauthorized Kind = "unauthorized"
	KindDelivery     Kind = "delivery"
	KindInternal     Kind = "internal"
)

// Error is a classified failure with a message safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string

	// Fields holds per-field validation messages, if any.
	Fields map[string]string

	cause error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error of the same kind, so errors.Is(err, ErrExpired) works
// regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation   = &Error{Kind: KindValidation, Message: "invalid request"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "email already registered"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrExpired      = &Error{Kind: KindExpired, Message: "OTP expired"}
	ErrInvalidCode  = &Error{Kind: KindInvalidCode, Message: "invalid OTP"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "invalid password"}
	ErrDelivery     = &Error{Kind: KindDelivery, Message: "failed to send email"}
	ErrInternal     = &Error{Kind: KindInternal, Message: "internal error"}
)

// Errorf builds an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The cause is kept for logging but
// never shown to the caller.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: ErrInternal.Message, cause: cause}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
