package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so controllers can map it to an HTTP status
// without string-matching messages.
type Kind string

const (
	KindValidation         Kind = "VALIDATION"
	KindDuplicateUser      Kind = "DUPLICATE_USER"
	KindDuplicateKey       Kind = "DUPLICATE_KEY"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindInvalidToken       Kind = "INVALID_TOKEN"
	KindExpiredToken       Kind = "EXPIRED_TOKEN"
	KindAccessDenied       Kind = "ACCESS_DENIED"
	KindNotFound           Kind = "NOT_FOUND"
	KindSlotConflict       Kind = "SLOT_CONFLICT"
	KindServer             Kind = "SERVER"
)

type Error struct {
	Kind    Kind
	Message string
	Field   string // set for duplicate-key errors, names the colliding field
	Cause   error  // underlying error, never rendered outside debug mode
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func DuplicateUser(msg string) *Error {
	return &Error{Kind: KindDuplicateUser, Message: msg}
}

func DuplicateKey(field string) *Error {
	return &Error{Kind: KindDuplicateKey, Field: field, Message: fmt.Sprintf("%s already exists", field)}
}

func InvalidCredentials(msg string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: msg}
}

func InvalidToken(msg string) *Error {
	return &Error{Kind: KindInvalidToken, Message: msg}
}

func ExpiredToken(msg string) *Error {
	return &Error{Kind: KindExpiredToken, Message: msg}
}

func AccessDenied(msg string) *Error {
	return &Error{Kind: KindAccessDenied, Message: msg}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", what)}
}

func SlotConflict(msg string) *Error {
	return &Error{Kind: KindSlotConflict, Message: msg}
}

func Server(err error) *Error {
	return &Error{Kind: KindServer, Message: "internal server error", Cause: err}
}

/*
* Map any error to its HTTP status
* Unknown errors count as server errors
 */
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation, KindDuplicateUser, KindDuplicateKey, KindSlotConflict:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindInvalidToken, KindExpiredToken:
		return http.StatusUnauthorized
	case KindAccessDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func IsKind(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == k
}
