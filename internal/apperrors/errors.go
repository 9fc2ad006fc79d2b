package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is known but its role does not allow the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidState indicates an operation on a resource that is no longer in a state that permits it,
// e.g. reviewing a change request that was already approved or rejected.
var ErrInvalidState = errors.New("invalid state")

// ErrConflict indicates a concurrent or otherwise conflicting modification.
var ErrConflict = errors.New("conflict")

// ErrInternal is returned when the cause must not be exposed to the caller.
var ErrInternal = errors.New("internal error")

// Kind is the closed set of error categories surfaced to API callers.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindAuthorization Kind = "AUTHORIZATION"
	KindUnauthorized  Kind = "UNAUTHORIZED"
	KindInvalidState  Kind = "INVALID_STATE"
	KindNotFound      Kind = "NOT_FOUND"
	KindConflict      Kind = "CONFLICT"
	KindInternal      Kind = "INTERNAL"
)

// AppError carries an HTTP status code and a client-safe message together with the underlying cause.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func NewValidationFailedError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func NewInvalidStateError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrInvalidState)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, ErrInternal)
}

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrForbidden):
		return KindAuthorization
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return KindConflict
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error kind to the response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
