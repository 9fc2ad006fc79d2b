package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork wraps transport failures: the request never produced an HTTP response.
var ErrNetwork = errors.New("network error")

// ErrNoSession is returned by calls that need a signed-in session when none is stored.
var ErrNoSession = errors.New("no session")

// Error kinds reported by the server in the "kind" field of an error body.
const (
	KindValidation    = "VALIDATION"
	KindAuthorization = "AUTHORIZATION"
	KindUnauthorized  = "UNAUTHORIZED"
	KindInvalidState  = "INVALID_STATE"
	KindNotFound      = "NOT_FOUND"
	KindConflict      = "CONFLICT"
	KindInternal      = "INTERNAL"
)

// APIError is a non-2xx response. Message is meant to be shown to the user.
type APIError struct {
	Status  int
	Message string
	Kind    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Kind, e.Message)
}

// Temporary reports whether retrying the same request may succeed.
func (e *APIError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// kindFromStatus fills in a kind for error bodies that carry none, e.g. from a proxy.
func kindFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindInternal
	}
}
