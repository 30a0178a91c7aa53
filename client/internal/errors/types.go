// Package errors defines the error variants returned by the rental client.
// Every failed call ends in exactly one of them, so callers can tell a
// request that never reached the service from one the service rejected.
package errors

import (
	"errors"
	"fmt"
)

// FallbackMessage is used when a failed response carries no usable message.
const FallbackMessage = "API request failed"

// ErrMissingID is returned before any network call when a path identifier is empty.
var ErrMissingID = errors.New("missing resource id")

// ErrorCategory determines whether a failed request may be retried.
type ErrorCategory int

const (
	// Recoverable errors may succeed when retried.
	// Examples: 503 Service Unavailable, connection refused, timeouts.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors fail the same way every time.
	// Examples: 400 Bad Request, 401 Unauthorized, 404 Not Found.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// APIError is returned when the service answered with a non-2xx status.
// Error() is exactly the message extracted from the response body.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte // raw response body, possibly empty
}

func (e *APIError) Error() string { return e.Message }

// Category classifies the status code for retry decisions.
func (e *APIError) Category() ErrorCategory { return categoryForStatus(e.StatusCode) }

// TransportError is returned when the HTTP round trip itself failed.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return FallbackMessage
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *TransportError) Unwrap() error { return e.Err }

// Category reports transport failures as recoverable.
func (e *TransportError) Category() ErrorCategory { return Recoverable }

// InvalidResponseError is returned when a 2xx response carries a body that
// is not JSON, such as an HTML page from a proxy.
type InvalidResponseError struct {
	StatusCode int
	Body       []byte
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid JSON in response body (status %d)", e.StatusCode)
}

// IsIrrecoverable returns true if the error should not be retried.
// Anything else (invalid response, encoding, missing id) is irrecoverable.
func IsIrrecoverable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Category() == Irrecoverable
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return false
	}
	return true
}
