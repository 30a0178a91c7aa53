package client

import (
	"errors"
	"net/http"

	clienterrors "github.com/carrental/carrental/client/internal/errors"
)

// Error variants re-exported so callers can import only the client package.
type (
	// APIError is returned when the service answers with a non-2xx status.
	// Its Error() is exactly the service's message.
	APIError = clienterrors.APIError
	// TransportError is returned when the request never got a response.
	TransportError = clienterrors.TransportError
	// InvalidResponseError is returned when a 2xx body is not JSON.
	InvalidResponseError = clienterrors.InvalidResponseError
)

// FallbackMessage is the APIError message used when the service sent none.
const FallbackMessage = clienterrors.FallbackMessage

// ErrMissingID is returned, without a request, when a path id is empty.
var ErrMissingID = clienterrors.ErrMissingID

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsTransportError reports whether err is a failed round trip.
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// StatusCode returns the HTTP status of an APIError, or 0.
func StatusCode(err error) int { return clienterrors.StatusCode(err) }

// IsNotFound reports a 404 from the service.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// IsUnauthorized reports a 401 from the service.
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }
