package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	notFound := &APIError{StatusCode: http.StatusNotFound, Message: "Car not found"}
	wrapped := fmt.Errorf("lookup: %w", notFound)

	apiErr, ok := AsAPIError(wrapped)
	assert.True(t, ok)
	assert.Same(t, notFound, apiErr)
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsUnauthorized(wrapped))
	assert.Equal(t, http.StatusNotFound, StatusCode(wrapped))
	assert.False(t, IsTransportError(wrapped))

	tErr := &TransportError{Method: http.MethodGet, URL: "/cars", Err: errors.New("connection refused")}
	assert.True(t, IsTransportError(tErr))
	assert.Zero(t, StatusCode(tErr))
	_, ok = AsAPIError(tErr)
	assert.False(t, ok)

	assert.True(t, IsUnauthorized(&APIError{StatusCode: http.StatusUnauthorized, Message: FallbackMessage}))
}
