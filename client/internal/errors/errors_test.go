package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError_Message(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"empty body", ``, FallbackMessage},
		{"whitespace body", "  \n", FallbackMessage},
		{"html body", `<html>bad gateway</html>`, FallbackMessage},
		{"no message field", `{"error":"nope"}`, FallbackMessage},
		{"empty message", `{"message":""}`, FallbackMessage},
		{"non-string message", `{"message":42}`, FallbackMessage},
		{"array body", `["x"]`, FallbackMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewAPIError(http.StatusBadRequest, []byte(tc.body))
			assert.Equal(t, tc.want, err.Error())
			assert.Equal(t, http.StatusBadRequest, err.StatusCode)
			assert.Equal(t, tc.body, string(err.Body))
		})
	}
}

func TestCategoryForStatus(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Irrecoverable, categoryForStatus(http.StatusBadRequest))
	assert.Equal(t, Irrecoverable, categoryForStatus(http.StatusUnauthorized))
	assert.Equal(t, Irrecoverable, categoryForStatus(http.StatusNotFound))
	assert.Equal(t, Recoverable, categoryForStatus(http.StatusRequestTimeout))
	assert.Equal(t, Recoverable, categoryForStatus(http.StatusTooManyRequests))
	assert.Equal(t, Recoverable, categoryForStatus(http.StatusInternalServerError))
	assert.Equal(t, Recoverable, categoryForStatus(http.StatusServiceUnavailable))
	assert.Equal(t, Irrecoverable, categoryForStatus(http.StatusFound))
}

func TestIsIrrecoverable(t *testing.T) {
	t.Parallel()
	assert.True(t, IsIrrecoverable(NewAPIError(http.StatusNotFound, nil)))
	assert.False(t, IsIrrecoverable(NewAPIError(http.StatusBadGateway, nil)))
	assert.False(t, IsIrrecoverable(NewTransportError(http.MethodGet, "http://x", context.DeadlineExceeded)))
	assert.False(t, IsIrrecoverable(fmt.Errorf("get car: %w", NewTransportError(http.MethodGet, "http://x", context.DeadlineExceeded))))
	assert.True(t, IsIrrecoverable(ErrMissingID))
	assert.True(t, IsIrrecoverable(NewInvalidResponseError(http.StatusOK, []byte("<html>"))))
}

func TestTransportError_Unwrap(t *testing.T) {
	t.Parallel()
	err := NewTransportError(http.MethodGet, "http://x/cars", context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, context.Canceled.Error(), err.Error())
	assert.Equal(t, FallbackMessage, (&TransportError{}).Error())
}

func TestStatusCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 401, StatusCode(fmt.Errorf("login: %w", NewAPIError(401, nil))))
	assert.Equal(t, 0, StatusCode(context.Canceled))
}
