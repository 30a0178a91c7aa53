package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// NewAPIError builds an APIError from a failed response. The message comes
// from the body's "message" field; anything else yields FallbackMessage.
func NewAPIError(statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    messageFromBody(body),
		Body:       body,
	}
}

// NewTransportError wraps a failed round trip.
func NewTransportError(method, url string, err error) *TransportError {
	return &TransportError{Method: method, URL: url, Err: err}
}

// NewInvalidResponseError reports a success status with a non-JSON body.
func NewInvalidResponseError(statusCode int, body []byte) *InvalidResponseError {
	return &InvalidResponseError{StatusCode: statusCode, Body: body}
}

func messageFromBody(body []byte) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return FallbackMessage
	}
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return FallbackMessage
	}
	msg, ok := payload.Message.(string)
	if !ok || msg == "" {
		return FallbackMessage
	}
	return msg
}

// categoryForStatus maps HTTP status codes to error categories:
// 4xx client errors (except 408 and 429) are irrecoverable, 5xx are recoverable.
func categoryForStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes (3xx left unfollowed, 1xx) are not worth repeating.
		return Irrecoverable
	}
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
