package api

import (
	"context"
	"time"
)

// Observer receives one callback per HTTP attempt. Implementations must be
// safe for concurrent use.
type Observer interface {
	ObserveRequest(ctx context.Context, area, method, outcome string, elapsed time.Duration)
}

// Outcome labels passed to Observer. OutcomeInvalidResponse marks a 2xx
// whose body is not JSON.
const (
	OutcomeSuccess         = "success"
	OutcomeAPIError        = "api_error"
	OutcomeTransportError  = "transport_error"
	OutcomeInvalidResponse = "invalid_response"
)

type nopObserver struct{}

func (nopObserver) ObserveRequest(context.Context, string, string, string, time.Duration) {}
