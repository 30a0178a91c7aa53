package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	clienterrors "github.com/carrental/carrental/client/internal/errors"
)

// RetryPolicy controls re-issuing idempotent requests. MaxAttempts <= 1
// disables retries, which is the default.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (p RetryPolicy) enabledFor(method string) bool {
	if p.MaxAttempts <= 1 {
		return false
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	if exp.InitialInterval <= 0 {
		exp.InitialInterval = 100 * time.Millisecond
	}
	exp.MaxInterval = p.MaxInterval
	if exp.MaxInterval <= 0 {
		exp.MaxInterval = 5 * time.Second
	}
	exp.Multiplier = 2
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxAttempts-1)), ctx)
}

// run retries attempt on recoverable errors. The last error is returned
// with its original variant; a context that ends while waiting yields a
// TransportError wrapping ctx.Err().
func (p RetryPolicy) run(ctx context.Context, logger zerolog.Logger, method, endpoint string, attempt func() (json.RawMessage, error)) (json.RawMessage, error) {
	var raw json.RawMessage
	op := func() error {
		var err error
		raw, err = attempt()
		if err != nil && clienterrors.IsIrrecoverable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn().Err(err).Dur("wait", wait).Msg("retrying API request")
	}
	if err := backoff.RetryNotify(op, p.backOff(ctx), notify); err != nil {
		var apiErr *clienterrors.APIError
		var tErr *clienterrors.TransportError
		var invalid *clienterrors.InvalidResponseError
		if errors.As(err, &apiErr) || errors.As(err, &tErr) || errors.As(err, &invalid) {
			return nil, err
		}
		return nil, clienterrors.NewTransportError(method, endpoint, err)
	}
	return raw, nil
}
