package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/carrental/carrental/client/internal/api"
)

// Option configures a Client during construction in New.
//
// Options are applied before the transport chain is assembled, so the
// debug and bearer-token wrappers always sit on top of whatever transport
// the options leave behind. Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout bounds a
// single HTTP attempt. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient uses hc as the base HTTP client. The client is copied, so
// wrapping its transport never mutates the caller's value. When hc has no
// Timeout, the timeout already configured (default or WithHTTPTimeout) is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		if cp.Timeout == 0 && c.http != nil {
			cp.Timeout = c.http.Timeout
		}
		c.http = &cp
		return nil
	}
}

// WithDebugLogging logs each request and response when enabled is true.
//
// Do not enable this option in production environments: dumps include
// bearer tokens and passwords sent in auth payloads.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithLogger routes client logs to l instead of the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithToken starts the client with an existing bearer token.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.session.Set(token)
		return nil
	}
}

// WithRetry retries idempotent requests (GET, HEAD, PUT, DELETE) that fail
// with a transport error, a 5xx, 408 or 429. maxAttempts counts the first
// try; values below 2 disable retries.
func WithRetry(maxAttempts int, initial, max time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts < 0 {
			return fmt.Errorf("retry attempts must be >= 0")
		}
		if initial < 0 || max < 0 {
			return fmt.Errorf("retry intervals must be >= 0")
		}
		c.retry = api.RetryPolicy{MaxAttempts: maxAttempts, InitialInterval: initial, MaxInterval: max}
		return nil
	}
}
