package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds client settings read from the environment.
// Variables are parsed with the CARRENTAL_ prefix,
// e.g. CARRENTAL_API_BASE_URL, CARRENTAL_HTTP_TIMEOUT.
type EnvConfig struct {
	APIBaseURL       string        `envconfig:"API_BASE_URL" default:"http://localhost:5000/api"`
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Token            string        `envconfig:"TOKEN"`
	Debug            bool          `envconfig:"DEBUG" default:"false"`
	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"1"`
}

// LoadEnv parses CARRENTAL_* variables.
func LoadEnv() (*EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("CARRENTAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// Options turns the config into client options. Zero values leave the
// client defaults in place.
func (c *EnvConfig) Options() []Option {
	var opts []Option
	if c.HTTPTimeout > 0 {
		opts = append(opts, WithHTTPTimeout(c.HTTPTimeout))
	}
	if c.Token != "" {
		opts = append(opts, WithToken(c.Token))
	}
	if c.Debug {
		opts = append(opts, WithDebugLogging(true))
	}
	if c.RetryMaxAttempts > 1 {
		opts = append(opts, WithRetry(c.RetryMaxAttempts, 0, 0))
	}
	return opts
}

// NewFromEnv builds a Client from CARRENTAL_* variables. Explicit opts are
// applied after the environment, so they win.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg.APIBaseURL, append(cfg.Options(), opts...)...)
}
