package client

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables; envconfig treats set-but-empty as a value.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"CARRENTAL_API_BASE_URL", "CARRENTAL_HTTP_TIMEOUT", "CARRENTAL_TOKEN",
		"CARRENTAL_DEBUG", "CARRENTAL_RETRY_MAX_ATTEMPTS",
		// envconfig falls back to the unprefixed names
		"API_BASE_URL", "HTTP_TIMEOUT", "TOKEN", "DEBUG", "RETRY_MAX_ATTEMPTS",
	} {
		t.Setenv(k, "") // restores the original value after the test
		_ = os.Unsetenv(k)
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.Token)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 1, cfg.RetryMaxAttempts)
	assert.Len(t, cfg.Options(), 1, "only the timeout option")
}

func TestNewFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CARRENTAL_API_BASE_URL", "https://rentals.example.com/api/")
	t.Setenv("CARRENTAL_HTTP_TIMEOUT", "5s")
	t.Setenv("CARRENTAL_TOKEN", "tok")
	t.Setenv("CARRENTAL_RETRY_MAX_ATTEMPTS", "4")

	c, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://rentals.example.com/api", c.BaseURL())
	assert.Equal(t, 5*time.Second, c.http.Timeout)
	assert.Equal(t, "tok", c.Token())
	assert.Equal(t, 4, c.retry.MaxAttempts)
}

func TestNewFromEnv_OptionsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("CARRENTAL_HTTP_TIMEOUT", "5s")
	t.Setenv("CARRENTAL_TOKEN", "from-env")

	c, err := NewFromEnv(WithHTTPTimeout(time.Second), WithToken("explicit"))
	require.NoError(t, err)
	assert.Equal(t, time.Second, c.http.Timeout)
	assert.Equal(t, "explicit", c.Token())
}

func TestLoadEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("CARRENTAL_HTTP_TIMEOUT", "soon")
	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestNewFromEnv_HTTPClientKeepsEnvTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("CARRENTAL_HTTP_TIMEOUT", "7s")

	c, err := NewFromEnv(WithHTTPClient(&http.Client{}))
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, c.http.Timeout)
}
