package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carrental/carrental/client/internal/session"
)

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	for _, name := range []string{"CARRENTAL_DEBUG", "DEBUG"} {
		t.Run(name, func(t *testing.T) {
			t.Setenv("CARRENTAL_DEBUG", "")
			t.Setenv("DEBUG", "")
			t.Setenv(name, "true")
			c, err := New("http://example.com")
			require.NoError(t, err)
			st := c.http.Transport.(*session.Transport)
			_, ok := st.Base.(*debugTransport)
			assert.True(t, ok, "expected debugTransport to be installed when %s=true", name)
		})
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c, err := New("http://example.com", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	_, err = c.http.Do(req)
	assert.Error(t, err, "expected error from underlying transport")
}

func TestDebugTransport_NilBaseUsesDefault(t *testing.T) {
	dt := &debugTransport{logger: zerolog.Nop()}
	assert.Equal(t, http.DefaultTransport, dt.next())
}
