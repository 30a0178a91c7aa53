package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// captured is what the stub server saw for the last request.
type captured struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// stubServer answers every request with status and body, recording the request.
func stubServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Method = r.Method
		got.Path = r.URL.EscapedPath()
		got.Header = r.Header.Clone()
		got.Body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

// jsonServer answers with v encoded as JSON.
func jsonServer(t *testing.T, status int, v any) (*httptest.Server, *captured) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return stubServer(t, status, string(b))
}

func newTestRequester(srv *httptest.Server) *Requester {
	return NewRequester(Config{HTTPClient: srv.Client(), BaseURL: srv.URL + "/api", Logger: zerolog.Nop()})
}

// recordingObserver records each observed attempt.
type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveRequest(_ context.Context, area, method, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, area+" "+method+" "+outcome)
}
