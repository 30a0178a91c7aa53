// Package session holds the bearer token of the current login and decodes
// its claims for display. Claims are never verified here; the service that
// issued the token is the only party able to do that.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned when no token has been stored.
var ErrNoSession = errors.New("no active session")

// Store is a concurrency-safe holder for the current bearer token.
type Store struct {
	mu    sync.RWMutex
	token string
}

// Set replaces the stored token. An empty token clears the session.
func (s *Store) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Token returns the stored token, or "" when there is none.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear forgets the stored token.
func (s *Store) Clear() { s.Set("") }

// Claims is the subset of token claims the rental service issues. Services
// disagree on where the account id lives, so all three spellings are read.
type Claims struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Info is the decoded view of a session token.
type Info struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Expired reports whether the token's exp claim lies before now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Decode parses token without verifying its signature.
func Decode(token string) (*Info, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decode session token: %w", err)
	}
	info := &Info{
		UserID: firstNonEmpty(claims.UserID, claims.ID, claims.Subject),
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Transport adds "Authorization: Bearer <token>" to requests that do not
// already carry an Authorization header.
type Transport struct {
	Base  http.RoundTripper
	Store *Store
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	tok := t.Store.Token()
	if tok == "" || req.Header.Get("Authorization") != "" {
		return base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+tok)
	return base.RoundTrip(cloned)
}
