package client

import "github.com/carrental/carrental/client/internal/session"

// SessionInfo is the decoded, unverified view of the current token.
type SessionInfo = session.Info

// ErrNoSession is returned by Session when no token is held.
var ErrNoSession = session.ErrNoSession

// SetToken installs a bearer token, e.g. one persisted from an earlier login.
func (c *Client) SetToken(token string) { c.session.Set(token) }

// Token returns the current bearer token, or "".
func (c *Client) Token() string { return c.session.Token() }

// ClearSession drops the bearer token; later calls are anonymous.
func (c *Client) ClearSession() { c.session.Clear() }

// Session decodes the claims of the current token.
func (c *Client) Session() (*SessionInfo, error) {
	return session.Decode(c.session.Token())
}
