package client

import (
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// bearerTransport attaches the current bearer token to every outgoing request.
// With no token set, requests pass through untouched.
type bearerTransport struct {
	base http.RoundTripper

	mu    sync.RWMutex
	token string
}

func newBearerTransport(base http.RoundTripper) *bearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTransport{base: base}
}

func (t *bearerTransport) set(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

func (t *bearerTransport) current() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.current()
	if token == "" {
		return t.base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(r)
	return t.base.RoundTrip(r)
}
