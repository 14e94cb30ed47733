// Package common contains constants shared by the storefront client layers.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on protected requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates a client request with server logs.
	RequestIDHeaderName = "X-Request-ID"
)

// Persistence keys. SessionBundleKey holds {token, user} as one JSON value;
// LegacyTokenKey and LegacyUserKey are the older standalone pair, still
// written and read so earlier clients keep working.
const (
	SessionBundleKey = "session"
	LegacyTokenKey   = "token"
	LegacyUserKey    = "user"
)
