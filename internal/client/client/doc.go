// Package client is the storefront's API gateway.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the backend (see Client): auth,
//     menu, cart-by-order, table availability and reservation creation.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that attaches the
//     bearer token to every request through its RoundTripper and maps
//     failures to RemoteError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Authorization
//
// The Authorization header is process-wide state owned by HTTPClient and
// changed only through TokenHolder. The session store is the only component
// that receives a TokenHolder; everything else gets the read-only Client.
//
// # Error Handling
//
// Non-2xx responses become *RemoteError whose message is the body's "error"
// or "message" field verbatim. RemoteError unwraps to ErrUnauthorized,
// ErrNotFound or ErrUnavailable where the status allows, so callers can use
// errors.Is. Transport failures are RemoteError with StatusCode 0.
//
// Timeouts are the http.Client's; there is no retry.
package client
