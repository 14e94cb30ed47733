// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, local storage, the HTTP gateway and the client
// services, then runs a REPL. Two background goroutines run alongside it:
// one prints notifications as they arrive, the other pings the backend to
// track online/offline mode and ends the session when its token expires.
//
// Key features:
//   - Register / Login / Logout, with the session restored on start
//   - Menu browsing and search
//   - A cart kept in sync with the server cart for the configured order id
//   - Table availability lookup, selection and booking
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
