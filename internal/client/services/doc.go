// Package services holds the storefront client's stateful core: the session
// store, the cart synchronizer, the table-availability resolver and the
// reservation helpers built around it.
//
// Each service depends on a narrow slice of the backend client so tests can
// substitute a fake, and reports user-visible outcomes through a
// notify.Notifier. Staleness of asynchronous results is guarded by
// generation counters compared on completion.
package services
