// Package metadata is the client's key-value string store. It backs the
// persisted session: one key for the session bundle and the legacy
// token/user pair.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	// Delete removes the given keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
