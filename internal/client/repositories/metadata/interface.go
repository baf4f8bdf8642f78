// Package metadata stores small key/value records in the local SQLite
// database: the session marker and the email of the admin it belongs to.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store. Get on a missing key returns
// (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Has(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
