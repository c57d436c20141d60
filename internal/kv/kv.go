package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal durable key-value store. The settings record is the only
// value persisted through it, so the surface stays deliberately small.
type Store interface {
	// Get retrieves the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value for key in a single write.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying connection or file handle.
	Close() error
}
