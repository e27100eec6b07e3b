// Package storage holds the string-keyed snapshot stores the cart, wishlist
// and order history persist into. Values are opaque JSON documents.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("snapshot not found")

// Store is a durable key-value store. Get returns ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
