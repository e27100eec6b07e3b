package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storage"
)

const (
	CartKey     = "storefront-cart"
	WishlistKey = "storefront-wishlist"
	OrdersKey   = "orders"

	writeTimeout = 2 * time.Second
)

// Snapshot reads and writes one JSON document under a fixed key.
type Snapshot[T any] struct {
	kv  storage.Store
	key string
}

func NewSnapshot[T any](kv storage.Store, key string) *Snapshot[T] {
	return &Snapshot[T]{kv: kv, key: key}
}

// Load returns the zero value and no error when nothing was stored yet. A
// stored document that cannot be read or decoded yields a PersistenceError.
func (s *Snapshot[T]) Load(ctx context.Context) (T, error) {
	var zero T
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return zero, nil
	}
	if err != nil {
		return zero, &domain.PersistenceError{Op: "read", Key: s.key, Err: err}
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, &domain.PersistenceError{Op: "decode", Key: s.key, Err: err}
	}
	return v, nil
}

// Save detaches from ctx cancellation so an aborted request still leaves a
// consistent snapshot, but bounds the write with writeTimeout.
func (s *Snapshot[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Key: s.key, Err: err}
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		return &domain.PersistenceError{Op: "write", Key: s.key, Err: err}
	}
	return nil
}
