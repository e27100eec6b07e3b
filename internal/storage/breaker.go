package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// BreakerStore fails fast while a remote backend is down so every cart click
// does not wait on a dead connection. ErrNotFound counts as success.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreakerStore(next Store, name string, s BreakerSettings, logger *slog.Logger) *BreakerStore {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("snapshot store breaker state changed",
				"store", name, "from", from.String(), "to", to.String())
		},
	})
	return &BreakerStore{next: next, cb: cb}
}

func (b *BreakerStore) Get(ctx context.Context, key string) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.Get(ctx, key)
	})
}

func (b *BreakerStore) Set(ctx context.Context, key, value string) error {
	_, err := b.cb.Execute(func() (string, error) {
		return "", b.next.Set(ctx, key, value)
	})
	return err
}

func (b *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() (string, error) {
		return "", b.next.Delete(ctx, key)
	})
	return err
}

func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) Close() error {
	return b.next.Close()
}
