package store

import (
	"context"
	"log/slog"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

type CartStore struct {
	state state[domain.Cart]
}

func NewCartStore(initial domain.Cart) *CartStore {
	s := &CartStore{}
	s.state.value = initial
	return s
}

// OpenCartStore hydrates the cart from kv and persists every change back.
// An unreadable snapshot is logged and the cart starts empty; failed writes
// are logged and the in-memory cart stays authoritative.
func OpenCartStore(ctx context.Context, kv storage.Store, logger *slog.Logger) *CartStore {
	snap := NewSnapshot[[]domain.CartLine](kv, CartKey)

	lines, err := snap.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "cart snapshot unreadable, starting empty", "error", err)
	}
	s := NewCartStore(domain.NewCart(lines))
	logger.InfoContext(ctx, "cart hydrated", "lines", len(s.Items()))

	s.Subscribe(func(ctx context.Context, c domain.Cart) {
		if err := snap.Save(ctx, nonNil(c.Lines)); err != nil {
			logger.ErrorContext(ctx, "cart snapshot write failed", "error", err)
		}
	})
	return s
}

func (s *CartStore) Subscribe(fn Listener[domain.Cart]) (unsubscribe func()) {
	return s.state.subscribe(fn)
}

func (s *CartStore) AddItem(ctx context.Context, p domain.Product) domain.Cart {
	return s.state.update(ctx, func(c domain.Cart) domain.Cart { return c.AddItem(p) })
}

func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) domain.Cart {
	return s.state.update(ctx, func(c domain.Cart) domain.Cart { return c.UpdateQuantity(productID, quantity) })
}

func (s *CartStore) RemoveItem(ctx context.Context, productID string) domain.Cart {
	return s.state.update(ctx, func(c domain.Cart) domain.Cart { return c.RemoveItem(productID) })
}

func (s *CartStore) Clear(ctx context.Context) domain.Cart {
	return s.state.update(ctx, func(c domain.Cart) domain.Cart { return c.Clear() })
}

// RemoveLines takes the quantities of lines out of the cart, leaving
// anything added since they were copied.
func (s *CartStore) RemoveLines(ctx context.Context, lines []domain.CartLine) domain.Cart {
	return s.state.update(ctx, func(c domain.Cart) domain.Cart { return c.Subtract(lines) })
}

// Cart returns the current state. Transitions never modify a returned Cart.
func (s *CartStore) Cart() domain.Cart {
	return s.state.get()
}

func (s *CartStore) Items() []domain.CartLine {
	return s.state.get().Snapshot()
}

func (s *CartStore) ItemCount() int {
	return s.state.get().ItemCount()
}

func (s *CartStore) Subtotal() decimal.Decimal {
	return s.state.get().Subtotal()
}

func (s *CartStore) Quantity(productID string) int {
	return s.state.get().Quantity(productID)
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
