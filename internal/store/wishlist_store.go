package store

import (
	"context"
	"log/slog"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storage"
)

type WishlistStore struct {
	state state[domain.Wishlist]
}

func NewWishlistStore(initial domain.Wishlist) *WishlistStore {
	s := &WishlistStore{}
	s.state.value = initial
	return s
}

// OpenWishlistStore follows the same hydrate-then-subscribe pattern as
// OpenCartStore.
func OpenWishlistStore(ctx context.Context, kv storage.Store, logger *slog.Logger) *WishlistStore {
	snap := NewSnapshot[[]domain.Product](kv, WishlistKey)

	items, err := snap.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "wishlist snapshot unreadable, starting empty", "error", err)
	}
	s := NewWishlistStore(domain.NewWishlist(items))
	logger.InfoContext(ctx, "wishlist hydrated", "items", s.Count())

	s.Subscribe(func(ctx context.Context, w domain.Wishlist) {
		if err := snap.Save(ctx, nonNil(w.Items)); err != nil {
			logger.ErrorContext(ctx, "wishlist snapshot write failed", "error", err)
		}
	})
	return s
}

func (s *WishlistStore) Subscribe(fn Listener[domain.Wishlist]) (unsubscribe func()) {
	return s.state.subscribe(fn)
}

func (s *WishlistStore) Add(ctx context.Context, p domain.Product) domain.Wishlist {
	return s.state.update(ctx, func(w domain.Wishlist) domain.Wishlist { return w.Add(p) })
}

func (s *WishlistStore) Remove(ctx context.Context, productID string) domain.Wishlist {
	return s.state.update(ctx, func(w domain.Wishlist) domain.Wishlist { return w.Remove(productID) })
}

func (s *WishlistStore) Toggle(ctx context.Context, p domain.Product) domain.Wishlist {
	return s.state.update(ctx, func(w domain.Wishlist) domain.Wishlist { return w.Toggle(p) })
}

func (s *WishlistStore) Clear(ctx context.Context) domain.Wishlist {
	return s.state.update(ctx, func(w domain.Wishlist) domain.Wishlist { return w.Clear() })
}

func (s *WishlistStore) Contains(productID string) bool {
	return s.state.get().Contains(productID)
}

func (s *WishlistStore) Items() []domain.Product {
	items := s.state.get().Items
	out := make([]domain.Product, len(items))
	for i, p := range items {
		out[i] = p.Clone()
	}
	return out
}

func (s *WishlistStore) Count() int {
	return s.state.get().Count()
}
