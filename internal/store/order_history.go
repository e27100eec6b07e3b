package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storage"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderHistory is append-only. Unlike the cart, a failed write is returned to
// the caller and the order is not kept in memory either.
type OrderHistory struct {
	mu     sync.RWMutex
	orders []domain.Order
	snap   *Snapshot[[]domain.Order]
}

func OpenOrderHistory(ctx context.Context, kv storage.Store, logger *slog.Logger) *OrderHistory {
	snap := NewSnapshot[[]domain.Order](kv, OrdersKey)

	orders, err := snap.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "order history unreadable, starting empty", "error", err)
		orders = nil
	}
	logger.InfoContext(ctx, "order history hydrated", "orders", len(orders))
	return &OrderHistory{orders: orders, snap: snap}
}

func (h *OrderHistory) Append(ctx context.Context, order domain.Order) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]domain.Order, 0, len(h.orders)+1)
	next = append(next, h.orders...)
	next = append(next, order.Clone())

	if err := h.snap.Save(ctx, next); err != nil {
		return err
	}
	h.orders = next
	return nil
}

// List returns orders oldest first.
func (h *OrderHistory) List() []domain.Order {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.Order, len(h.orders))
	for i, o := range h.orders {
		out[i] = o.Clone()
	}
	return out
}

func (h *OrderHistory) Get(id string) (domain.Order, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, o := range h.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

func (h *OrderHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.orders)
}
