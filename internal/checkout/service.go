// Package checkout turns the current cart into a recorded order.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/events"
	"github.com/fjod/storefront/internal/store"
	"github.com/google/uuid"
)

type Service struct {
	cart      *store.CartStore
	history   *store.OrderHistory
	publisher events.Publisher
	pricing   Pricing
	delay     time.Duration
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

type Option func(*Service)

func WithPricing(p Pricing) Option {
	return func(s *Service) { s.pricing = p }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithProcessingDelay makes Submit wait before recording the order, the way
// a payment round trip would.
func WithProcessingDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(cart *store.CartStore, history *store.OrderHistory, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		cart:      cart,
		history:   history,
		publisher: events.NoopPublisher{},
		pricing:   DefaultPricing(),
		now:       time.Now,
		newID:     NewOrderID,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewOrderID() string {
	return "ORDER-" + uuid.NewString()
}

func (s *Service) Quote() Quote {
	return s.pricing.Quote(s.cart.Cart())
}

// ValidateDetails checks details against the service clock.
func (s *Service) ValidateDetails(details domain.OrderDetails) error {
	return details.Validate(s.now())
}

// Submit validates the details, records an order built from the current
// cart and then removes the ordered lines from the cart. Items added while
// the order is processed stay in the cart. If the order cannot be recorded
// the cart is left untouched. Duplicate submissions must be suppressed by the caller.
func (s *Service) Submit(ctx context.Context, details domain.OrderDetails) (domain.Order, error) {
	now := s.now()
	if err := details.Validate(now); err != nil {
		return domain.Order{}, err
	}

	cart := s.cart.Cart()
	if cart.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}
	quote := s.pricing.Quote(cart)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return domain.Order{}, fmt.Errorf("checkout interrupted: %w", ctx.Err())
		}
	}

	order := domain.Order{
		ID:           s.newID(),
		Items:        cart.Snapshot(),
		Subtotal:     quote.Subtotal,
		Tax:          quote.Tax,
		Shipping:     quote.Shipping,
		Total:        quote.Total,
		OrderDetails: details,
		CreatedAt:    now.UTC(),
		Status:       domain.OrderStatusPending,
	}

	if err := s.history.Append(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to record order", "order_id", order.ID, "error", err)
		return domain.Order{}, fmt.Errorf("failed to record order: %w", err)
	}
	s.cart.RemoveLines(ctx, order.Items)

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order event", "order_id", order.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"items", quote.ItemCount,
		"total", order.Total.StringFixed(2),
	)
	return order.Clone(), nil
}
