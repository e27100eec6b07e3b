// Package events announces placed orders to downstream consumers.
package events

import (
	"context"

	"github.com/fjod/storefront/internal/domain"
)

const (
	DefaultTopic     = "orders.placed"
	OrderPlacedEvent = "order.placed"
)

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order domain.Order) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, domain.Order) error { return nil }

func (NoopPublisher) Close() error { return nil }
