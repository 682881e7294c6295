package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// OrderEventService records order status events taken off the dispatcher.
type OrderEventService interface {
	Record(ctx context.Context, event domain.OrderStatusEvent) error
}

// OrderEventPublisher hands status events to the background dispatcher.
type OrderEventPublisher interface {
	Publish(event domain.OrderStatusEvent)
}
