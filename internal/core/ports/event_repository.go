package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// OrderEventRepository appends to the order status audit trail.
type OrderEventRepository interface {
	Insert(ctx context.Context, event *domain.OrderStatusEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]*domain.OrderStatusEvent, error)
}
