package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// ListOrdersFilter carries order list query parameters.
// CustomerID is enforced by the service for customer-facing lists.
type ListOrdersFilter struct {
	CustomerID    string
	Status        string
	PaymentStatus string
	Page          int
	Limit         int
}

// OrderStatusUpdate holds the admin-editable order fields; nil means unchanged.
type OrderStatusUpdate struct {
	Status        *domain.OrderStatus
	PaymentStatus *domain.PaymentStatus
	InternalNotes *string
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// FindByNumber looks up an order by number. A non-empty customerID
	// restricts the match to that owner.
	FindByNumber(ctx context.Context, number, customerID string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id string, upd OrderStatusUpdate) (*domain.Order, error)
	Count(ctx context.Context) (int64, error)
	PaidRevenue(ctx context.Context) (float64, error)
}
