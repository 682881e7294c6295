package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// CheckoutItem is one requested cart line.
type CheckoutItem struct {
	ProductID string
	Quantity  int
}

// CheckoutInput is the cart submitted at checkout.
type CheckoutInput struct {
	CustomerID           string
	Role                 domain.Role
	Items                []CheckoutItem
	AddressID            string
	PaymentMethod        string
	DeliveryInstructions string
}

// ListOrdersInput carries order list parameters from the transport layer.
type ListOrdersInput struct {
	Status        string
	PaymentStatus string
	Page          int
	Limit         int
}

// OrderPage is one page of orders.
type OrderPage struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateOrderStatusInput is the admin status change request.
type UpdateOrderStatusInput struct {
	OrderID       string
	Status        string
	PaymentStatus string
	InternalNotes *string
	ChangedBy     string
}

// OrderDetail is an order with its status audit trail, oldest first.
type OrderDetail struct {
	Order         *domain.Order
	StatusHistory []*domain.OrderStatusEvent
}

// Dashboard is the admin landing summary.
type Dashboard struct {
	Products     int64
	Orders       int64
	Customers    int64
	Revenue      float64
	RecentOrders []*domain.Order
}

type OrderService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error)
	ListOwn(ctx context.Context, customerID string, input ListOrdersInput) (*OrderPage, error)
	GetOwn(ctx context.Context, customerID, orderNumber string) (*domain.Order, error)

	List(ctx context.Context, input ListOrdersInput) (*OrderPage, error)
	Get(ctx context.Context, id string) (*OrderDetail, error)
	UpdateStatus(ctx context.Context, input UpdateOrderStatusInput) (*domain.Order, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}
