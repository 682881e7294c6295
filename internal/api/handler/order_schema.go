package handler

import "github.com/alzia/storefront/internal/core/domain"

type checkoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"gt=0"`
}

type checkoutRequest struct {
	Items                []checkoutItemRequest `json:"items"                 validate:"required,min=1,dive"`
	AddressID            string                `json:"address_id"            validate:"required"`
	PaymentMethod        string                `json:"payment_method"`
	DeliveryInstructions string                `json:"delivery_instructions"`
}

type updateOrderStatusRequest struct {
	Status        string  `json:"status"         validate:"omitempty,oneof=pending confirmed processing packed shipped out_for_delivery delivered cancelled returned"`
	PaymentStatus string  `json:"payment_status" validate:"omitempty,oneof=pending paid failed refunded"`
	InternalNotes *string `json:"internal_notes"`
}

type grantCreditsRequest struct {
	Amount int `json:"amount" validate:"gt=0"`
}

type dashboardResponse struct {
	Products     int64           `json:"products"`
	Orders       int64           `json:"orders"`
	Customers    int64           `json:"customers"`
	Revenue      float64         `json:"revenue"`
	RecentOrders []*domain.Order `json:"recent_orders"`
}

// orderDetailResponse flattens the order and appends its status audit trail.
type orderDetailResponse struct {
	*domain.Order
	StatusHistory []*domain.OrderStatusEvent `json:"status_history"`
}
