package domain

import (
	"strconv"
	"strings"
	"time"
)

// OrderStatus is admin-driven; any known value may follow any other.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderProcessing     OrderStatus = "processing"
	OrderPacked         OrderStatus = "packed"
	OrderShipped        OrderStatus = "shipped"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
	OrderReturned       OrderStatus = "returned"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderPending: {}, OrderConfirmed: {}, OrderProcessing: {}, OrderPacked: {},
	OrderShipped: {}, OrderOutForDelivery: {}, OrderDelivered: {},
	OrderCancelled: {}, OrderReturned: {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID    string  `json:"product_id" bson:"product_id"`
	ProductName  string  `json:"product_name" bson:"product_name"`
	ProductSKU   string  `json:"product_sku" bson:"product_sku"`
	ProductImage string  `json:"product_image,omitempty" bson:"product_image,omitempty"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	UnitPrice    float64 `json:"unit_price" bson:"unit_price"`
	TotalPrice   float64 `json:"total_price" bson:"total_price"`
}

// Order is owned by one customer; ShippingAddress is a snapshot taken at checkout.
type Order struct {
	ID                   string        `json:"id" bson:"_id"`
	OrderNumber          string        `json:"order_number" bson:"order_number"`
	CustomerID           string        `json:"customer_id" bson:"customer_id"`
	CustomerEmail        string        `json:"customer_email" bson:"customer_email"`
	CustomerName         string        `json:"customer_name" bson:"customer_name"`
	CustomerPhone        string        `json:"customer_phone,omitempty" bson:"customer_phone,omitempty"`
	Status               OrderStatus   `json:"status" bson:"status"`
	PaymentStatus        PaymentStatus `json:"payment_status" bson:"payment_status"`
	PaymentMethod        string        `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	Items                []OrderItem   `json:"items" bson:"items"`
	Subtotal             float64       `json:"subtotal" bson:"subtotal"`
	DiscountAmount       float64       `json:"discount_amount" bson:"discount_amount"`
	DeliveryCharge       float64       `json:"delivery_charge" bson:"delivery_charge"`
	TaxAmount            float64       `json:"tax_amount" bson:"tax_amount"`
	TotalAmount          float64       `json:"total_amount" bson:"total_amount"`
	ShippingAddress      Address       `json:"shipping_address" bson:"shipping_address"`
	DeliveryInstructions string        `json:"delivery_instructions,omitempty" bson:"delivery_instructions,omitempty"`
	InternalNotes        string        `json:"internal_notes,omitempty" bson:"internal_notes,omitempty"`
	CreatedAt            time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at" bson:"updated_at"`
}

// OrderStatusEvent is one entry of the order audit trail.
type OrderStatusEvent struct {
	OrderID       string        `json:"order_id" bson:"order_id"`
	OrderNumber   string        `json:"order_number" bson:"order_number"`
	Status        OrderStatus   `json:"status" bson:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" bson:"payment_status"`
	ChangedBy     string        `json:"changed_by" bson:"changed_by"`
	ChangedAt     time.Time     `json:"changed_at" bson:"changed_at"`
}

// NewOrderNumber formats t as "LUM" followed by its unix millis in upper-case base36.
func NewOrderNumber(t time.Time) string {
	return "LUM" + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}
