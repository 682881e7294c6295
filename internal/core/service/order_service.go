package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

type OrderService struct {
	orders    ports.OrderRepository
	products  ports.ProductRepository
	customers ports.CustomerRepository
	addresses ports.AddressRepository
	events    ports.OrderEventPublisher
	history   ports.OrderEventRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	customers ports.CustomerRepository,
	addresses ports.AddressRepository,
	events ports.OrderEventPublisher,
	history ports.OrderEventRepository,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		customers: customers,
		addresses: addresses,
		events:    events,
		history:   history,
		logger:    logger,
		now:       time.Now,
	}
}

// Checkout prices the submitted cart against the catalog and places a
// pending order shipped to a snapshot of one of the caller's addresses.
func (s *OrderService) Checkout(ctx context.Context, in ports.CheckoutInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "must not be empty")
	}
	if in.AddressID == "" {
		return nil, domain.NewValidationError("address_id", "is required")
	}

	var cart domain.Cart
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity", "must be greater than 0")
		}
		cart.Add(it.ProductID, it.Quantity)
		ids = append(ids, it.ProductID)
	}

	customer, err := s.customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	addr, err := s.addresses.FindByID(ctx, in.CustomerID, in.AddressID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("checkout: load products: %w", err)
	}
	quote, err := domain.PriceCart(&cart, products, in.Role)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:                   uuid.NewString(),
		OrderNumber:          domain.NewOrderNumber(now),
		CustomerID:           customer.ID,
		CustomerEmail:        customer.Email,
		CustomerName:         firstNonEmpty(customer.FullName(), addr.FullName),
		CustomerPhone:        firstNonEmpty(customer.Phone, addr.Phone),
		Status:               domain.OrderPending,
		PaymentStatus:        domain.PaymentPending,
		PaymentMethod:        strings.TrimSpace(in.PaymentMethod),
		ShippingAddress:      *addr,
		DeliveryInstructions: strings.TrimSpace(in.DeliveryInstructions),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	order.ShippingAddress.IsDefault = false
	quote.Apply(order)

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	if err := s.customers.RecordOrder(ctx, customer.ID, order.TotalAmount); err != nil {
		s.logger.Warn().Err(err).Str("customer_id", customer.ID).Msg("failed to update order stats")
	}

	s.events.Publish(domain.OrderStatusEvent{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		ChangedBy:     customer.ID,
		ChangedAt:     now,
	})

	s.logger.Info().Str("order_number", order.OrderNumber).Str("customer_id", customer.ID).Float64("total", order.TotalAmount).Msg("order placed")
	return order, nil
}

// ListOwn lists the caller's orders, newest first.
func (s *OrderService) ListOwn(ctx context.Context, customerID string, in ports.ListOrdersInput) (*ports.OrderPage, error) {
	return s.list(ctx, ports.ListOrdersFilter{CustomerID: customerID, Status: in.Status, Page: in.Page, Limit: in.Limit})
}

// GetOwn returns the order only when the caller owns it.
func (s *OrderService) GetOwn(ctx context.Context, customerID, orderNumber string) (*domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.orders.FindByNumber(ctx, orderNumber, customerID)
}

func (s *OrderService) List(ctx context.Context, in ports.ListOrdersInput) (*ports.OrderPage, error) {
	if in.Status != "" && !domain.OrderStatus(in.Status).Valid() {
		return nil, domain.NewValidationError("status", "must be a known order status")
	}
	if in.PaymentStatus != "" && !domain.PaymentStatus(in.PaymentStatus).Valid() {
		return nil, domain.NewValidationError("payment_status", "must be a known payment status")
	}
	return s.list(ctx, ports.ListOrdersFilter{Status: in.Status, PaymentStatus: in.PaymentStatus, Page: in.Page, Limit: in.Limit})
}

// Get returns an order with its recorded status changes. Events still queued
// in the dispatcher are not part of the history yet.
func (s *OrderService) Get(ctx context.Context, id string) (*ports.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.history.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("order %s history: %w", order.OrderNumber, err)
	}
	if history == nil {
		history = []*domain.OrderStatusEvent{}
	}
	return &ports.OrderDetail{Order: order, StatusHistory: history}, nil
}

// UpdateStatus applies an admin status change. Any known status may follow
// any other. The change is published to the audit dispatcher.
func (s *OrderService) UpdateStatus(ctx context.Context, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
	var upd ports.OrderStatusUpdate
	if in.Status != "" {
		st := domain.OrderStatus(in.Status)
		if !st.Valid() {
			return nil, domain.NewValidationError("status", "must be a known order status")
		}
		upd.Status = &st
	}
	if in.PaymentStatus != "" {
		ps := domain.PaymentStatus(in.PaymentStatus)
		if !ps.Valid() {
			return nil, domain.NewValidationError("payment_status", "must be a known payment status")
		}
		upd.PaymentStatus = &ps
	}
	upd.InternalNotes = in.InternalNotes
	if upd.Status == nil && upd.PaymentStatus == nil && upd.InternalNotes == nil {
		return nil, domain.NewValidationError("", "nothing to update")
	}

	order, err := s.orders.UpdateStatus(ctx, in.OrderID, upd)
	if err != nil {
		return nil, err
	}

	s.events.Publish(domain.OrderStatusEvent{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		ChangedBy:     in.ChangedBy,
		ChangedAt:     s.now().UTC(),
	})
	s.logger.Info().Str("order_number", order.OrderNumber).Str("status", string(order.Status)).Str("payment_status", string(order.PaymentStatus)).Msg("order updated")
	return order, nil
}

func (s *OrderService) Dashboard(ctx context.Context) (*ports.Dashboard, error) {
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count products: %w", err)
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count orders: %w", err)
	}
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count customers: %w", err)
	}
	revenue, err := s.orders.PaidRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: revenue: %w", err)
	}
	recent, _, err := s.orders.List(ctx, ports.ListOrdersFilter{Page: 1, Limit: recentOrdersLimit})
	if err != nil {
		return nil, fmt.Errorf("dashboard: recent orders: %w", err)
	}

	return &ports.Dashboard{
		Products:     products,
		Orders:       orders,
		Customers:    customers,
		Revenue:      revenue,
		RecentOrders: recent,
	}, nil
}

func (s *OrderService) list(ctx context.Context, f ports.ListOrdersFilter) (*ports.OrderPage, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)
	items, total, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ports.OrderPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
