package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/api/metrics"
	"github.com/alzia/storefront/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout handles POST /api/orders.
//
// @Summary      Place an order from the cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      checkoutRequest  true  "Cart lines and delivery address"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	id, role, err := identity(c)
	if err != nil {
		return err
	}
	var req checkoutRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	order, err := h.orders.Checkout(c.Request().Context(), toCheckoutInput(req, id, role))
	if err != nil {
		return err
	}
	metrics.OrdersPlacedTotal.WithLabelValues(string(role)).Inc()
	return c.JSON(http.StatusCreated, order)
}

// ListOwn handles GET /api/orders.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        status  query     string  false  "Order status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Order]
// @Router       /api/orders [get]
func (h *OrderHandler) ListOwn(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	page, err := h.orders.ListOwn(c.Request().Context(), id, ports.ListOrdersInput{
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderList(page))
}
