package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/core/ports"
)

// AdminHandler serves the gated /admin area.
type AdminHandler struct {
	orders    ports.OrderService
	customers ports.CustomerService
	catalog   ports.CatalogService
}

func NewAdminHandler(orders ports.OrderService, customers ports.CustomerService, catalog ports.CatalogService) *AdminHandler {
	return &AdminHandler{orders: orders, customers: customers, catalog: catalog}
}

// Dashboard handles GET /admin.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      307  "redirect to login, unauthorized or own home"
// @Router       /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	d, err := h.orders.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Products:     d.Products,
		Orders:       d.Orders,
		Customers:    d.Customers,
		Revenue:      d.Revenue,
		RecentOrders: ordersOrEmpty(d.RecentOrders),
	})
}

// ListOrders handles GET /admin/orders.
//
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Param        status          query     string  false  "Order status"
// @Param        payment_status  query     string  false  "Payment status"
// @Param        page            query     int     false  "Page (1-based)"
// @Param        limit           query     int     false  "Page size (max 100)"
// @Success      200             {object}  listResponse[domain.Order]
// @Failure      400             {object}  errorResponse
// @Router       /admin/orders [get]
func (h *AdminHandler) ListOrders(c echo.Context) error {
	page, err := h.orders.List(c.Request().Context(), ports.ListOrdersInput{
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderList(page))
}

// GetOrder handles GET /admin/orders/:id.
//
// @Summary      Get any order with its status history
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c echo.Context) error {
	d, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderDetailResponse{Order: d.Order, StatusHistory: d.StatusHistory})
}

// UpdateOrderStatus handles PATCH /admin/orders/:id/status.
//
// @Summary      Change order or payment status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Order id"
// @Param        body  body      updateOrderStatusRequest  true  "New status values"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	adminID, _, err := identity(c)
	if err != nil {
		return err
	}
	var req updateOrderStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	order, err := h.orders.UpdateStatus(c.Request().Context(), ports.UpdateOrderStatusInput{
		OrderID:       c.Param("id"),
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		InternalNotes: req.InternalNotes,
		ChangedBy:     adminID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// ListCustomers handles GET /admin/customers.
//
// @Summary      List customers
// @Tags         admin
// @Produce      json
// @Param        role    query     string  false  "admin, wholesaler or normal"
// @Param        status  query     string  false  "active, blocked or inactive"
// @Param        search  query     string  false  "Email or name"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Customer]
// @Router       /admin/customers [get]
func (h *AdminHandler) ListCustomers(c echo.Context) error {
	page, err := h.customers.List(c.Request().Context(), ports.ListCustomersFilter{
		Role:   c.QueryParam("role"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCustomerList(page))
}

// GrantCredits handles POST /admin/customers/:id/credits.
//
// @Summary      Grant virtual try-on credits
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Customer id"
// @Param        body  body      grantCreditsRequest  true  "Credits to add"
// @Success      200   {object}  domain.CreditBalance
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/customers/{id}/credits [post]
func (h *AdminHandler) GrantCredits(c echo.Context) error {
	var req grantCreditsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	balance, err := h.customers.GrantCredits(c.Request().Context(), c.Param("id"), req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balance)
}

// ListProducts handles GET /admin/products.
//
// @Summary      List products in any status
// @Tags         admin
// @Produce      json
// @Param        status    query     string  false  "draft, published or archived"
// @Param        category  query     string  false  "Category"
// @Param        search    query     string  false  "Search"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.Product]
// @Router       /admin/products [get]
func (h *AdminHandler) ListProducts(c echo.Context) error {
	page, err := h.catalog.ListAll(c.Request().Context(), listProductsInput(c), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductList(page))
}

// CreateProduct handles POST /admin/products.
//
// @Summary      Create a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      productRequest  true  "Product; slug is derived from name when absent"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/products [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.catalog.CreateProduct(c.Request().Context(), toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles PATCH /admin/products/:id.
//
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/products/{id} [patch]
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var req productRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.catalog.UpdateProduct(c.Request().Context(), c.Param("id"), toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /admin/products/:id.
//
// @Summary      Delete a product
// @Tags         admin
// @Param        id   path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
