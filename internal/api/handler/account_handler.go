package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/core/ports"
)

// AccountHandler serves the gated /account area and the profile and address APIs.
type AccountHandler struct {
	accounts ports.AccountService
	orders   ports.OrderService
	tryOn    ports.TryOnService
}

func NewAccountHandler(accounts ports.AccountService, orders ports.OrderService, tryOn ports.TryOnService) *AccountHandler {
	return &AccountHandler{accounts: accounts, orders: orders, tryOn: tryOn}
}

// Summary handles GET /account.
//
// @Summary      Account landing data
// @Tags         account
// @Produce      json
// @Success      200  {object}  accountSummaryResponse
// @Failure      307  "redirect to login or unauthorized page"
// @Router       /account [get]
func (h *AccountHandler) Summary(c echo.Context) error {
	id, role, err := identity(c)
	if err != nil {
		return err
	}
	s, err := h.accounts.Summary(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(s, role))
}

// Orders handles GET /account/orders.
//
// @Summary      List own orders
// @Tags         account
// @Produce      json
// @Param        status  query     string  false  "Order status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Order]
// @Router       /account/orders [get]
func (h *AccountHandler) Orders(c echo.Context) error {
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

// Order handles GET /account/orders/:orderNumber.
//
// @Summary      Get an own order by number
// @Tags         account
// @Produce      json
// @Param        orderNumber  path      string  true  "Order number (e.g. LUMLOYW3V28)"
// @Success      200          {object}  domain.Order
// @Failure      404          {object}  errorResponse
// @Router       /account/orders/{orderNumber} [get]
func (h *AccountHandler) Order(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	order, err := h.orders.GetOwn(c.Request().Context(), id, c.Param("orderNumber"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// TryOnHistory handles GET /account/tryon/history.
//
// @Summary      Own virtual try-on results
// @Tags         account
// @Produce      json
// @Success      200  {array}  tryOnHistoryItem
// @Router       /account/tryon/history [get]
func (h *AccountHandler) TryOnHistory(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	results, err := h.tryOn.History(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryItems(results))
}

// Profile handles GET /api/profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  domain.Customer
// @Failure      401  {object}  errorResponse
// @Router       /api/profile [get]
func (h *AccountHandler) Profile(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	customer, err := h.accounts.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdateProfile handles PATCH /api/profile.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      updateProfileRequest  true  "Profile fields; empty values clear the field"
// @Success      200   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/profile [patch]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	customer, err := h.accounts.UpdateProfile(c.Request().Context(), id, ports.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// ListAddresses handles GET /api/addresses.
//
// @Summary      List own addresses
// @Tags         addresses
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.Address
// @Router       /api/addresses [get]
func (h *AccountHandler) ListAddresses(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	addrs, err := h.accounts.ListAddresses(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addrs)
}

// AddAddress handles POST /api/addresses.
//
// @Summary      Add an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      addressRequest  true  "Address"
// @Success      201   {object}  domain.Address
// @Failure      400   {object}  errorResponse
// @Router       /api/addresses [post]
func (h *AccountHandler) AddAddress(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	var req addressRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	addr, err := h.accounts.AddAddress(c.Request().Context(), id, toAddressInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, addr)
}

// UpdateAddress handles PATCH /api/addresses/:id.
//
// @Summary      Update an own address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string               true  "Address id"
// @Param        body  body      addressPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Address
// @Failure      404   {object}  errorResponse
// @Router       /api/addresses/{id} [patch]
func (h *AccountHandler) UpdateAddress(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	var req addressPatchRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	addr, err := h.accounts.UpdateAddress(c.Request().Context(), id, c.Param("id"), toAddressPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addr)
}

// DeleteAddress handles DELETE /api/addresses/:id.
//
// @Summary      Delete an own address
// @Tags         addresses
// @Security     SessionCookie
// @Param        id   path  string  true  "Address id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/addresses/{id} [delete]
func (h *AccountHandler) DeleteAddress(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.accounts.DeleteAddress(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetDefaultAddress handles POST /api/addresses/:id/default.
//
// @Summary      Make an own address the default
// @Tags         addresses
// @Security     SessionCookie
// @Param        id   path  string  true  "Address id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/addresses/{id}/default [post]
func (h *AccountHandler) SetDefaultAddress(c echo.Context) error {
	id, _, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.accounts.SetDefaultAddress(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
