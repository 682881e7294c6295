package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/core/ports"
)

// CatalogHandler serves the public catalog and the gated wholesale area.
type CatalogHandler struct {
	catalog  ports.CatalogService
	accounts ports.AccountService
}

func NewCatalogHandler(catalog ports.CatalogService, accounts ports.AccountService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, accounts: accounts}
}

func listProductsInput(c echo.Context) ports.ListProductsInput {
	return ports.ListProductsInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
}

// List handles GET /api/products.
//
// @Summary      List published products
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Category"
// @Param        search    query     string  false  "Search in name, description and brand"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.Product]
// @Router       /api/products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	page, err := h.catalog.ListPublished(c.Request().Context(), listProductsInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductList(page))
}

// Get handles GET /api/products/:slug.
//
// @Summary      Get a published product
// @Tags         catalog
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Router       /api/products/{slug} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	p, err := h.catalog.GetPublished(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// WholesaleSummary handles GET /wholesale.
//
// @Summary      Wholesale landing data
// @Tags         wholesale
// @Produce      json
// @Success      200  {object}  accountSummaryResponse
// @Failure      307  "redirect to login, unauthorized or own home"
// @Router       /wholesale [get]
func (h *CatalogHandler) WholesaleSummary(c echo.Context) error {
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

// WholesaleProducts handles GET /wholesale/products.
//
// @Summary      Published products with wholesale pricing
// @Tags         wholesale
// @Produce      json
// @Param        category  query     string  false  "Category"
// @Param        search    query     string  false  "Search"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[wholesaleProductResponse]
// @Router       /wholesale/products [get]
func (h *CatalogHandler) WholesaleProducts(c echo.Context) error {
	page, err := h.catalog.ListPublished(c.Request().Context(), listProductsInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWholesaleList(page))
}
