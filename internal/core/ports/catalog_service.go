package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// ListProductsInput carries catalog list parameters from the transport layer.
type ListProductsInput struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// ProductPage is one page of products.
type ProductPage struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductInput carries admin product fields. Nil pointers are left unchanged on update.
type ProductInput struct {
	SKU              *string
	Name             *string
	Slug             *string
	Description      *string
	ShortDescription *string
	Category         *string
	Brand            *string
	RetailPrice      *float64
	WholesalePrice   *float64
	MinWholesaleQty  *int
	StockQuantity    *int
	Tags             []string
	Status           *string
	IsFeatured       *bool
	Images           []domain.ProductImage
}

type CatalogService interface {
	ListPublished(ctx context.Context, input ListProductsInput) (*ProductPage, error)
	GetPublished(ctx context.Context, slug string) (*domain.Product, error)

	ListAll(ctx context.Context, input ListProductsInput, status string) (*ProductPage, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
