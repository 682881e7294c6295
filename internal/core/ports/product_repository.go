package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// ListProductsFilter carries catalog query parameters.
type ListProductsFilter struct {
	Status   domain.ProductStatus // empty = any status (admin)
	Category string
	Search   string // partial match on name, brand or tags
	Page     int
	Limit    int
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Count(ctx context.Context) (int64, error)
}
