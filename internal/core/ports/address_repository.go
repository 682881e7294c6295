package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// AddressRepository scopes every query by customer id; a foreign address
// is reported as domain.ErrAddressNotFound.
type AddressRepository interface {
	Create(ctx context.Context, a *domain.Address) error
	FindByID(ctx context.Context, customerID, id string) (*domain.Address, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Address, error)
	Update(ctx context.Context, a *domain.Address) error
	Delete(ctx context.Context, customerID, id string) error
}
