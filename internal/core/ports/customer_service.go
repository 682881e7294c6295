package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// CustomerPage is one page of customers.
type CustomerPage struct {
	Items      []*domain.Customer
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type CustomerService interface {
	List(ctx context.Context, filter ListCustomersFilter) (*CustomerPage, error)
	GrantCredits(ctx context.Context, customerID string, amount int) (*domain.CreditBalance, error)
}
