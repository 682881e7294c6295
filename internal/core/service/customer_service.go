package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

// CustomerService backs the admin customer pages.
type CustomerService struct {
	repo   ports.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) List(ctx context.Context, f ports.ListCustomersFilter) (*ports.CustomerPage, error) {
	if f.Role != "" {
		if _, ok := domain.ParseRole(f.Role); !ok {
			return nil, domain.NewValidationError("role", "must be a known role")
		}
	}
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ports.CustomerPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

// GrantCredits adds try-on credits to a customer's balance.
func (s *CustomerService) GrantCredits(ctx context.Context, customerID string, amount int) (*domain.CreditBalance, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "must be greater than 0")
	}
	c, err := s.repo.GrantTryOnCredits(ctx, customerID, amount)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("customer_id", customerID).Int("amount", amount).Msg("try-on credits granted")
	b := c.Balance()
	return &b, nil
}
