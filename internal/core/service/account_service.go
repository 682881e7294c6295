package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

const recentOrdersLimit = 5

// AccountService serves a customer's own profile and address book.
type AccountService struct {
	customers ports.CustomerRepository
	addresses ports.AddressRepository
	orders    ports.OrderRepository
	logger    zerolog.Logger
}

func NewAccountService(customers ports.CustomerRepository, addresses ports.AddressRepository, orders ports.OrderRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{customers: customers, addresses: addresses, orders: orders, logger: logger}
}

func (s *AccountService) Profile(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, customerID)
}

// UpdateProfile trims every field; an empty value clears it.
func (s *AccountService) UpdateProfile(ctx context.Context, customerID string, upd ports.ProfileUpdate) (*domain.Customer, error) {
	upd = ports.ProfileUpdate{
		FirstName: strings.TrimSpace(upd.FirstName),
		LastName:  strings.TrimSpace(upd.LastName),
		Phone:     strings.TrimSpace(upd.Phone),
	}
	return s.customers.UpdateProfile(ctx, customerID, upd)
}

func (s *AccountService) Summary(ctx context.Context, customerID string) (*ports.AccountSummary, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders, _, err := s.orders.List(ctx, ports.ListOrdersFilter{CustomerID: customerID, Page: 1, Limit: recentOrdersLimit})
	if err != nil {
		return nil, fmt.Errorf("account summary: %w", err)
	}

	addresses, err := s.addresses.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("account summary: %w", err)
	}

	return &ports.AccountSummary{
		Customer:     customer,
		Credits:      customer.Balance(),
		RecentOrders: orders,
		Addresses:    len(addresses),
	}, nil
}

// ListAddresses returns the address book with IsDefault derived from the customer record.
func (s *AccountService) ListAddresses(ctx context.Context, customerID string) ([]*domain.Address, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addresses.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	domain.MarkDefault(addresses, customer.DefaultAddressID)
	return addresses, nil
}

func (s *AccountService) AddAddress(ctx context.Context, customerID string, in ports.AddressInput) (*domain.Address, error) {
	addrType, err := parseAddressType(in.AddressType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	addr := &domain.Address{
		ID:           uuid.NewString(),
		CustomerID:   customerID,
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        strings.TrimSpace(in.Phone),
		AddressLine1: strings.TrimSpace(in.AddressLine1),
		AddressLine2: strings.TrimSpace(in.AddressLine2),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		PinCode:      strings.TrimSpace(in.PinCode),
		Landmark:     strings.TrimSpace(in.Landmark),
		AddressType:  addrType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.addresses.Create(ctx, addr); err != nil {
		return nil, err
	}

	if in.IsDefault {
		if err := s.customers.SetDefaultAddress(ctx, customerID, addr.ID); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
		addr.IsDefault = true
	}
	return addr, nil
}

func (s *AccountService) UpdateAddress(ctx context.Context, customerID, addressID string, p ports.AddressPatch) (*domain.Address, error) {
	addr, err := s.addresses.FindByID(ctx, customerID, addressID)
	if err != nil {
		return nil, err
	}

	applyString(&addr.FullName, p.FullName)
	applyString(&addr.Phone, p.Phone)
	applyString(&addr.AddressLine1, p.AddressLine1)
	applyString(&addr.AddressLine2, p.AddressLine2)
	applyString(&addr.City, p.City)
	applyString(&addr.State, p.State)
	applyString(&addr.PinCode, p.PinCode)
	applyString(&addr.Landmark, p.Landmark)
	if p.AddressType != nil {
		t, err := parseAddressType(*p.AddressType)
		if err != nil {
			return nil, err
		}
		addr.AddressType = t
	}
	addr.UpdatedAt = time.Now().UTC()

	if err := s.addresses.Update(ctx, addr); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	addr.IsDefault = customer.DefaultAddressID == addr.ID
	return addr, nil
}

// DeleteAddress removes an owned address and clears the default when it pointed there.
func (s *AccountService) DeleteAddress(ctx context.Context, customerID, addressID string) error {
	if err := s.addresses.Delete(ctx, customerID, addressID); err != nil {
		return err
	}
	if err := s.customers.ClearDefaultAddress(ctx, customerID, addressID); err != nil {
		s.logger.Warn().Err(err).Str("customer_id", customerID).Msg("failed to clear default address")
	}
	return nil
}

// SetDefaultAddress verifies ownership and repoints the customer's default.
// The address is checked again after the write: when a concurrent delete
// removed it in between, the default is cleared (only if it still points
// there) and ErrAddressNotFound is returned.
func (s *AccountService) SetDefaultAddress(ctx context.Context, customerID, addressID string) error {
	if _, err := s.addresses.FindByID(ctx, customerID, addressID); err != nil {
		return err
	}
	if err := s.customers.SetDefaultAddress(ctx, customerID, addressID); err != nil {
		return err
	}

	_, err := s.addresses.FindByID(ctx, customerID, addressID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrAddressNotFound) {
		return fmt.Errorf("recheck default address: %w", err)
	}
	if clearErr := s.customers.ClearDefaultAddress(ctx, customerID, addressID); clearErr != nil {
		s.logger.Error().Err(clearErr).Str("customer_id", customerID).Msg("failed to clear dangling default address")
		return fmt.Errorf("clear dangling default address: %w", clearErr)
	}
	return domain.ErrAddressNotFound
}

func parseAddressType(s string) (domain.AddressType, error) {
	switch t := domain.AddressType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return domain.AddressHome, nil
	case domain.AddressHome, domain.AddressOffice, domain.AddressOther:
		return t, nil
	}
	return "", domain.NewValidationError("address_type", "must be one of: home office other")
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
