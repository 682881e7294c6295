package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// AddressInput holds the editable address fields.
type AddressInput struct {
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PinCode      string
	Landmark     string
	AddressType  string
	IsDefault    bool
}

// AddressPatch holds a partial address update; nil means unchanged.
type AddressPatch struct {
	FullName     *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PinCode      *string
	Landmark     *string
	AddressType  *string
}

// AccountSummary is the landing data of the account area.
type AccountSummary struct {
	Customer     *domain.Customer
	Credits      domain.CreditBalance
	RecentOrders []*domain.Order
	Addresses    int
}

type AccountService interface {
	Profile(ctx context.Context, customerID string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, customerID string, upd ProfileUpdate) (*domain.Customer, error)
	Summary(ctx context.Context, customerID string) (*AccountSummary, error)

	ListAddresses(ctx context.Context, customerID string) ([]*domain.Address, error)
	AddAddress(ctx context.Context, customerID string, input AddressInput) (*domain.Address, error)
	UpdateAddress(ctx context.Context, customerID, addressID string, patch AddressPatch) (*domain.Address, error)
	DeleteAddress(ctx context.Context, customerID, addressID string) error
	SetDefaultAddress(ctx context.Context, customerID, addressID string) error
}
