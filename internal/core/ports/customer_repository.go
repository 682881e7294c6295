package ports

import (
	"context"
	"time"

	"github.com/alzia/storefront/internal/core/domain"
)

// ProfileUpdate carries the editable profile fields. Empty strings clear the field.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
}

// ListCustomersFilter carries the admin customer list query.
type ListCustomersFilter struct {
	Role   string
	Status string
	Search string // partial match on email or name
	Page   int
	Limit  int
}

// CustomerRepository persists customers and their try-on credit ledger.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*domain.Customer, error)
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
	Count(ctx context.Context) (int64, error)

	// SetDefaultAddress points the customer at addressID in one update.
	SetDefaultAddress(ctx context.Context, customerID, addressID string) error
	// ClearDefaultAddress unsets the default only while it still equals addressID.
	ClearDefaultAddress(ctx context.Context, customerID, addressID string) error

	// DeductTryOnCredit atomically moves one credit from balance to used and
	// stamps last_tryon_at. It returns ErrNoCredits when the balance is zero.
	DeductTryOnCredit(ctx context.Context, id string, at time.Time) (*domain.Customer, error)
	GrantTryOnCredits(ctx context.Context, id string, amount int) (*domain.Customer, error)
	// RecordOrder bumps order_count and total_spent after checkout.
	RecordOrder(ctx context.Context, id string, amount float64) error
}
