package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// RegisterInput carries a storefront sign-up.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (string, *domain.Customer, error)
	// VerifySession returns the customer id carried by a session token.
	VerifySession(token string) (string, error)
	// Customer loads the stored identity record behind a session.
	Customer(ctx context.Context, id string) (*domain.Customer, error)
}
