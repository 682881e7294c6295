package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/core/domain"
)

// Context keys set once a request's identity is resolved.
const (
	CustomerIDKey = "customer_id"
	RoleKey       = "role"
	CustomerKey   = "customer"
)

// SessionResolver turns a session token into the stored customer record.
type SessionResolver interface {
	VerifySession(token string) (string, error)
	Customer(ctx context.Context, id string) (*domain.Customer, error)
}

// SessionToken reads the session from cookieName, falling back to a bearer
// Authorization header.
func SessionToken(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Session requires an authenticated, active customer on API routes. It fails
// with ErrUnauthenticated (401) or ErrAccountDisabled (403) instead of
// redirecting.
func Session(auth SessionResolver, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(CustomerKey).(*domain.Customer); ok {
				return next(c)
			}

			token := SessionToken(c, cookieName)
			if token == "" {
				return domain.ErrUnauthenticated
			}
			id, err := auth.VerifySession(token)
			if err != nil {
				return domain.ErrUnauthenticated
			}

			customer, err := auth.Customer(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrCustomerNotFound) {
					return domain.ErrUnauthenticated
				}
				return err
			}
			role, ok := domain.ParseRole(string(customer.Role))
			if !customer.IsActive() || !ok {
				return domain.ErrAccountDisabled
			}

			setIdentity(c, customer, role)
			return next(c)
		}
	}
}

func setIdentity(c echo.Context, customer *domain.Customer, role domain.Role) {
	c.Set(CustomerIDKey, customer.ID)
	c.Set(RoleKey, role)
	c.Set(CustomerKey, customer)
}
