package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/core/domain"
)

const testCookie = "session"

// stubResolver maps tokens to customer ids and ids to records.
type stubResolver struct {
	tokens    map[string]string
	customers map[string]*domain.Customer
	lookupErr error
}

func (s *stubResolver) VerifySession(token string) (string, error) {
	id, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

func (s *stubResolver) Customer(_ context.Context, id string) (*domain.Customer, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	c, ok := s.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

func newResolver() *stubResolver {
	return &stubResolver{
		tokens: map[string]string{
			"tok-admin":     "c-admin",
			"tok-wholesale": "c-wholesale",
			"tok-normal":    "c-normal",
			"tok-blocked":   "c-blocked",
			"tok-inactive":  "c-inactive",
			"tok-weird":     "c-weird",
			"tok-ghost":     "c-ghost",
		},
		customers: map[string]*domain.Customer{
			"c-admin":     {ID: "c-admin", Role: domain.RoleAdmin, Status: domain.StatusActive},
			"c-wholesale": {ID: "c-wholesale", Role: domain.RoleWholesaler, Status: domain.StatusActive},
			"c-normal":    {ID: "c-normal", Role: domain.RoleNormal, Status: domain.StatusActive},
			"c-blocked":   {ID: "c-blocked", Role: domain.RoleAdmin, Status: domain.StatusBlocked},
			"c-inactive":  {ID: "c-inactive", Role: domain.RoleNormal, Status: domain.StatusInactive},
			"c-weird":     {ID: "c-weird", Role: domain.Role("superuser"), Status: domain.StatusActive},
		},
	}
}

var errLookup = errors.New("mongo down")

func newCtx(method, target, token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
