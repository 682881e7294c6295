package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/core/domain"
)

func runSession(res *stubResolver, token string) (error, bool, echo.Context) {
	c, _ := newCtx(http.MethodGet, "/api/profile", token)
	called := false
	err := Session(res, testCookie)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return err, called, c
}

func TestSession_Resolves(t *testing.T) {
	err, called, c := runSession(newResolver(), "tok-normal")
	if err != nil || !called {
		t.Fatalf("err=%v called=%v", err, called)
	}
	if c.Get(RoleKey) != domain.RoleNormal {
		t.Fatalf("role = %v", c.Get(RoleKey))
	}
	if cust, _ := c.Get(CustomerKey).(*domain.Customer); cust == nil || cust.ID != "c-normal" {
		t.Fatalf("customer not set")
	}
}

func TestSession_Rejections(t *testing.T) {
	cases := []struct {
		token string
		want  error
	}{
		{"", domain.ErrUnauthenticated},
		{"nope", domain.ErrUnauthenticated},
		{"tok-ghost", domain.ErrUnauthenticated},
		{"tok-blocked", domain.ErrAccountDisabled},
		{"tok-inactive", domain.ErrAccountDisabled},
		{"tok-weird", domain.ErrAccountDisabled},
	}
	for _, tc := range cases {
		err, called, _ := runSession(newResolver(), tc.token)
		if called {
			t.Fatalf("token %q: next should not run", tc.token)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("token %q: err = %v, want %v", tc.token, err, tc.want)
		}
	}
}

func TestSession_LookupErrorPropagates(t *testing.T) {
	res := newResolver()
	res.lookupErr = errLookup
	err, _, _ := runSession(res, "tok-normal")
	if !errors.Is(err, errLookup) {
		t.Fatalf("err = %v", err)
	}
}
