package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
)

func runGate(t *testing.T, res *stubResolver, target, token string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	c, rec := newCtx(http.MethodGet, target, token)
	called := false
	h := Gate(res, testCookie, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
	return rec, called, c
}

func TestGate_Decisions(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		token    string
		allowed  bool
		location string
	}{
		{"public path without session", "/products", "", true, ""},
		{"lookalike prefix is public", "/accounts/x", "", true, ""},
		{"api is not gated", "/api/profile", "", true, ""},

		{"admin allowed admin", "/admin/orders", "tok-admin", true, ""},
		{"admin allowed wholesale", "/wholesale", "tok-admin", true, ""},
		{"admin allowed account", "/account", "tok-admin", true, ""},

		{"wholesaler denied admin", "/admin", "tok-wholesale", false, "/wholesale"},
		{"wholesaler allowed wholesale", "/wholesale/products", "tok-wholesale", true, ""},
		{"wholesaler allowed account", "/account/orders", "tok-wholesale", true, ""},

		{"normal denied admin", "/admin/customers", "tok-normal", false, "/account"},
		{"normal denied wholesale", "/wholesale", "tok-normal", false, "/account"},
		{"normal allowed account", "/account", "tok-normal", true, ""},

		{"blocked admin", "/admin", "tok-blocked", false, domain.UnauthorizedPath},
		{"inactive normal", "/account", "tok-inactive", false, domain.UnauthorizedPath},
		{"unknown role", "/account", "tok-weird", false, domain.UnauthorizedPath},
		{"no customer record", "/account", "tok-ghost", false, domain.UnauthorizedPath},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, called, _ := runGate(t, newResolver(), tc.path, tc.token)
			if called != tc.allowed {
				t.Fatalf("allowed = %v, want %v (status %d)", called, tc.allowed, rec.Code)
			}
			if tc.allowed {
				return
			}
			if rec.Code != http.StatusTemporaryRedirect {
				t.Fatalf("expected 307, got %d", rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderLocation); got != tc.location {
				t.Fatalf("location = %q, want %q", got, tc.location)
			}
		})
	}
}

func TestGate_UnauthenticatedAlwaysGoesToLogin(t *testing.T) {
	for _, target := range []string{"/account", "/account/orders?page=2", "/admin", "/wholesale/products"} {
		for _, token := range []string{"", "garbage"} {
			rec, called, _ := runGate(t, newResolver(), target, token)
			if called {
				t.Fatalf("%s with token %q should not be allowed", target, token)
			}
			loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
			if err != nil {
				t.Fatalf("bad location: %v", err)
			}
			if loc.Path != domain.LoginPath {
				t.Fatalf("%s: redirected to %q, want login", target, loc.Path)
			}
			if got := loc.Query().Get(domain.RedirectParam); got != target {
				t.Fatalf("%s: return target = %q", target, got)
			}
		}
	}
}

func TestGate_LookupErrorGoesToUnauthorized(t *testing.T) {
	res := newResolver()
	res.lookupErr = errLookup

	rec, called, _ := runGate(t, res, "/account", "tok-normal")
	if called {
		t.Fatal("should not be allowed")
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != domain.UnauthorizedPath {
		t.Fatalf("location = %q", got)
	}
}

func TestGate_BearerHeaderAccepted(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok-admin")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Gate(newResolver(), testCookie, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("gate error: %v", err)
	}
	if !called {
		t.Fatalf("bearer session should be accepted, got %d", rec.Code)
	}
}

func TestGate_AllowedRequestCarriesIdentity(t *testing.T) {
	_, called, c := runGate(t, newResolver(), "/wholesale", "tok-wholesale")
	if !called {
		t.Fatal("expected allow")
	}
	if c.Get(CustomerIDKey) != "c-wholesale" {
		t.Fatalf("customer id = %v", c.Get(CustomerIDKey))
	}
	if c.Get(RoleKey) != domain.RoleWholesaler {
		t.Fatalf("role = %v", c.Get(RoleKey))
	}
}
