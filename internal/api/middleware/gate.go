package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/api/metrics"
	"github.com/alzia/storefront/internal/core/domain"
)

const (
	decisionAllow        = "allow"
	decisionLogin        = "login"
	decisionUnauthorized = "unauthorized"
	decisionHome         = "home"
)

// Gate guards the /account, /admin and /wholesale areas. Register it with
// e.Pre so it runs before routing. Unauthenticated callers go to the login
// page with the original URI preserved, unknown or inactive accounts go to
// the unauthorized page and under-privileged callers go to their own home.
func Gate(auth SessionResolver, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			area, protected := domain.ProtectedArea(req.URL.Path)
			if !protected {
				return next(c)
			}

			token := SessionToken(c, cookieName)
			id, err := auth.VerifySession(token)
			if token == "" || err != nil {
				return redirect(c, area, decisionLogin, loginURL(req.URL.RequestURI()))
			}

			customer, err := auth.Customer(req.Context(), id)
			if err != nil {
				log.Warn().Err(err).Str("customer_id", id).Msg("gate: customer lookup failed")
				return redirect(c, area, decisionUnauthorized, domain.UnauthorizedPath)
			}
			role, ok := domain.ParseRole(string(customer.Role))
			if !ok || !customer.IsActive() {
				return redirect(c, area, decisionUnauthorized, domain.UnauthorizedPath)
			}

			if !role.CanAccess(area) {
				return redirect(c, area, decisionHome, role.HomePath())
			}

			metrics.GateDecisionsTotal.WithLabelValues(string(area), decisionAllow).Inc()
			setIdentity(c, customer, role)
			return next(c)
		}
	}
}

func loginURL(original string) string {
	q := url.Values{}
	q.Set(domain.RedirectParam, original)
	return domain.LoginPath + "?" + q.Encode()
}

func redirect(c echo.Context, area domain.Area, decision, to string) error {
	metrics.GateDecisionsTotal.WithLabelValues(string(area), decision).Inc()
	return c.Redirect(http.StatusTemporaryRedirect, to)
}
