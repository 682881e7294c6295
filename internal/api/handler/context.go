package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/alzia/storefront/internal/api/middleware"
	"github.com/alzia/storefront/internal/core/domain"
)

// identity reads the caller resolved by the Gate or Session middleware. A
// missing id means neither ran, which is reported as unauthenticated.
func identity(c echo.Context) (string, domain.Role, error) {
	id, _ := c.Get(middleware.CustomerIDKey).(string)
	if id == "" {
		return "", "", domain.ErrUnauthenticated
	}
	role, _ := c.Get(middleware.RoleKey).(domain.Role)
	return id, role, nil
}

// queryInt parses an optional integer query parameter; absent or malformed
// values yield 0 so services apply their defaults.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
