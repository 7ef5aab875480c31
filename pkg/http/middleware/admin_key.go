package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminKeyHeader carries the shared key for administrative routes.
const AdminKeyHeader = "X-Admin-Key"

// AdminKey guards administrative routes with a static shared key. An
// empty configured key disables the routes entirely rather than leaving
// them open.
func AdminKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return echo.NewHTTPError(http.StatusForbidden, "admin api disabled")
			}
			got := c.Request().Header.Get(AdminKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin key")
			}
			return next(c)
		}
	}
}
