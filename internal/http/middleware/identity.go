package middleware

import (
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
)

// IdentityFromCtx extracts the authenticated identity set by IdentityMiddleware.
func IdentityFromCtx(c echo.Context) (string, bool) {
	v := c.Get("identity")
	id, ok := v.(string)
	return id, ok
}

// IdentityMiddleware authenticates requests using ERIC identity headers. Both
// the identity and a recognised identity type (key or oauth2) must be present.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := strings.TrimSpace(c.Request().Header.Get("ERIC-Identity"))
			if identity == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorised"})
			}

			identityType := strings.TrimSpace(c.Request().Header.Get("ERIC-Identity-Type"))
			if !strings.EqualFold(identityType, "key") && !strings.EqualFold(identityType, "oauth2") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorised"})
			}

			c.Set("identity", identity)
			return next(c)
		}
	}
}

// KeyPrivilegeMiddleware guards the internal mutation endpoints: the caller's
// key must carry the wildcard privilege.
func KeyPrivilegeMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			privileges := c.Request().Header.Get("ERIC-Authorised-Key-Privileges")
			if privileges != "*" {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
