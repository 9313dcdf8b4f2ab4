package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dermai/dermai/pkg/respond"
)

// RequireRole returns middleware that checks if the session has one of the
// specified roles. Anonymous requests are rejected with 401; authenticated
// requests lacking the role with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleFromContext(c.Request().Context())
			if role == "" {
				return respond.Fail(c, http.StatusUnauthorized, "authentication required")
			}
			for _, required := range roles {
				if role == required {
					return next(c)
				}
			}
			return respond.Fail(c, http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
