package middleware

import (
	"strings"

	"storefront/internal/common"
	"storefront/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireAuthority admits an authority token whose app role and email both match.
// Mismatches answer 401.
func RequireAuthority(appRole, email string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			role, _ := common.GetAppRoleFromContext(ctx)
			callerEmail, _ := common.GetEmailFromContext(ctx)
			if role != appRole || !strings.EqualFold(callerEmail, email) {
				return common.SendUnauthorizedError(c)
			}
			return next(c)
		}
	}
}

// RequireCustomer admits customer tokens only
func RequireCustomer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := common.GetRoleFromContext(c.Request().Context())
			if role != models.RoleCustomer {
				return common.SendUnauthorizedError(c)
			}
			return next(c)
		}
	}
}
