package middleware

import (
	"context"

	"storefront/internal/common"
	"storefront/internal/services"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const tokenContextKey = "user"

// NewJWTConfig verifies HS256 bearer tokens and copies the caller identity
// into the request context.
func NewJWTConfig(jwtSecret string) echojwt.Config {
	return echojwt.Config{
		SigningKey:    []byte(jwtSecret),
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.TokenClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
			ctx = context.WithValue(ctx, common.AppRoleKey, claims.AppRole)
			ctx = context.WithValue(ctx, common.EmailKey, claims.Email)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	}
}

func JWT(jwtSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(NewJWTConfig(jwtSecret))
}
