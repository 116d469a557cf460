package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/graphflix/account-api/internal/core/domain"
	"github.com/graphflix/account-api/internal/core/service"
)

// UserContextKey is where Auth stores the identity rebuilt from the token.
const UserContextKey = "user"

// Auth validates the bearer token and injects the identity it carries into
// the request context. Verification happens here; downstream code trusts the
// claims.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := service.ParseToken(parts[1], jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UserContextKey, domain.ClaimsToUser(claims))

			return next(c)
		}
	}
}
