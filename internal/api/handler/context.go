package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphflix/account-api/internal/api/middleware"
	"github.com/graphflix/account-api/internal/core/domain"
)

// ctxUser extracts the identity injected by the Auth middleware and performs
// a fast-fail check before any service call: a populated userId proves the
// middleware ran and the token carried a subject.
func ctxUser(c echo.Context) (domain.PublicUser, error) {
	user, ok := c.Get(middleware.UserContextKey).(domain.PublicUser)
	if !ok || user.UserID == "" {
		return domain.PublicUser{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
