package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphflix/account-api/internal/api/metrics"
	"github.com/graphflix/account-api/internal/core/domain"
	"github.com/graphflix/account-api/internal/core/ports"
)

// profileCache is the slice of the Redis cache the handler needs; satisfied
// by *redis.ProfileCache and by stubs in tests.
type profileCache interface {
	Get(ctx context.Context, userID string) (*domain.PublicUser, bool, error)
	Set(ctx context.Context, user domain.PublicUser) error
}

type AuthHandler struct {
	service ports.AccountService
	users   ports.UserRepository
	cache   profileCache
}

func NewAuthHandler(service ports.AccountService, users ports.UserRepository, cache profileCache) *AuthHandler {
	return &AuthHandler{service: service, users: users, cache: cache}
}

// Register creates a new user account and returns it with a session token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.AuthenticatedUser
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	auth, err := h.service.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, auth)
}

// Login authenticates a user and returns it with a session token. Unknown
// email and wrong password are the same 401 on purpose.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.AuthenticatedUser
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	auth, ok, err := h.service.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, auth)
}

// Me returns the calling user's public profile, read through the cache.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PublicUser
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	// A cache failure degrades to a store read, never to an error, but it is
	// counted separately so an outage does not masquerade as cold keys.
	cached, ok, cacheErr := h.cache.Get(ctx, identity.UserID)
	switch {
	case cacheErr != nil:
		metrics.ProfileCacheTotal.WithLabelValues("error").Inc()
	case ok:
		metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
		return c.JSON(http.StatusOK, cached)
	default:
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
	}

	stored, err := h.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return err
	}

	public := stored.Public()
	_ = h.cache.Set(ctx, public)

	return c.JSON(http.StatusOK, public)
}
