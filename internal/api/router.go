package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/graphflix/account-api/internal/api/handler"
	"github.com/graphflix/account-api/internal/api/middleware"
	"github.com/graphflix/account-api/internal/core/ports"
	"github.com/graphflix/account-api/internal/core/service"
	"github.com/graphflix/account-api/internal/infrastructure/config"
	redisdb "github.com/graphflix/account-api/internal/infrastructure/db/redis"
	"github.com/graphflix/account-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The user repository is already bound to the configured store driver; the
// router neither knows nor cares which one.
func NewRouter(users ports.UserRepository, cache *redisdb.ProfileCache, cfg *config.Config, log zerolog.Logger, pingers ...handlers.DependencyPinger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("account"))

	// --- Dependencies ---
	accountService := service.NewAccountService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	authHandler := handler.NewAuthHandler(accountService, users, cache)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(pingers...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
