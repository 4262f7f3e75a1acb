package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	_ "github.com/orderdesk/accounts-api/docs"
	"github.com/orderdesk/accounts-api/internal/api/handler"
	"github.com/orderdesk/accounts-api/internal/api/middleware"
	"github.com/orderdesk/accounts-api/internal/core/domain"
	"github.com/orderdesk/accounts-api/internal/core/service"
	"github.com/orderdesk/accounts-api/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, defaultRole string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	userService := service.NewUserService(userRepo, roleRepo, log)
	authHandler := handler.NewAuthHandler(userService, defaultRole)
	userHandler := handler.NewUserHandler(userService)

	// --- Auth routes (public) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- User routes (admin only) ---
	users := e.Group("/api/users",
		middleware.BasicAuth(userService),
		middleware.RBAC(domain.RoleAdmin),
	)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.GetByID)
	users.POST("/:id/roles", userHandler.AssignRole)
	users.DELETE("/:id/roles/:name", userHandler.RemoveRole)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
