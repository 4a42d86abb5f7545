package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/saferide/kids-api/internal/api/handler"
	"github.com/saferide/kids-api/internal/api/middleware"
	"github.com/saferide/kids-api/internal/core/ports"
	"github.com/saferide/kids-api/internal/core/service"
	"github.com/saferide/kids-api/internal/infrastructure/config"
	mongodb "github.com/saferide/kids-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/saferide/kids-api/internal/infrastructure/db/redis"
	"github.com/saferide/kids-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(handle *mongodb.Handle, rdb *redisinfra.Handle, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
	}))
	e.Use(echoprometheus.NewMiddleware("saferide"))

	// --- Dependencies ---
	codec, err := token.New(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TTL())
	if err != nil {
		return nil, err
	}

	db := handle.Database()
	userRepo := mongodb.NewUserRepository(db)
	childRepo := mongodb.NewChildRepository(db)
	limiter := redisinfra.NewLoginLimiter(rdb.Client())

	auditRepo := mongodb.NewAuditRepository(db)

	authService := service.NewAuthService(userRepo, codec, limiter, log)
	childService := service.NewChildService(childRepo, userRepo, log).WithAudit(audit)

	authHandler := handler.NewAuthHandler(authService)
	childHandler := handler.NewChildHandler(childService)
	userHandler := handler.NewUserHandler(userRepo)
	auditHandler := handler.NewAuditHandler(auditRepo)
	dashboardHandler := handler.NewDashboardHandler()

	auth := middleware.NewAuthenticator(codec, userRepo)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Child routes (guardians only; records scoped to the caller) ---
	children := e.Group("/children", auth.RequireGuardian())
	children.POST("", childHandler.Create)
	children.GET("/me", childHandler.ListMine)
	children.GET("/:id", childHandler.Get)
	children.PUT("/:id", childHandler.Update)
	children.DELETE("/:id", childHandler.Delete)

	// --- User routes ---
	e.GET("/driver/dashboard", dashboardHandler.Driver, auth.RequireDriverOrAdmin())
	e.GET("/driver/routes", dashboardHandler.DriverRoutes, auth.RequireDriverOrAdmin())
	e.GET("/guardian/dashboard", dashboardHandler.Guardian, auth.RequireGuardianOrAdmin())

	e.GET("/api/profile", userHandler.Profile, auth.RequireAuthenticated())
	e.GET("/api/audit", auditHandler.ListMine, auth.RequireGuardian())
	e.GET("/admin/users", userHandler.ListUsers, auth.RequireAdmin())

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(handle, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
