package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dazabaze/issue-tracker/internal/api/handler"
	"github.com/dazabaze/issue-tracker/internal/api/middleware"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
	"github.com/dazabaze/issue-tracker/internal/core/service"
	mongorepo "github.com/dazabaze/issue-tracker/internal/infrastructure/db/mongo"
	redisinfra "github.com/dazabaze/issue-tracker/internal/infrastructure/db/redis"
	"github.com/dazabaze/issue-tracker/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("issuetracker"))
	e.Use(corsMiddleware(cfg.WebOrigin))

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	orgRepo := mongorepo.NewOrganizationRepository(db)
	issueRepo := mongorepo.NewIssueRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, redisinfra.NewLoginThrottle(rdb))
	orgService := service.NewOrganizationService(orgRepo, issueRepo, userRepo, audit, log)
	issueService := service.NewIssueService(issueRepo, orgRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	issueHandler := handler.NewIssueHandler(issueService)

	// --- Public routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated routes ---
	authed := e.Group("/api", middleware.Auth(tokenService))

	authed.GET("/me", authHandler.Me)

	authed.POST("/organizations", orgHandler.Create)
	authed.GET("/organizations", orgHandler.List)
	authed.GET("/organizations/:id", orgHandler.Get)
	authed.DELETE("/organizations/:id", orgHandler.Delete)
	authed.POST("/organizations/:id/members", orgHandler.AddMember)
	authed.GET("/organizations/:id/members", orgHandler.Members)

	authed.POST("/issues", issueHandler.Create)
	authed.GET("/issues", issueHandler.List)
	authed.GET("/issues/search", issueHandler.Search)
	authed.GET("/issues/:id", issueHandler.Get)
	authed.PUT("/issues/:id", issueHandler.Update)
	authed.DELETE("/issues/:id", issueHandler.Delete)

	return e
}

// corsMiddleware builds the CORS policy for the browser frontend. A "*"
// origin keeps local development and previews unblocked; anything else is
// treated as the single allowed production origin.
func corsMiddleware(webOrigin string) echo.MiddlewareFunc {
	cfg := echomiddleware.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
		MaxAge:       3600,
	}
	if webOrigin == "" || webOrigin == "*" {
		cfg.AllowOrigins = []string{"*"}
	} else {
		cfg.AllowOrigins = []string{webOrigin, "http://localhost:3000"}
	}
	return echomiddleware.CORSWithConfig(cfg)
}
