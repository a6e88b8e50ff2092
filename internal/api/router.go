package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/walletgate/identity-service/internal/api/handler"
	"github.com/walletgate/identity-service/internal/api/middleware"
	"github.com/walletgate/identity-service/internal/core/ports"
	"github.com/walletgate/identity-service/internal/core/service"
	"github.com/walletgate/identity-service/internal/infrastructure/config"
	mongostore "github.com/walletgate/identity-service/internal/infrastructure/db/mongo"
	redisstore "github.com/walletgate/identity-service/internal/infrastructure/db/redis"
	"github.com/walletgate/identity-service/internal/infrastructure/token"
)

// NewRouter builds the Echo instance with all routes registered. The audit
// sink is injected so the caller owns the dispatcher's lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity_http"))

	// --- Dependencies ---
	accountRepo := mongostore.NewAccountRepository(db)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	activity := redisstore.NewActivityThrottle(rdb, cfg.Audit.ActivityWindow)
	identity := service.NewIdentityService(accountRepo, issuer, audit, activity, log)

	authHandler := handler.NewAuthHandler(identity)
	accountHandler := handler.NewAccountHandler(identity)
	requireAuth := middleware.Auth(cfg.JWTSecret)

	// --- Identity routes ---
	e.POST("/v1/auth/wallet", authHandler.Authenticate)
	e.GET("/v1/account", accountHandler.Me, requireAuth)
	e.POST("/v1/account/wallet", accountHandler.LinkWallet, requireAuth)
	e.PUT("/v1/account/username", accountHandler.Rename, requireAuth)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
