package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskhub/task-tracker/docs"
	"github.com/taskhub/task-tracker/internal/api/handler"
	"github.com/taskhub/task-tracker/internal/api/middleware"
	"github.com/taskhub/task-tracker/internal/core/domain"
	"github.com/taskhub/task-tracker/internal/core/service"
	mongodb "github.com/taskhub/task-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-tracker/internal/infrastructure/db/redis"
	"github.com/taskhub/task-tracker/internal/infrastructure/http/handlers"
)

// Options bundles the runtime settings the router needs beyond its stores.
type Options struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// Login rate limit; zero LoginRateLimit disables throttling.
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case login throttling is disabled and the
// readiness probe only checks MongoDB.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tasktracker"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	tokenService := service.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, opts.BcryptCost, log)
	taskService := service.NewTaskService(taskRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	authMiddleware := middleware.Auth(tokenService, userRepo)

	var limiter middleware.Limiter
	if rdb != nil && opts.LoginRateLimit > 0 {
		limiter = redisdb.NewLoginLimiter(rdb, opts.LoginRateLimit, opts.LoginRateWindow)
	}

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimit(limiter, log))

	// --- Task routes ---
	tasks := e.Group("/api/v1/tasks", authMiddleware)
	tasks.POST("", taskHandler.Create, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	tasks.GET("", taskHandler.List, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	tasks.GET("/:id", taskHandler.Get, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	tasks.PUT("/:id", taskHandler.Update, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	tasks.DELETE("/:id", taskHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
