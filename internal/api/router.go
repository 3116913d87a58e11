package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ignaciodev/taskflow/internal/api/handler"
	"github.com/ignaciodev/taskflow/internal/api/middleware"
	"github.com/ignaciodev/taskflow/internal/core/ports"
	"github.com/ignaciodev/taskflow/internal/core/service"
	"github.com/ignaciodev/taskflow/internal/infrastructure/config"
	"github.com/ignaciodev/taskflow/internal/infrastructure/db/postgres"
	"github.com/ignaciodev/taskflow/internal/realtime"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when no Redis address is configured.
func NewRouter(db *sql.DB, rdb *redis.Client, tokens ports.TokenService, hub *realtime.Hub, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("taskflow"))

	// --- Dependencies ---
	authRepo := postgres.NewAuthRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	authService := service.NewAuthService(authRepo, tokens)
	taskService := service.NewTaskService(taskRepo, hub, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	healthHandler := handler.NewHealthHandler(db, rdb)
	wsHandler := realtime.NewHandler(hub, cfg.AllowedOrigins, log)

	authRequired := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, authRequired)

	// --- Task routes (protected) ---
	tasks := e.Group("/api/tasks", authRequired)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Push channel ---
	e.GET("/ws", wsHandler.Serve)

	// --- Operational endpoints ---
	e.GET("/api/health", healthHandler.Check)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
