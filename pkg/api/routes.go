package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/core/port"
	"taskapp/internal/telemetry"
	"taskapp/pkg/auth"
	"taskapp/pkg/config"
	"taskapp/pkg/logging"
)

type HandlersConfig struct {
	UserHandler *handler.UserHandler
	TaskHandler *handler.TaskHandler

	Tokens *auth.JWT
	Users  port.UserRepository
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *logging.Logger, cfg *config.Config) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	SetupGinMiddleware(router, "taskapp", metrics, logger)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if cfg.RateLimitEnabled {
		limits := make(map[string]middleware.RateLimitConfig, len(cfg.RateLimits))

		for route, limit := range cfg.RateLimits {
			limits[route] = middleware.RateLimitConfig{
				Requests: limit.Requests,
				Window:   limit.Window,
			}
		}

		limiter := middleware.NewRateLimiter(limits, logger.Zap(), metrics)
		router.Use(limiter.Middleware())
	}

	registerRoutes(router, handlers)

	return router
}

// SetupRouterForTests wires the same routes without telemetry, logging or
// rate limiting.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/")
	{
		public.POST("/users", handlers.UserHandler.Register)
		public.POST("/users/login", handlers.UserHandler.Login)
		public.GET("/users/:uuid/avatar", handlers.UserHandler.GetAvatar)
	}

	protected := router.Group("/")
	protected.Use(middleware.BearerAuth(handlers.Tokens, handlers.Users))
	{
		protected.POST("/users/logout", handlers.UserHandler.Logout)
		protected.POST("/users/logoutAll", handlers.UserHandler.LogoutAll)

		protected.GET("/users/me", handlers.UserHandler.GetProfile)
		protected.PATCH("/users/me", handlers.UserHandler.UpdateProfile)
		protected.DELETE("/users/me", handlers.UserHandler.DeleteAccount)

		protected.POST("/users/me/avatar", handlers.UserHandler.UploadAvatar)
		protected.DELETE("/users/me/avatar", handlers.UserHandler.DeleteAvatar)

		protected.POST("/tasks", handlers.TaskHandler.CreateTask)
		protected.GET("/tasks", handlers.TaskHandler.ListTasks)
		protected.GET("/tasks/:uuid", handlers.TaskHandler.GetTask)
		protected.PATCH("/tasks/:uuid", handlers.TaskHandler.UpdateTask)
		protected.DELETE("/tasks/:uuid", handlers.TaskHandler.DeleteTask)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
