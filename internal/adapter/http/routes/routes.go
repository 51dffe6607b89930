package routes

import (
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/core/port"
	"todoapi/internal/core/telemetry"
	. "todoapi/pkg/config"
	. "todoapi/pkg/middlewares"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	AuthHandler  *handler.AuthHandler
	TodoHandler  *handler.TodoHandler
	SessionStore port.SessionStore
	AllowList    *middleware.AllowList
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *LokiLogger, config *AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	SetupGinMiddlewareWithConfig(router, "todoapi", metrics, logger, config)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupAPIRoutes(router, handlers, metrics)

	return router
}

func setupAPIRoutes(router *gin.Engine, handlers HandlersConfig, metrics *telemetry.AppMetrics) {
	allowList := handlers.AllowList

	if allowList == nil {
		allowList, _ = middleware.NewAllowList(middleware.DefaultAllowRules())
	}

	api := router.Group("/api")
	api.Use(middleware.CurrentMiddleware())
	api.Use(middleware.SessionMiddleware(handlers.SessionStore))
	api.Use(middleware.CSRFMiddleware())
	api.Use(middleware.LoginCheckMiddleware(allowList, metrics))
	{
		api.GET("/csrf_token", handlers.AuthHandler.CsrfToken)
		api.POST("/signup", handlers.AuthHandler.Signup)
		api.POST("/login", handlers.AuthHandler.Login)
		api.POST("/logout", handlers.AuthHandler.Logout)

		api.GET("/todos", handlers.TodoHandler.GetTodos)
		api.POST("/todos", handlers.TodoHandler.CreateTodo)
		api.PUT("/todos/:todoId", handlers.TodoHandler.UpdateTodo)
		api.DELETE("/todos/:todoId", handlers.TodoHandler.DeleteTodo)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, X-CSRF-TOKEN")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupAPIRoutes(router, handlers, nil)

	return router
}
