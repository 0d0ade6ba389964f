package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booktracker/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	// Registration and the token grant are the only unauthenticated routes
	if cfg.AuthService != nil {
		authController := auth.NewAuthController(cfg.AuthService)
		authController.RegisterRoutes(router)
	}

	booksController := NewBooksController(cfg.BookService)

	// Every book route requires a valid, active, unrevoked bearer token
	protected := router.Group("/book")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireToken())
	}
	protected.GET("", booksController.List)
	protected.GET("/:id", booksController.Get)
	protected.POST("", booksController.Create)
	protected.PUT("/:id", booksController.Update)
	protected.DELETE("/:id", booksController.Delete)

	return router
}
