package main

import (
	"net/http"

	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

// newRouter builds the route table. Reads are open to anonymous clients;
// every write goes through RequireAuth. The throttle runs after
// OptionalAuth so authenticated clients are limited per account rather
// than per address.
func newRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	engine.GET("/health", healthHandler(c))

	api := engine.Group("/api/v1")
	api.Use(
		middleware.OptionalAuth(c.JWTManager),
		middleware.Throttle(c.Config.Throttle.RequestsPerSecond, c.Config.Throttle.Burst),
	)

	auth := middleware.RequireAuth(c.JWTManager)

	books := api.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.Get)
		books.POST("", auth, c.BookHandler.Create)
		books.PUT("/:id", auth, c.BookHandler.Replace)
		books.PATCH("/:id", auth, c.BookHandler.Patch)
		books.DELETE("/:id", auth, c.BookHandler.Delete)
		books.POST("/:id/toggle-favorite", auth, c.BookHandler.ToggleFavorite)
	}

	authors := api.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.Get)
		authors.POST("", auth, c.AuthorHandler.Create)
		authors.PUT("/:id", auth, c.AuthorHandler.Replace)
		authors.PATCH("/:id", auth, c.AuthorHandler.Patch)
		authors.DELETE("/:id", auth, c.AuthorHandler.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.Get)
		categories.POST("", auth, c.CategoryHandler.Create)
		categories.PUT("/:id", auth, c.CategoryHandler.Replace)
		categories.PATCH("/:id", auth, c.CategoryHandler.Patch)
		categories.DELETE("/:id", auth, c.CategoryHandler.Delete)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
		authGroup.POST("/refresh", c.UserHandler.Refresh)
	}

	users := api.Group("/users")
	{
		users.GET("/me", auth, c.UserHandler.Profile)
		users.PUT("/me", auth, c.UserHandler.UpdateProfile)
	}

	return engine
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{"database": "ok", "cache": "ok", "storage": "ok"}
		status := http.StatusOK

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Storage.HealthCheck(ctx.Request.Context()); err != nil {
			checks["storage"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}

		ctx.JSON(status, gin.H{
			"status":  state,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
