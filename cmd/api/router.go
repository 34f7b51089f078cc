package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"media-admin-backend/internal/shared/middleware"
	"media-admin-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	exposeErrors := !c.Config.App.IsProduction()

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(exposeErrors),
		middleware.Logger(),
		middleware.SameOrigin(c.Config.App.AllowedOrigin()),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupSessionRoutes(api, c)
		setupCategoryRoutes(api, c)
		setupPhotoRoutes(api, c)
		setupPublicationRoutes(api, c)
		setupVideoRoutes(api, c)
		setupUserRoutes(api, c)
		setupAuditRoutes(api, c, exposeErrors)
		setupNewsRoutes(api, c)
	}

	return router
}

// ========== SESSION ROUTES ==========
func setupSessionRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/login", c.UserHandler.Login)
	api.POST("/logout", c.UserHandler.Logout)
	api.GET("/logout", c.UserHandler.LogoutRedirect)
}

// ========== CATEGORY ROUTES ==========
// Writes are authorized inside the mutation pipeline.
func setupCategoryRoutes(api *gin.RouterGroup, c *container.Container) {
	categories := api.Group("/categories/:variant")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.POST("", c.CategoryHandler.Create)
		categories.GET("/:id", c.CategoryHandler.Get)
		categories.PATCH("/:id", c.CategoryHandler.Update)
		categories.PUT("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

// ========== PHOTO ROUTES ==========
func setupPhotoRoutes(api *gin.RouterGroup, c *container.Container) {
	photos := api.Group("/photos")
	{
		photos.GET("", c.PhotoHandler.List)
		photos.POST("", c.PhotoHandler.Create)
		photos.POST("/upload", c.PhotoHandler.Upload)
		photos.GET("/:id", c.PhotoHandler.Get)
		photos.PATCH("/:id", c.PhotoHandler.Update)
		photos.PUT("/:id", c.PhotoHandler.Update)
		photos.DELETE("/:id", c.PhotoHandler.Delete)
	}
}

// ========== PUBLICATION ROUTES ==========
func setupPublicationRoutes(api *gin.RouterGroup, c *container.Container) {
	publications := api.Group("/publications")
	{
		publications.GET("", c.PublicationHandler.List)
		publications.POST("", c.PublicationHandler.Create)
		publications.GET("/:id", c.PublicationHandler.Get)
		publications.PATCH("/:id", c.PublicationHandler.Update)
		publications.PUT("/:id", c.PublicationHandler.Update)
		publications.DELETE("/:id", c.PublicationHandler.Delete)
	}
}

// ========== VIDEO ROUTES ==========
func setupVideoRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/videos", c.VideoHandler.List)
	api.GET("/videos/:id", c.VideoHandler.Get)
}

// ========== USER ROUTES ==========
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	api.PUT("/users/:id/role", c.UserHandler.ChangeRole)
}

// ========== AUDIT ROUTES (admin read) ==========
func setupAuditRoutes(api *gin.RouterGroup, c *container.Container, exposeErrors bool) {
	api.GET("/audit-logs", middleware.RequireAdmin(c.Gate, exposeErrors), c.AuditHandler.List)
}

// ========== NEWS ROUTES ==========
func setupNewsRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/news", c.NewsHandler.List)
	api.GET("/news/:slug", c.NewsHandler.Get)
}

// ========== HEALTH CHECK ==========
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		storageStatus := "ok"
		if appCtx.Storage == nil {
			storageStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := appCtx.Storage.HealthCheck(ctx); err != nil {
				storageStatus = "error: " + err.Error()
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
			health["status"] = "degraded"
		} else if redisStatus != "ok" || storageStatus != "ok" {
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
