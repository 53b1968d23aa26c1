package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carousel-backend/internal/shared/middleware"
	"carousel-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		// Public embed endpoint: pages fetch fragments by slug.
		v1.GET("/embed/:slug", c.CarouselHandler.Embed)

		setupAdminRoutes(v1, c)
		setupHookRoutes(v1, c)
	}

	return router
}

// ========================================
// ADMIN ROUTES
// ========================================
// Every mutating operation sits behind the auth + admin gate.
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.Config.JWT.Secret), middleware.AdminMiddleware())
	{
		admin.GET("/carousels", c.CarouselHandler.List)
		admin.POST("/carousels", c.CarouselHandler.Save)
		admin.GET("/carousels/:id", c.CarouselHandler.Get)
		admin.DELETE("/carousels/:id", c.CarouselHandler.Delete)

		admin.POST("/cache/clear", c.CarouselHandler.ClearCache)

		admin.GET("/settings/:key", c.SettingsHandler.Get)
		admin.PUT("/settings/:key", c.SettingsHandler.Put)
	}
}

// ========================================
// HOOK ROUTES
// ========================================
// Invalidation signals from the surrounding CMS.
func setupHookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	hooks := v1.Group("/hooks")
	hooks.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		hooks.POST("/page-saved", c.CarouselHandler.PageSaved)
		hooks.POST("/setting-changed", c.CarouselHandler.SettingChanged)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}
		code := http.StatusOK

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := c.Redis.Ping(ctx.Request.Context()); err != nil {
			// Cache outage degrades to the store; still healthy.
			status["redis"] = err.Error()
		}

		ctx.JSON(code, status)
	}
}
