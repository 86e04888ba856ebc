package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mineralHandler "mineral-catalog/internal/domains/mineral/handler"
	"mineral-catalog/internal/shared/middleware"
	"mineral-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(mineralHandler.Templates())

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.Metrics(),
		middleware.Session(c.AuthService, c.Config.Auth.CookieName),
	)

	router.Static("/images", c.Config.Catalog.ImagesDir)
	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupPageRoutes(router, c)
	setupCatalogRoutes(router, c)
	setupAuthRoutes(router, c)
	setupAdminRoutes(router, c)

	return router
}

// ========================================
// PAGE ROUTES (HTML)
// ========================================
func setupPageRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/", c.MineralHandler.Home)
	r.GET("/mineral", c.MineralHandler.Detail)
	r.GET("/stats", c.MineralHandler.StatsFragment)
}

// ========================================
// CATALOG ROUTES (JSON)
// ========================================
func setupCatalogRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/minerals", c.MineralHandler.List)
	r.GET("/search", c.MineralHandler.Search)
	r.GET("/filter", c.MineralHandler.Filter)
	r.GET("/sort", c.MineralHandler.Sort)
	r.GET("/export", c.MineralHandler.Export)

	api := r.Group("/api")
	{
		api.GET("/minerals", c.MineralHandler.List)
		api.GET("/minerals/:id", c.MineralHandler.Get)
		api.GET("/stats", c.MineralHandler.StatsJSON)
	}
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/login", c.AuthHandler.Login)
	r.POST("/register", c.AuthHandler.Register)
	r.GET("/logout", c.AuthHandler.Logout)
	r.POST("/logout", c.AuthHandler.Logout)
	r.GET("/session", c.AuthHandler.Session)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(r *gin.Engine, c *container.Container) {
	// /add and /delete keep their top-level paths for the home page forms
	r.POST("/add", middleware.AdminMiddleware(), c.MineralHandler.Add)
	r.POST("/delete", middleware.AdminMiddleware(), c.MineralHandler.Delete)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/import", c.MineralHandler.Import)
		admin.POST("/images", c.MineralHandler.UploadImage)
		admin.POST("/clear", c.MineralHandler.Clear)
		admin.POST("/save", c.MineralHandler.Save)
		admin.POST("/reload", c.MineralHandler.Reload)

		storage := admin.Group("/storage")
		{
			storage.GET("/stats", c.MineralHandler.StorageStats)
			storage.GET("/localities", c.MineralHandler.StorageLocalities)
			storage.DELETE("/minerals/:id", c.MineralHandler.DeleteStored)
		}
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================

// healthCheckHandler reports 503 only when a configured database is down.
// Memory-only mode is healthy.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"minerals":  appCtx.Collection.Size(),
		}

		dbStatus := "ok"
		statusCode := http.StatusOK
		switch {
		case !appCtx.Config.Database.Enabled:
			dbStatus = "disabled"
		case appCtx.DB == nil || appCtx.DB.Pool == nil:
			dbStatus = "memory-only"
			health["status"] = "degraded"
		default:
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
				statusCode = http.StatusServiceUnavailable
			} else if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		redisStatus := "not used"
		if appCtx.Cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			redisStatus = "ok"
			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		c.JSON(statusCode, health)
	}
}
