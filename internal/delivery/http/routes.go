package http

import (
	"github.com/gin-gonic/gin"

	"github.com/swellfound/standards/config"
)

// SetupRouter creates and configures the Gin router. A nil metrics disables
// /metrics and request instrumentation.
func SetupRouter(cfg *config.Config, handler *Handler, metrics *Metrics) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(handler.logger))
	router.Use(LoggerMiddleware(handler.logger))
	if metrics != nil {
		router.Use(metrics.Middleware())
	}
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", metrics.Handler())
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	{
		standards := v1.Group("/standards")
		{
			standards.GET("", handler.ListStandards)
			standards.GET("/:id", handler.GetStandard)
			standards.POST("/refresh", handler.RefreshCatalog)
		}
		v1.GET("/categories", handler.ListCategories)
		v1.POST("/submissions", handler.CreateSubmission)
	}

	return router
}
