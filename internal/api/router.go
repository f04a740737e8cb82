// Package api wires the HTTP surface: middleware chain, service
// construction and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pantry-chef/internal/api/handlers/health"
	recipeHandler "pantry-chef/internal/api/handlers/recipe"
	"pantry-chef/internal/api/middleware"
	"pantry-chef/internal/core/ai/cache"
	"pantry-chef/internal/core/ai/service"
	recipeService "pantry-chef/internal/core/recipe"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Video analysis can hold a request open through upload and polling.
	timeoutDuration = 180 * time.Second
	// Request body size limit (10MB); webpage imports can be large.
	maxBodySize = 10 << 20
)

// SetupRouter builds the engine with all middleware and routes registered.
func SetupRouter(cfg *config.Config, responseCache cache.ResponseCache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.Gemini.Model),
		zap.String("vision_model", cfg.Gemini.VisionModel),
		zap.String("pipeline_policy", cfg.Pipeline.Policy),
		zap.Duration("timeout", timeoutDuration),
	)

	aiService := service.NewService(cfg, responseCache)

	recipeSvc, err := recipeService.NewService(cfg, aiService)
	if err != nil {
		common.LogError("Failed to initialize recipe service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize recipe service: %w", err)
	}

	// Request timeout plus context injection for the health probes.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		handler := recipeHandler.NewHandler(recipeSvc)

		recipeGroup := api.Group("/recipe")
		{
			recipeGroup.POST("/generate", handler.HandleGenerate)
			recipeGroup.POST("/from-video", handler.HandleVideo)
			recipeGroup.POST("/import", handler.HandleImport)
			recipeGroup.GET("/chefs", handler.HandleChefs)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
