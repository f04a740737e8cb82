package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-chef/internal/api"
	"pantry-chef/internal/core/ai/cache"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("starting application",
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.Bool("debug", cfg.App.Debug),
		zap.String("model", cfg.Gemini.Model),
		zap.String("pipeline_policy", cfg.Pipeline.Policy),
	)

	responseCache := buildCache(cfg)
	if responseCache != nil {
		defer responseCache.Close()
	}

	router, err := api.SetupRouter(cfg, responseCache)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// buildCache picks the Redis cache when enabled, falling back to the
// in-memory manager. Redis connection failure falls back rather than
// aborting startup.
func buildCache(cfg *config.Config) cache.ResponseCache {
	if !cfg.Cache.Enabled {
		return nil
	}

	if cfg.Cache.RedisEnabled {
		redisCache, err := cache.NewService(&cfg.Cache)
		if err == nil {
			common.LogInfo("using Redis response cache",
				zap.String("addr", cfg.Cache.RedisAddr),
			)
			return redisCache
		}
		common.LogWarn("Redis cache unavailable, falling back to memory",
			zap.Error(err),
		)
	}

	manager := cache.NewManager(cfg)
	if manager == nil {
		common.LogFatal("Failed to initialize cache manager")
	}
	return manager
}
