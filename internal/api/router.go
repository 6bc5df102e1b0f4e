package api

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	chatHandler "recipe-bot/internal/api/handlers/chat"
	"recipe-bot/internal/api/handlers/health"
	"recipe-bot/internal/api/middleware"
	"recipe-bot/internal/core/chat"
	"recipe-bot/internal/infrastructure/config"
	"recipe-bot/internal/infrastructure/metrics"
	"recipe-bot/internal/pkg/common"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Chat    *chat.Service
	Metrics *metrics.Collector
	// Clock 用於限流、去重與健康檢查，nil 時使用系統時間
	Clock clockwork.Clock
}

// SetupRouter 設置路由
//
// ctx 結束時停止限流與去重的背景清理。
func SetupRouter(ctx context.Context, cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Chat == nil {
		return nil, errors.New("chat service is required")
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	common.LogInfo("開始設置路由",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}

	origins := cfg.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAll(origins),
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodySize))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window, deps.Clock)
		router.Use(middleware.RateLimit(limiter))
	}
	if cfg.DedupWindow > 0 {
		dedup := middleware.NewDeduplicator(ctx, cfg.DedupWindow, deps.Clock)
		router.Use(middleware.Deduplication(dedup))
	}
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	healthHandler := health.NewHandler(cfg.App.Version, deps.Chat.Corpus(), deps.Chat.Sessions(), deps.Clock)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	handler := chatHandler.NewHandler(deps.Chat)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/chat", handler.HandleChat)
		v1.GET("/recipes/:index", handler.HandleRecipeByIndex)
		v1.POST("/parse", handler.HandleParse)
		v1.POST("/match", handler.HandleMatch)
	}

	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound)
	})

	common.LogInfo("路由設置完成",
		zap.Int("recipes", deps.Chat.Corpus().Len()),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodySize),
	)

	return router, nil
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
