package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/config"
	"github.com/smeyjes51/ration-curator/internal/handler"
	"github.com/smeyjes51/ration-curator/internal/middleware"
	"github.com/smeyjes51/ration-curator/internal/service"
)

// Version 服务版本
const Version = "1.0.0"

// Dependencies 路由依赖
type Dependencies struct {
	Config    *config.Config
	Extractor *service.ExtractorService
	Logger    *zap.Logger
}

// SetupRouter 设置路由
func SetupRouter(deps *Dependencies) *gin.Engine {
	// 设置 Gin 模式
	switch deps.Config.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(deps.Config.Server.Mode)
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger.Named("http")))
	r.Use(middleware.CORS(&deps.Config.CORS))

	extractHandler := handler.NewExtractHandler(deps.Extractor, handler.ExtractOptions{
		MaxBatchSize: deps.Config.Extract.MaxBatchSize,
		MaxBodyBytes: deps.Config.Extract.MaxBodyBytes,
		Timeout:      deps.Config.ExtractDeadline(),
	}, logger.Named("handler"))
	healthHandler := handler.NewHealthHandler(deps.Extractor, Version)

	// 健康检查
	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/live", healthHandler.Live)

	// 元数据提取
	extract := r.Group("/")
	if deps.Config.RateLimit.Enabled {
		extract.Use(middleware.IPRateLimit(middleware.NewRateLimiter(&deps.Config.RateLimit)))
	}
	{
		extract.POST("/", extractHandler.Extract)
		extract.POST("/extract-metadata", extractHandler.Extract)
	}

	r.NoRoute(extractHandler.NotFound)

	return r
}
