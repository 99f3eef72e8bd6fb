package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/adapter"
	"github.com/smeyjes51/ration-curator/internal/config"
	"github.com/smeyjes51/ration-curator/internal/detector"
	"github.com/smeyjes51/ration-curator/internal/models"
	"github.com/smeyjes51/ration-curator/internal/oembed"
	"github.com/smeyjes51/ration-curator/internal/resolver"
	"github.com/smeyjes51/ration-curator/internal/utils"
)

// ExtractorService 元数据提取服务
type ExtractorService struct {
	detector *detector.PlatformDetector
	adapters map[models.Platform]adapter.Adapter
	limiter  *utils.ConcurrencyLimiter
	logger   *zap.Logger
}

// NewExtractorService 创建提取服务
func NewExtractorService(cfg *config.Config, logger *zap.Logger) *ExtractorService {
	if logger == nil {
		logger = zap.NewNop()
	}

	deps := adapter.Deps{
		Resolver: resolver.NewRedirectResolver(resolver.Options{
			Timeout:      cfg.HTTPClient.Timeout,
			MaxRedirects: cfg.HTTPClient.MaxRedirects,
			UserAgent:    cfg.HTTPClient.UserAgent,
		}, logger.Named("resolver")),
		Fetcher: oembed.NewClient(cfg.HTTPClient.Timeout, cfg.HTTPClient.UserAgent, logger.Named("oembed")),
		Logger:  logger.Named("adapter"),
	}

	// 创建平台适配器
	var adapters []adapter.Adapter
	for _, platform := range models.Platforms {
		platformCfg, ok := cfg.Platform(platform.String())
		if !ok || !platformCfg.Enabled {
			logger.Info("platform disabled", zap.String("platform", platform.String()))
			continue
		}
		if adpt, ok := adapter.New(platform, platformCfg.OEmbedEndpoint, deps); ok {
			adapters = append(adapters, adpt)
		}
	}

	return NewExtractorServiceWithAdapters(adapters, cfg.Extract.MaxConcurrent, logger)
}

// NewExtractorServiceWithAdapters 使用给定适配器创建提取服务
func NewExtractorServiceWithAdapters(adapters []adapter.Adapter, maxConcurrent int, logger *zap.Logger) *ExtractorService {
	if logger == nil {
		logger = zap.NewNop()
	}

	byPlatform := make(map[models.Platform]adapter.Adapter, len(adapters))
	for _, adpt := range adapters {
		byPlatform[adpt.Platform()] = adpt
	}

	return &ExtractorService{
		detector: detector.NewPlatformDetector(),
		adapters: byPlatform,
		limiter:  utils.NewConcurrencyLimiter(maxConcurrent),
		logger:   logger,
	}
}

// Extract 提取单个URL的元数据; 所有失败都转换为 success=false 的结果
func (s *ExtractorService) Extract(ctx context.Context, input string) (result models.VideoMetadata) {
	url := utils.NormalizeInput(input)
	platform, detected := s.detector.Detect(url)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extract panic",
				zap.String("url", url),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			result = models.FailedMetadata(url, platform, fmt.Errorf("%v", r))
		}
	}()

	if !detected {
		return models.FailedMetadata(url, models.PlatformUnknown, utils.ErrUnsupportedPlatform)
	}

	adpt, ok := s.adapters[platform]
	if !ok {
		return models.FailedMetadata(url, platform, fmt.Errorf("%s: %w", platform.DisplayName(), utils.ErrPlatformDisabled))
	}

	// 并发控制
	if err := s.limiter.AcquireContext(ctx); err != nil {
		return models.FailedMetadata(url, platform, err)
	}
	defer s.limiter.Release()

	s.logger.Debug("extracting metadata",
		zap.String("url", url),
		zap.String("platform", platform.String()))

	metadata, err := adpt.Extract(ctx, url)
	if err != nil {
		s.logger.Warn("extract failed",
			zap.String("url", url),
			zap.String("platform", platform.String()),
			zap.Error(err))
		return models.FailedMetadata(url, platform, err)
	}

	return metadata
}

// ExtractBatch 并发提取多个URL, 结果顺序与输入一致
func (s *ExtractorService) ExtractBatch(ctx context.Context, inputs []string) []models.VideoMetadata {
	results := make([]models.VideoMetadata, len(inputs))

	var wg sync.WaitGroup
	wg.Add(len(inputs))
	for i, input := range inputs {
		go func(i int, input string) {
			defer wg.Done()
			results[i] = s.Extract(ctx, input)
		}(i, input)
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	s.logger.Info("batch extracted",
		zap.Int("total", len(results)),
		zap.Int("succeeded", succeeded))

	return results
}

// EnabledPlatforms 各平台启用状态
func (s *ExtractorService) EnabledPlatforms() map[models.Platform]bool {
	enabled := make(map[models.Platform]bool, len(models.Platforms))
	for _, p := range models.Platforms {
		_, ok := s.adapters[p]
		enabled[p] = ok
	}
	return enabled
}
