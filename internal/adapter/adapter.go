package adapter

import (
	"context"

	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/models"
	"github.com/smeyjes51/ration-curator/internal/oembed"
	"github.com/smeyjes51/ration-curator/internal/resolver"
)

// Adapter 平台适配器接口
type Adapter interface {
	// Platform 适配器对应的平台
	Platform() models.Platform
	// Extract 提取视频元数据
	Extract(ctx context.Context, url string) (models.VideoMetadata, error)
}

// Deps 适配器公共依赖
type Deps struct {
	Resolver resolver.Resolver
	Fetcher  oembed.Fetcher
	Logger   *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// New 按平台创建适配器
func New(platform models.Platform, endpoint string, deps Deps) (Adapter, bool) {
	switch platform {
	case models.PlatformTikTok:
		return NewTikTokAdapter(endpoint, deps), true
	case models.PlatformInstagram:
		return NewInstagramAdapter(endpoint, deps), true
	case models.PlatformYouTube:
		return NewYouTubeAdapter(endpoint, deps), true
	default:
		return nil, false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
