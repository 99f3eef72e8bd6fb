package adapter

import (
	"context"

	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/models"
)

const tiktokBaseURL = "https://www.tiktok.com/@"

// TikTokAdapter TikTok平台适配器
type TikTokAdapter struct {
	deps     Deps
	endpoint string
}

// NewTikTokAdapter 创建TikTok适配器
func NewTikTokAdapter(endpoint string, deps Deps) *TikTokAdapter {
	return &TikTokAdapter{
		deps:     deps,
		endpoint: endpoint,
	}
}

// Platform 平台标识
func (a *TikTokAdapter) Platform() models.Platform {
	return models.PlatformTikTok
}

// Extract 解析TikTok视频, oEmbed 失败时返回错误
func (a *TikTokAdapter) Extract(ctx context.Context, url string) (models.VideoMetadata, error) {
	resolved, _ := a.deps.Resolver.Resolve(ctx, url)

	data, err := a.deps.Fetcher.Fetch(ctx, models.PlatformTikTok, a.endpoint, resolved, nil)
	if err != nil {
		return models.VideoMetadata{}, err
	}

	username := firstNonEmpty(data.AuthorUniqueID, data.AuthorName, TikTokUsername(resolved))
	profileURL := tiktokBaseURL + username

	deepLink := profileURL
	if videoID, ok := TikTokVideoID(resolved); ok {
		deepLink = profileURL + "/video/" + videoID
	}

	a.deps.logger().Debug("tiktok metadata extracted",
		zap.String("resolved_url", resolved),
		zap.String("username", username))

	return models.VideoMetadata{
		Success:     true,
		Platform:    models.PlatformTikTok,
		Creator:     "@" + username,
		CreatorURL:  firstNonEmpty(data.AuthorURL, profileURL),
		Title:       data.Title,
		Thumbnail:   data.ThumbnailURL,
		OriginalURL: url,
		DeepLink:    deepLink,
	}, nil
}
