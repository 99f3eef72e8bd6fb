package adapter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/smeyjes51/ration-curator/internal/models"
)

const (
	youtubeWatchURL     = "https://www.youtube.com/watch?v="
	youtubeThumbnailURL = "https://img.youtube.com/vi/%s/hqdefault.jpg"
)

// YouTubeAdapter YouTube平台适配器
type YouTubeAdapter struct {
	deps     Deps
	endpoint string
}

// NewYouTubeAdapter 创建YouTube适配器
func NewYouTubeAdapter(endpoint string, deps Deps) *YouTubeAdapter {
	return &YouTubeAdapter{
		deps:     deps,
		endpoint: endpoint,
	}
}

// Platform 平台标识
func (a *YouTubeAdapter) Platform() models.Platform {
	return models.PlatformYouTube
}

// Extract 解析YouTube视频, oEmbed 失败时返回错误
func (a *YouTubeAdapter) Extract(ctx context.Context, rawURL string) (models.VideoMetadata, error) {
	resolved, _ := a.deps.Resolver.Resolve(ctx, rawURL)

	data, err := a.deps.Fetcher.Fetch(ctx, models.PlatformYouTube, a.endpoint, resolved, url.Values{"format": {"json"}})
	if err != nil {
		return models.VideoMetadata{}, err
	}

	videoID, hasVideo := YouTubeVideoID(resolved)

	thumbnail := data.ThumbnailURL
	deepLink := resolved
	if hasVideo {
		if thumbnail == "" {
			thumbnail = fmt.Sprintf(youtubeThumbnailURL, videoID)
		}
		deepLink = youtubeWatchURL + videoID
	}

	return models.VideoMetadata{
		Success:     true,
		Platform:    models.PlatformYouTube,
		Creator:     firstNonEmpty(data.AuthorName, "Unknown Channel"),
		CreatorURL:  data.AuthorURL,
		Title:       data.Title,
		Thumbnail:   thumbnail,
		OriginalURL: rawURL,
		DeepLink:    deepLink,
	}, nil
}
