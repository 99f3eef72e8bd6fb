package adapter

import (
	"context"

	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/models"
	"github.com/smeyjes51/ration-curator/internal/oembed"
)

const instagramBaseURL = "https://www.instagram.com/"

// InstagramAdapter Instagram平台适配器
type InstagramAdapter struct {
	deps     Deps
	endpoint string
}

// NewInstagramAdapter 创建Instagram适配器
func NewInstagramAdapter(endpoint string, deps Deps) *InstagramAdapter {
	return &InstagramAdapter{
		deps:     deps,
		endpoint: endpoint,
	}
}

// Platform 平台标识
func (a *InstagramAdapter) Platform() models.Platform {
	return models.PlatformInstagram
}

// Extract 解析Instagram帖子; oEmbed 不可用时从URL结构提取, 不返回错误
func (a *InstagramAdapter) Extract(ctx context.Context, url string) (models.VideoMetadata, error) {
	resolved, _ := a.deps.Resolver.Resolve(ctx, url)

	if data, ok := a.lookup(ctx, resolved); ok {
		username := firstNonEmpty(data.AuthorName, InstagramUsername(resolved))
		return models.VideoMetadata{
			Success:     true,
			Platform:    models.PlatformInstagram,
			Creator:     "@" + username,
			CreatorURL:  instagramBaseURL + username + "/",
			Title:       data.Title,
			Thumbnail:   data.ThumbnailURL,
			OriginalURL: url,
			DeepLink:    resolved,
		}, nil
	}

	return a.fromURL(url, resolved), nil
}

// lookup 查询 oEmbed, 任何失败都只记录日志
func (a *InstagramAdapter) lookup(ctx context.Context, resolved string) (*oembed.Response, bool) {
	data, err := a.deps.Fetcher.Fetch(ctx, models.PlatformInstagram, a.endpoint, resolved, nil)
	if err != nil {
		a.deps.logger().Debug("instagram oembed unavailable, using url fallback",
			zap.String("resolved_url", resolved),
			zap.Error(err))
		return nil, false
	}
	return data, true
}

// fromURL 仅根据URL结构构造元数据
func (a *InstagramAdapter) fromURL(url, resolved string) models.VideoMetadata {
	username := InstagramUsername(resolved)
	profileURL := instagramBaseURL + username + "/"

	deepLink := profileURL
	if postID, ok := InstagramPostID(resolved); ok {
		deepLink = instagramBaseURL + "reel/" + postID + "/"
	}

	return models.VideoMetadata{
		Success:     true,
		Platform:    models.PlatformInstagram,
		Creator:     "@" + username,
		CreatorURL:  profileURL,
		OriginalURL: url,
		DeepLink:    deepLink,
	}
}
