package oembed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/models"
)

// maxBodySize oEmbed 响应体上限
const maxBodySize = 1 << 20

// Response oEmbed 响应中使用到的字段
type Response struct {
	AuthorUniqueID string `json:"author_unique_id"`
	AuthorName     string `json:"author_name"`
	AuthorURL      string `json:"author_url"`
	Title          string `json:"title"`
	ThumbnailURL   string `json:"thumbnail_url"`
}

// UpstreamHTTPError oEmbed 端点返回非 2xx 状态
type UpstreamHTTPError struct {
	Platform   models.Platform
	StatusCode int
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("%s oEmbed failed: %d", e.Platform.DisplayName(), e.StatusCode)
}

// Fetcher oEmbed 查询接口
type Fetcher interface {
	Fetch(ctx context.Context, platform models.Platform, endpoint, target string, extra url.Values) (*Response, error)
}

// Client oEmbed HTTP 客户端
type Client struct {
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewClient 创建 oEmbed 客户端
func NewClient(timeout time.Duration, userAgent string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// BuildURL 拼接 oEmbed 请求地址, target 作为 url 查询参数
func BuildURL(endpoint, target string, extra url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid oEmbed endpoint %q: %w", endpoint, err)
	}

	q := u.Query()
	q.Set("url", target)
	for key, values := range extra {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Fetch 请求 oEmbed 端点并解析 JSON 响应
func (c *Client) Fetch(ctx context.Context, platform models.Platform, endpoint, target string, extra url.Values) (*Response, error) {
	oembedURL, err := BuildURL(endpoint, target, extra)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s oEmbed request: %w", platform.DisplayName(), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("oembed response",
		zap.String("platform", platform.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &UpstreamHTTPError{Platform: platform, StatusCode: resp.StatusCode}
	}

	var data *Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode %s oEmbed response: %w", platform.DisplayName(), err)
	}
	// JSON null 解码后为 nil
	if data == nil {
		return nil, fmt.Errorf("decode %s oEmbed response: empty document", platform.DisplayName())
	}

	return data, nil
}
