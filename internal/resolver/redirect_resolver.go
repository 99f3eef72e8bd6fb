package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/utils"
)

// Resolver 短链接解析接口
type Resolver interface {
	// Resolve 返回跟随重定向后的最终URL; 失败时返回原始URL和 false
	Resolve(ctx context.Context, rawURL string) (string, bool)
}

// RedirectResolver 基于 HEAD/GET 的重定向解析器
type RedirectResolver struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// Options 解析器配置
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
}

// NewRedirectResolver 创建重定向解析器
func NewRedirectResolver(opts Options, logger *zap.Logger) *RedirectResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxRedirects := opts.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 10
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return &RedirectResolver{
		client:    client,
		userAgent: opts.UserAgent,
		logger:    logger,
	}
}

// Resolve 先尝试 HEAD, 失败后使用 GET (部分站点拒绝 HEAD); 均失败时返回原始URL
func (r *RedirectResolver) Resolve(ctx context.Context, rawURL string) (string, bool) {
	if !utils.IsValidURL(rawURL) {
		return rawURL, false
	}

	final, err := r.follow(ctx, http.MethodHead, rawURL)
	if err == nil {
		return final, true
	}
	r.logger.Debug("HEAD resolve failed, retrying with GET",
		zap.String("url", rawURL),
		zap.Error(err))

	final, err = r.follow(ctx, http.MethodGet, rawURL)
	if err == nil {
		return final, true
	}
	r.logger.Debug("redirect resolve failed, using original url",
		zap.String("url", rawURL),
		zap.Error(err))

	return rawURL, false
}

// follow 发送请求并返回最终响应对应的URL
func (r *RedirectResolver) follow(ctx context.Context, method, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.Request.URL.String(), nil
}
