package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/models"
	"github.com/smeyjes51/ration-curator/internal/utils"
)

// Extractor 元数据提取接口
type Extractor interface {
	Extract(ctx context.Context, url string) models.VideoMetadata
	ExtractBatch(ctx context.Context, urls []string) []models.VideoMetadata
}

// ExtractOptions 提取处理器参数, 零值表示不限制
type ExtractOptions struct {
	MaxBatchSize int
	MaxBodyBytes int64
	Timeout      time.Duration // 整个请求的提取期限
}

// ExtractHandler 元数据提取处理器
type ExtractHandler struct {
	extractor Extractor
	opts      ExtractOptions
	logger    *zap.Logger
}

// NewExtractHandler 创建提取处理器
func NewExtractHandler(extractor Extractor, opts ExtractOptions, logger *zap.Logger) *ExtractHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractHandler{
		extractor: extractor,
		opts:      opts,
		logger:    logger,
	}
}

// Extract 处理 {"url": ...} 或 {"urls": [...]} 请求
func (h *ExtractHandler) Extract(c *gin.Context) {
	if h.opts.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxBodyBytes)
	}

	var req models.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			models.Error(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		models.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	url, urls, err := h.parseTargets(req)
	if err != nil {
		models.BadRequest(c, err.Error())
		return
	}

	// 期限到达后仍未完成的 URL 各自返回失败记录, 响应在 write_timeout 之前写出
	ctx := c.Request.Context()
	if h.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.Timeout)
		defer cancel()
	}

	if url != "" {
		models.Success(c, h.extractor.Extract(ctx, url))
		return
	}

	h.logger.Debug("batch extract request", zap.Int("size", len(urls)))
	results := h.extractor.ExtractBatch(ctx, urls)
	models.Success(c, models.BatchResponse{Results: results})
}

// parseTargets 解析请求目标; url 非空时优先于 urls
func (h *ExtractHandler) parseTargets(req models.ExtractRequest) (string, []string, error) {
	if isPresent(req.URL) {
		var url string
		if err := json.Unmarshal(req.URL, &url); err != nil {
			return "", nil, utils.ErrInvalidURLType
		}
		if url != "" {
			return url, nil, nil
		}
	}

	if !isPresent(req.URLs) {
		return "", nil, utils.ErrMissingURL
	}
	if trimmed := bytes.TrimSpace(req.URLs); len(trimmed) == 0 || trimmed[0] != '[' {
		return "", nil, utils.ErrMissingURL
	}

	var urls []string
	if err := json.Unmarshal(req.URLs, &urls); err != nil {
		return "", nil, utils.ErrInvalidURLType
	}
	if h.opts.MaxBatchSize > 0 && len(urls) > h.opts.MaxBatchSize {
		return "", nil, fmt.Errorf("%w: at most %d allowed", utils.ErrBatchTooLarge, h.opts.MaxBatchSize)
	}

	return "", urls, nil
}

// isPresent 字段存在且不为 null
func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// NotFound 未匹配路由
func (h *ExtractHandler) NotFound(c *gin.Context) {
	models.NotFound(c, "not found")
}
