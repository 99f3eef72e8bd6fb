package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smeyjes51/ration-curator/internal/models"
)

// PlatformStatus 平台启用状态来源
type PlatformStatus interface {
	EnabledPlatforms() map[models.Platform]bool
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	platforms PlatformStatus
	startTime time.Time
	version   string
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(platforms PlatformStatus, version string) *HealthHandler {
	return &HealthHandler{
		platforms: platforms,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    int64             `json:"uptime"`
	Platforms map[string]string `json:"platforms"`
}

// HealthCheck 健康检查
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	platforms := make(map[string]string)
	anyEnabled := false
	for platform, enabled := range h.platforms.EnabledPlatforms() {
		if enabled {
			platforms[platform.String()] = "enabled"
			anyEnabled = true
		} else {
			platforms[platform.String()] = "disabled"
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !anyEnabled {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Version:   h.version,
		Uptime:    int64(time.Since(h.startTime).Seconds()),
		Platforms: platforms,
	})
}

// Live 存活检查
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
