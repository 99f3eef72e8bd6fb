package detector

import (
	"strings"

	"github.com/smeyjes51/ration-curator/internal/models"
)

// platformRule 平台域名片段
type platformRule struct {
	platform  models.Platform
	fragments []string
}

// PlatformDetector 平台检测器
type PlatformDetector struct {
	rules []platformRule
}

// NewPlatformDetector 创建平台检测器
func NewPlatformDetector() *PlatformDetector {
	// 按顺序匹配, 先命中者优先
	return &PlatformDetector{
		rules: []platformRule{
			{platform: models.PlatformTikTok, fragments: []string{"tiktok.com", "vm.tiktok"}},
			{platform: models.PlatformInstagram, fragments: []string{"instagram.com"}},
			{platform: models.PlatformYouTube, fragments: []string{"youtube.com", "youtu.be"}},
		},
	}
}

// Detect 检测URL所属平台, 未匹配时返回 false
func (d *PlatformDetector) Detect(url string) (models.Platform, bool) {
	lower := strings.ToLower(url)

	for _, rule := range d.rules {
		for _, fragment := range rule.fragments {
			if strings.Contains(lower, fragment) {
				return rule.platform, true
			}
		}
	}

	return models.PlatformUnknown, false
}
