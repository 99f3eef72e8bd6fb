package models

// Platform 视频来源平台
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformUnknown   Platform = "unknown"
)

// Platforms 支持的平台列表
var Platforms = []Platform{PlatformTikTok, PlatformInstagram, PlatformYouTube}

// DisplayName 平台展示名称
func (p Platform) DisplayName() string {
	switch p {
	case PlatformTikTok:
		return "TikTok"
	case PlatformInstagram:
		return "Instagram"
	case PlatformYouTube:
		return "YouTube"
	default:
		return "Unknown"
	}
}

func (p Platform) String() string {
	return string(p)
}
