package models

// VideoMetadata 单个 URL 的标准化元数据
type VideoMetadata struct {
	Success     bool     `json:"success"`
	Platform    Platform `json:"platform"`
	Creator     string   `json:"creator"`
	CreatorURL  string   `json:"creatorUrl"`
	Title       string   `json:"title"`
	Thumbnail   string   `json:"thumbnail"`
	OriginalURL string   `json:"originalUrl"`
	DeepLink    string   `json:"deepLink"`
	Error       string   `json:"error,omitempty"`
}

// FailedMetadata 构造失败结果, platform 为空时使用 unknown
func FailedMetadata(originalURL string, platform Platform, err error) VideoMetadata {
	if platform == "" {
		platform = PlatformUnknown
	}
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return VideoMetadata{
		Success:     false,
		Platform:    platform,
		OriginalURL: originalURL,
		Error:       msg,
	}
}
