package adapter

import "regexp"

var (
	tiktokVideoIDPattern  = regexp.MustCompile(`/video/(\d+)`)
	tiktokUsernamePattern = regexp.MustCompile(`@([^/?]+)`)

	instagramProfilePattern = regexp.MustCompile(`instagram\.com/([^/?]+)/?$`)
	instagramPostPattern    = regexp.MustCompile(`/(reel|p)/([^/?]+)`)

	youtubeVideoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?v=([^&]+)`),
		regexp.MustCompile(`youtu\.be/([^?]+)`),
		regexp.MustCompile(`youtube\.com/embed/([^?]+)`),
		regexp.MustCompile(`youtube\.com/shorts/([^?]+)`),
	}
)

// instagramReservedSegments 不是用户名的路径段
var instagramReservedSegments = map[string]bool{
	"reel":    true,
	"p":       true,
	"stories": true,
}

// TikTokVideoID 从URL提取 /video/<数字> 形式的视频ID
func TikTokVideoID(url string) (string, bool) {
	m := tiktokVideoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TikTokUsername 从URL提取 @username, 未匹配时返回 "unknown"
func TikTokUsername(url string) string {
	m := tiktokUsernamePattern.FindStringSubmatch(url)
	if m == nil {
		return "unknown"
	}
	return m[1]
}

// InstagramUsername 从URL最后一个路径段提取用户名
func InstagramUsername(url string) string {
	m := instagramProfilePattern.FindStringSubmatch(url)
	if m != nil && !instagramReservedSegments[m[1]] {
		return m[1]
	}
	return "instagram_user"
}

// InstagramPostID 从 /reel/<id> 或 /p/<id> 提取帖子ID
func InstagramPostID(url string) (string, bool) {
	m := instagramPostPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// YouTubeVideoID 依次尝试 watch?v=, youtu.be/, /embed/, /shorts/
func YouTubeVideoID(url string) (string, bool) {
	for _, pattern := range youtubeVideoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}
