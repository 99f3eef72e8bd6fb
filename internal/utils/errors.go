package utils

import "errors"

var (
	// URL相关错误
	ErrUnsupportedPlatform = errors.New("Unsupported platform. Use TikTok, Instagram, or YouTube URLs.")
	ErrPlatformDisabled    = errors.New("platform is disabled")

	// 请求相关错误
	ErrMissingURL     = errors.New("Provide 'url' or 'urls' in request body")
	ErrInvalidURLType = errors.New("'url' must be a string and 'urls' an array of strings")
	ErrBatchTooLarge  = errors.New("too many urls in request body")
)
