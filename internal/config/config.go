package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认 oEmbed 端点
const (
	DefaultTikTokOEmbed    = "https://www.tiktok.com/oembed"
	DefaultInstagramOEmbed = "https://api.instagram.com/oembed"
	DefaultYouTubeOEmbed   = "https://www.youtube.com/oembed"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig              `yaml:"server"`
	HTTPClient HTTPClientConfig          `yaml:"http_client"`
	Extract    ExtractConfig             `yaml:"extract"`
	CORS       CORSConfig                `yaml:"cors"`
	RateLimit  RateLimitConfig           `yaml:"rate_limit"`
	Logging    LoggingConfig             `yaml:"logging"`
	Platforms  map[string]PlatformConfig `yaml:"platforms"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port            int           `yaml:"port"`
	Mode            string        `yaml:"mode"` // debug, release, test
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// HTTPClientConfig 出站请求配置
type HTTPClientConfig struct {
	Timeout      time.Duration `yaml:"timeout"` // 单次出站请求超时
	UserAgent    string        `yaml:"user_agent"`
	MaxRedirects int           `yaml:"max_redirects"`
}

// ExtractConfig 提取配置
type ExtractConfig struct {
	MaxConcurrent  int           `yaml:"max_concurrent"`  // 批量模式最大并发数
	MaxBatchSize   int           `yaml:"max_batch_size"`  // 0 表示不限制
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`  // 请求体上限
	RequestTimeout time.Duration `yaml:"request_timeout"` // 整个请求的提取期限, 必须小于 write_timeout
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled   bool          `yaml:"enabled"`
	GlobalRPS int           `yaml:"global_rps"`
	IPRPS     int           `yaml:"ip_rps"`
	Burst     int           `yaml:"burst"`
	IdleTTL   time.Duration `yaml:"idle_ttl"` // 空闲 IP 限流器的回收时间
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

// PlatformConfig 平台特定配置
type PlatformConfig struct {
	Enabled        bool   `yaml:"enabled"`
	OEmbedEndpoint string `yaml:"oembed_endpoint"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse 解析 yaml 配置,应用环境变量覆盖和默认值
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Default 返回仅包含默认值的配置
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// applyEnv 从环境变量覆盖配置
func (c *Config) applyEnv() error {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		c.Server.Port = p
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if timeout := os.Getenv("HTTP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", timeout, err)
		}
		c.HTTPClient.Timeout = d
	}
	return nil
}

// applyDefaults 设置默认值
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.HTTPClient.Timeout == 0 {
		c.HTTPClient.Timeout = 10 * time.Second
	}
	if c.HTTPClient.MaxRedirects == 0 {
		c.HTTPClient.MaxRedirects = 10
	}
	if c.Extract.MaxConcurrent <= 0 {
		c.Extract.MaxConcurrent = 10
	}
	if c.Extract.MaxBodyBytes <= 0 {
		c.Extract.MaxBodyBytes = 1 << 20
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}
	}
	if c.RateLimit.GlobalRPS == 0 {
		c.RateLimit.GlobalRPS = 200
	}
	if c.RateLimit.IPRPS == 0 {
		c.RateLimit.IPRPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.IdleTTL <= 0 {
		c.RateLimit.IdleTTL = 10 * time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}

	if c.Platforms == nil {
		c.Platforms = make(map[string]PlatformConfig)
	}
	defaults := map[string]string{
		"tiktok":    DefaultTikTokOEmbed,
		"instagram": DefaultInstagramOEmbed,
		"youtube":   DefaultYouTubeOEmbed,
	}
	for name, endpoint := range defaults {
		pc, ok := c.Platforms[name]
		if !ok {
			// 未配置的平台默认启用
			pc.Enabled = true
		}
		if pc.OEmbedEndpoint == "" {
			pc.OEmbedEndpoint = endpoint
		}
		c.Platforms[name] = pc
	}
}

// ExtractDeadline 返回提取请求的期限
// 期限总是留出 write_timeout 的十分之一用于写回响应, 未配置时取该上限
func (c *Config) ExtractDeadline() time.Duration {
	d := c.Extract.RequestTimeout
	if c.Server.WriteTimeout <= 0 {
		return d
	}
	limit := c.Server.WriteTimeout - c.Server.WriteTimeout/10
	if d <= 0 || d > limit {
		d = limit
	}
	return d
}

// Platform 获取平台配置
func (c *Config) Platform(name string) (PlatformConfig, bool) {
	pc, ok := c.Platforms[name]
	return pc, ok
}
