package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout)
	assert.Equal(t, 10, cfg.HTTPClient.MaxRedirects)
	assert.Equal(t, 10, cfg.Extract.MaxConcurrent)
	assert.Equal(t, int64(1<<20), cfg.Extract.MaxBodyBytes)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"authorization", "x-client-info", "apikey", "content-type"}, cfg.CORS.AllowedHeaders)

	for name, endpoint := range map[string]string{
		"tiktok":    DefaultTikTokOEmbed,
		"instagram": DefaultInstagramOEmbed,
		"youtube":   DefaultYouTubeOEmbed,
	} {
		pc, ok := cfg.Platform(name)
		require.True(t, ok, name)
		assert.True(t, pc.Enabled, name)
		assert.Equal(t, endpoint, pc.OEmbedEndpoint, name)
	}
}

func TestParseKeepsExplicitPlatformSettings(t *testing.T) {
	data := []byte(`
platforms:
  instagram:
    enabled: false
  youtube:
    enabled: true
    oembed_endpoint: http://127.0.0.1:9000/oembed
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	ig, _ := cfg.Platform("instagram")
	assert.False(t, ig.Enabled)
	assert.Equal(t, DefaultInstagramOEmbed, ig.OEmbedEndpoint)

	yt, _ := cfg.Platform("youtube")
	assert.True(t, yt.Enabled)
	assert.Equal(t, "http://127.0.0.1:9000/oembed", yt.OEmbedEndpoint)

	tt, _ := cfg.Platform("tiktok")
	assert.True(t, tt.Enabled)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("SERVER_MODE", "release")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg, err := Parse([]byte("server:\n  port: 8000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3*time.Second, cfg.HTTPClient.Timeout)
}

func TestParseRejectsBadEnv(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := Parse([]byte("{}"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extract:\n  max_concurrent: 3\n  max_batch_size: 50\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Extract.MaxConcurrent)
	assert.Equal(t, 50, cfg.Extract.MaxBatchSize)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExtractDeadlineStaysBelowWriteTimeout(t *testing.T) {
	tests := []struct {
		name     string
		write    time.Duration
		request  time.Duration
		expected time.Duration
	}{
		{name: "derived from write timeout", write: 30 * time.Second, expected: 27 * time.Second},
		{name: "explicit value below limit", write: 30 * time.Second, request: 20 * time.Second, expected: 20 * time.Second},
		{name: "equal to write timeout is clamped", write: time.Second, request: time.Second, expected: 900 * time.Millisecond},
		{name: "above write timeout is clamped", write: time.Second, request: time.Minute, expected: 900 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Server.WriteTimeout = tt.write
			cfg.Extract.RequestTimeout = tt.request

			got := cfg.ExtractDeadline()
			assert.Equal(t, tt.expected, got)
			assert.Less(t, got, cfg.Server.WriteTimeout)
		})
	}
}
