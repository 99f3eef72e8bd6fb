package oembed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeyjes51/ration-curator/internal/models"
)

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("https://www.youtube.com/oembed", "https://youtu.be/abc?t=1", url.Values{"format": {"json"}})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "www.youtube.com", u.Host)
	assert.Equal(t, "/oembed", u.Path)
	assert.Equal(t, "https://youtu.be/abc?t=1", u.Query().Get("url"))
	assert.Equal(t, "json", u.Query().Get("format"))
}

func TestFetchDecodesResponse(t *testing.T) {
	var gotURL, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"author_unique_id":"dancer","author_name":"Dancer","author_url":"https://www.tiktok.com/@dancer","title":"moves","thumbnail_url":"https://p16.example/t.jpg","version":"1.0"}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second, "test-agent", nil)
	resp, err := c.Fetch(context.Background(), models.PlatformTikTok, srv.URL, "https://www.tiktok.com/@dancer/video/1", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://www.tiktok.com/@dancer/video/1", gotURL)
	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, &Response{
		AuthorUniqueID: "dancer",
		AuthorName:     "Dancer",
		AuthorURL:      "https://www.tiktok.com/@dancer",
		Title:          "moves",
		ThumbnailURL:   "https://p16.example/t.jpg",
	}, resp)
}

func TestFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(time.Second, "", nil)
	_, err := c.Fetch(context.Background(), models.PlatformYouTube, srv.URL, "https://youtu.be/x", nil)
	require.Error(t, err)

	var upstream *UpstreamHTTPError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
	assert.Equal(t, "YouTube oEmbed failed: 404", err.Error())
}

func TestFetchMalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "html page", body: `<html>rate limited</html>`},
		{name: "json null", body: `null`},
		{name: "json null with whitespace", body: " null\n"},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(time.Second, "", nil)
			data, err := c.Fetch(context.Background(), models.PlatformInstagram, srv.URL, "https://www.instagram.com/p/x/", nil)
			require.Error(t, err)
			assert.Nil(t, data)
			assert.Contains(t, err.Error(), "decode Instagram oEmbed response")
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	c := NewClient(time.Second, "", nil)
	_, err := c.Fetch(context.Background(), models.PlatformTikTok, endpoint, "https://www.tiktok.com/@a", nil)
	require.Error(t, err)

	var upstream *UpstreamHTTPError
	assert.False(t, errors.As(err, &upstream))
}
