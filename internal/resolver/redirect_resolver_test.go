package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestResolver() *RedirectResolver {
	return NewRedirectResolver(Options{Timeout: 2 * time.Second, MaxRedirects: 5}, nil)
}

func TestResolveFollowsRedirectChain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/middle", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/middle", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/@creator/video/123?lang=en", http.StatusFound)
	})
	mux.HandleFunc("/@creator/video/123", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	final, ok := newTestResolver().Resolve(context.Background(), srv.URL+"/short")
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/@creator/video/123?lang=en", final)
}

func TestResolveNon2xxStillResolves(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	final, ok := newTestResolver().Resolve(context.Background(), srv.URL+"/gone")
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/gone", final)
}

func TestResolveFallsBackToGet(t *testing.T) {
	var heads, gets int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			atomic.AddInt32(&heads, 1)
			// 断开连接模拟拒绝 HEAD 的站点
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("hijacking not supported")
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		atomic.AddInt32(&gets, 1)
		if r.URL.Path == "/s" {
			http.Redirect(w, r, "/final", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	final, ok := newTestResolver().Resolve(context.Background(), srv.URL+"/s")
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/final", final)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&heads), int32(1))
	assert.Equal(t, int32(2), atomic.LoadInt32(&gets))
}

func TestResolveReturnsOriginalOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	final, ok := newTestResolver().Resolve(context.Background(), addr+"/x")
	assert.False(t, ok)
	assert.Equal(t, addr+"/x", final)
}

func TestResolveSkipsInvalidURL(t *testing.T) {
	final, ok := newTestResolver().Resolve(context.Background(), "instagram.com/someone")
	assert.False(t, ok)
	assert.Equal(t, "instagram.com/someone", final)
}

func TestResolveStopsRedirectLoops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	}))
	defer srv.Close()

	final, ok := newTestResolver().Resolve(context.Background(), srv.URL+"/loop")
	assert.False(t, ok)
	assert.Equal(t, srv.URL+"/loop", final)
}

func TestResolveTimesOut(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	r := NewRedirectResolver(Options{Timeout: 50 * time.Millisecond}, nil)
	final, ok := r.Resolve(context.Background(), srv.URL+"/slow")
	assert.False(t, ok)
	assert.Equal(t, srv.URL+"/slow", final)
}
