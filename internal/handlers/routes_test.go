package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vidfriends/videoembed/internal/embed"
	"github.com/vidfriends/videoembed/internal/middleware"
)

func newTestMux(t *testing.T, hash string) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	RegisterRoutes(mux, Dependencies{
		Renderer:   embed.NewRenderer(embed.RendererConfig{}),
		Thumbnails: &thumbnailStoreStub{},
		Embeds:     &embedStoreStub{},
		Publisher:  &publisherStub{},
		APIKeyHash: hash,
	})
	return mux
}

func TestRoutesServeReadEndpoints(t *testing.T) {
	mux := newTestMux(t, "")

	cases := []struct {
		target string
		want   int
	}{
		{"/healthz", http.StatusOK},
		{"/api/v1/embed?url=https://vimeo.com/62085792", http.StatusOK},
		{"/api/v1/thumbnail?url=https://youtu.be/heNGFmEQVq0", http.StatusOK},
		{"/api/v1/embeds", http.StatusOK},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
		if rec.Code != tc.want {
			t.Fatalf("GET %s: got %d want %d", tc.target, rec.Code, tc.want)
		}
	}
}

func TestRoutesGuardWriteEndpoints(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}

	disabled := newTestMux(t, "")
	rec := httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/embeds", bytes.NewBufferString(`{"url":"https://vimeo.com/1"}`)))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected writes to be disabled without a key hash, got %d", rec.Code)
	}

	mux := newTestMux(t, string(hash))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/embeds", bytes.NewBufferString(`{"url":"https://vimeo.com/1"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a key, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/embeds", bytes.NewBufferString(`{"url":"https://vimeo.com/1"}`))
	req.Header.Set(middleware.APIKeyHeader, "s3cret")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 with a key, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/thumbnails/vimeo", bytes.NewBufferString(`{"videoId":"1","small":"https://i.vimeocdn.com/a.jpg"}`))
	req.Header.Set("Authorization", "Bearer s3cret")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for thumbnail upload, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/embeds", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRoutesApplyRateLimit(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, Dependencies{
		Renderer:    embed.NewRenderer(embed.RendererConfig{}),
		RateLimiter: middleware.NewIPRateLimiter(1, time.Minute, 1, time.Minute),
	})

	target := "/api/v1/embed?url=https://vimeo.com/62085792"
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d want 429", rec.Code)
	}
}
