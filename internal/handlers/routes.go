package handlers

import (
	"context"
	"net/http"

	"github.com/vidfriends/videoembed/internal/middleware"
)

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Renderer       EmbedRenderer
	Thumbnails     ThumbnailStore
	ThumbnailCache ThumbnailInvalidator
	Embeds         EmbedStore
	Publisher      FragmentPublisher
	RateLimiter    middleware.RateLimiter
	APIKeyHash     string
	Ping           func(ctx context.Context) error
}

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{Ping: deps.Ping}
	embeds := EmbedHandler{Renderer: deps.Renderer}
	thumbnails := ThumbnailHandler{Renderer: deps.Renderer}
	vimeo := VimeoThumbnailHandler{Thumbnails: deps.Thumbnails, Cache: deps.ThumbnailCache}
	publish := PublishHandler{Renderer: deps.Renderer, Embeds: deps.Embeds, Publisher: deps.Publisher}

	limited := func(scope string, h http.HandlerFunc) http.Handler {
		return middleware.RateLimit(deps.RateLimiter, scope)(h)
	}
	guarded := middleware.RequireAPIKey(deps.APIKeyHash)

	mux.HandleFunc("/healthz", health.Handle)
	mux.Handle("/api/v1/embed", limited("embed", embeds.Render))
	mux.Handle("/api/v1/thumbnail", limited("thumbnail", thumbnails.Render))
	mux.Handle("/api/v1/thumbnails/vimeo", guarded(http.HandlerFunc(vimeo.Put)))
	mux.Handle("/api/v1/embeds", methods{
		http.MethodGet:  limited("embeds", publish.List),
		http.MethodPost: guarded(http.HandlerFunc(publish.Create)),
	})
}
