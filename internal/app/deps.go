package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidfriends/videoembed/internal/config"
	"github.com/vidfriends/videoembed/internal/db"
	"github.com/vidfriends/videoembed/internal/embed"
	"github.com/vidfriends/videoembed/internal/handlers"
	"github.com/vidfriends/videoembed/internal/i18n"
	"github.com/vidfriends/videoembed/internal/middleware"
	"github.com/vidfriends/videoembed/internal/repositories"
	"github.com/vidfriends/videoembed/internal/storage"
	"github.com/vidfriends/videoembed/internal/videos"
)

const rateLimitIdleTTL = 10 * time.Minute

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. The returned cleanup drains the publisher.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, func(context.Context) error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	thumbnailRepo := repositories.NewPostgresThumbnailRepository(pool)
	thumbnailCache := videos.NewCachingSource(thumbnailRepo.Source(), cfg.ThumbnailCacheTTL, cfg.ThumbnailLookupTimeout)

	renderer, err := newRenderer(cfg.MessageCatalog, videos.Adapter{Provider: embed.Vimeo, Source: thumbnailCache})
	if err != nil {
		return handlers.Dependencies{}, nil, err
	}

	embedRepo := repositories.NewPostgresEmbedRepository(pool)

	var fragments videos.FragmentStorage
	if cfg.ObjectStore.Enabled() {
		s3, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return handlers.Dependencies{}, nil, err
		}
		fragments = s3
	} else {
		logger.Warn("object store not configured, publishing disabled")
	}

	publisher := videos.NewPublisher(fragments, embedRepo, videos.PublisherConfig{
		QueueSize: cfg.Publisher.QueueSize,
		Workers:   cfg.Publisher.Workers,
	}, logger)

	deps := handlers.Dependencies{
		Renderer:       renderer,
		Thumbnails:     thumbnailRepo,
		ThumbnailCache: thumbnailCache,
		Embeds:         embedRepo,
		Publisher:      publisher,
		RateLimiter:    middleware.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst, rateLimitIdleTTL),
		APIKeyHash:     cfg.APIKeyHash,
	}
	if p, ok := pool.(interface{ Ping(context.Context) error }); ok {
		deps.Ping = p.Ping
	}

	return deps, publisher.Shutdown, nil
}

// newRenderer builds a renderer, translating fallback text with the TOML
// catalog at catalogPath when one is given.
func newRenderer(catalogPath string, thumbnails embed.ThumbnailSource) (*embed.Renderer, error) {
	rc := embed.RendererConfig{Thumbnails: thumbnails}
	if catalogPath != "" {
		catalog, err := i18n.Load(catalogPath)
		if err != nil {
			return nil, err
		}
		rc.Translator = catalog
	}
	return embed.NewRenderer(rc), nil
}
