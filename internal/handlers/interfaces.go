package handlers

import (
	"context"

	"github.com/vidfriends/videoembed/internal/embed"
	"github.com/vidfriends/videoembed/internal/models"
)

// EmbedRenderer produces player and thumbnail markup.
type EmbedRenderer interface {
	EmbedRef(ref embed.VideoRef, opts embed.Options) (string, error)
	NotFound(failSilently bool) string
	ThumbnailURL(ctx context.Context, rawURL, size string) (embed.VideoRef, string, error)
	Image(src string, opts embed.ThumbnailOptions) string
}

// ThumbnailStore persists out-of-band Vimeo thumbnails.
type ThumbnailStore interface {
	Upsert(ctx context.Context, thumbs models.VimeoThumbnails) error
}

// ThumbnailInvalidator drops cached thumbnails after they change.
type ThumbnailInvalidator interface {
	Invalidate(videoID string)
}

// EmbedStore captures persistence for published embeds.
type EmbedStore interface {
	Create(ctx context.Context, embed models.PublishedEmbed) error
	List(ctx context.Context, provider string, limit int) ([]models.PublishedEmbed, error)
	Delete(ctx context.Context, id string) error
}

// FragmentPublisher schedules the upload of rendered fragments. Enabled
// reports whether uploads can be accepted at all.
type FragmentPublisher interface {
	Enabled() bool
	Enqueue(ctx context.Context, embed models.PublishedEmbed) error
}
