package repositories

import (
	"context"

	"github.com/vidfriends/videoembed/internal/models"
)

// ThumbnailRepository stores out-of-band Vimeo thumbnail URLs.
type ThumbnailRepository interface {
	Upsert(ctx context.Context, thumbs models.VimeoThumbnails) error
	Thumbnails(ctx context.Context, videoID string) (models.VimeoThumbnails, error)
}

// EmbedRepository stores published embed fragments.
type EmbedRepository interface {
	Create(ctx context.Context, embed models.PublishedEmbed) error
	List(ctx context.Context, provider string, limit int) ([]models.PublishedEmbed, error)
	MarkPublished(ctx context.Context, id, location string) error
	MarkFailed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
