package videos

import (
	"context"
	"fmt"

	"github.com/vidfriends/videoembed/internal/embed"
)

// ThumbnailSet holds the thumbnail URLs of one video by size.
type ThumbnailSet struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// Size returns the URL for a size name (small, medium, large).
func (s ThumbnailSet) Size(size string) (string, bool) {
	var url string
	switch size {
	case "small":
		url = s.Small
	case "medium":
		url = s.Medium
	case "large":
		url = s.Large
	default:
		return "", false
	}
	return url, url != ""
}

// Source resolves the thumbnail set of a video id.
type Source interface {
	Thumbnails(ctx context.Context, videoID string) (ThumbnailSet, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, videoID string) (ThumbnailSet, error)

// Thumbnails implements Source.
func (f SourceFunc) Thumbnails(ctx context.Context, videoID string) (ThumbnailSet, error) {
	return f(ctx, videoID)
}

// Adapter exposes a Source as the renderer's embed.ThumbnailSource for one
// provider.
type Adapter struct {
	Provider embed.Provider
	Source   Source
}

// Thumbnail implements embed.ThumbnailSource.
func (a Adapter) Thumbnail(ctx context.Context, provider embed.Provider, videoID, size string) (string, error) {
	if a.Source == nil {
		return "", ErrSourceUnavailable
	}
	if provider != a.Provider {
		return "", fmt.Errorf("%w: no %s thumbnails", ErrSourceUnavailable, provider)
	}

	set, err := a.Source.Thumbnails(ctx, videoID)
	if err != nil {
		return "", err
	}
	url, ok := set.Size(size)
	if !ok {
		return "", fmt.Errorf("%w: %s %s", ErrThumbnailNotFound, videoID, size)
	}
	return url, nil
}

var _ embed.ThumbnailSource = Adapter{}
